package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"go.uber.org/zap"
)

const ActorKey = "actor"

const identityHeader = "X-Utorid"

// Identity resolves the caller from the gateway-injected identity header and
// stores a service.Actor in the request locals. Requests without a resolvable
// identity carry the zero Actor; clearance checks in the service layer reject
// those with Unauthorized.
func Identity(userRepo repository.UserRepository, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		utorid := c.Get(identityHeader)
		if utorid == "" || utorid == model.SystemUTORid {
			// The system account exists only for internal jobs; it is
			// never a request identity.
			c.Locals(ActorKey, service.Actor{})
			return c.Next()
		}

		user, err := userRepo.GetByUTORid(c.UserContext(), utorid)
		if err != nil {
			if !errors.Is(err, repository.ErrUserNotFound) {
				logger.Error("failed to resolve request identity", zap.Error(err))
			}

			c.Locals(ActorKey, service.Actor{})
			return c.Next()
		}

		c.Locals(ActorKey, service.Actor{ID: user.ID, UTORid: user.UTORid, Role: user.Role})
		return c.Next()
	}
}
