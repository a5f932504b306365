package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/leeyanqing2004/loyalty-platform/internal/api/v1/middleware"
	"github.com/leeyanqing2004/loyalty-platform/internal/mocks"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func identityApp(userRepo *mocks.UserRepository) (*fiber.App, *service.Actor) {
	var seen service.Actor

	app := fiber.New()
	app.Use(middleware.Identity(userRepo, zap.NewNop()))
	app.Get("/", func(c *fiber.Ctx) error {
		seen = c.Locals(middleware.ActorKey).(service.Actor)
		return c.SendStatus(fiber.StatusOK)
	})

	return app, &seen
}

func TestIdentity(t *testing.T) {
	t.Run("resolves the header into an actor", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		userRepo.On("GetByUTORid", mock.Anything, "alicesmi").
			Return(&model.User{ID: 42, UTORid: "alicesmi", Role: model.RoleCashier}, nil)

		app, seen := identityApp(userRepo)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Utorid", "alicesmi")
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, service.Actor{ID: 42, UTORid: "alicesmi", Role: model.RoleCashier}, *seen)
	})

	t.Run("missing header yields the zero actor", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)

		app, seen := identityApp(userRepo)

		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, service.Actor{}, *seen)
	})

	t.Run("system account is never a request identity", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)

		app, seen := identityApp(userRepo)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Utorid", model.SystemUTORid)
		resp, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, service.Actor{}, *seen)
		userRepo.AssertNotCalled(t, "GetByUTORid", mock.Anything, mock.Anything)
	})
}
