package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

// resetThrottle is the minimum gap between password reset requests for one
// user. The timestamp lives on the user row so the limit holds across
// server instances.
const resetThrottle = 60 * time.Second

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

type UserService interface {
	Register(ctx context.Context, cmd RegisterUserCommand) (*model.User, error)
	Update(ctx context.Context, cmd UpdateUserCommand) (*model.User, error)
	RequestPasswordReset(ctx context.Context, cmd RequestPasswordResetCommand) error
	SetPassword(ctx context.Context, cmd SetPasswordCommand) error
	VerifyPassword(ctx context.Context, utorid, password string) (*model.User, error)
}

type userService struct {
	txManager repository.TxManager
	userRepo  repository.UserRepository
	logger    *zap.Logger
}

func NewUserService(txManager repository.TxManager, userRepo repository.UserRepository,
	logger *zap.Logger) UserService {
	return &userService{txManager: txManager, userRepo: userRepo, logger: logger}
}

func (s *userService) Register(ctx context.Context, cmd RegisterUserCommand) (*model.User, error) {
	if err := requireClearance(cmd.Actor, model.RoleCashier); err != nil {
		return nil, err
	}

	u := model.User{
		UTORid:    cmd.UTORid,
		Name:      cmd.Name,
		Email:     cmd.Email,
		Role:      model.RoleRegular,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			s.logger.Warn("Duplicate user registration",
				zap.String("utorid", cmd.UTORid),
				zap.String("email", cmd.Email))
			return nil, NewServiceError(constants.ErrCodeUserExisted, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("User registered",
		zap.Uint64("userID", u.ID),
		zap.String("utorid", u.UTORid))

	return &u, nil
}

func (s *userService) Update(ctx context.Context, cmd UpdateUserCommand) (*model.User, error) {
	if err := requireClearance(cmd.Actor, model.RoleManager); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if cmd.Role != nil {
		newRole := *cmd.Role

		// Granting manager or above is reserved for superusers.
		if newRole.AtLeast(model.RoleManager) && !cmd.Actor.Role.AtLeast(model.RoleSuperuser) {
			return nil, NewServiceError(constants.ErrCodeForbidden, errors.New("FORBIDDEN"))
		}

		suspicious := u.Suspicious
		if cmd.Suspicious != nil {
			suspicious = *cmd.Suspicious
		}
		if newRole == model.RoleCashier && suspicious {
			return nil, NewServiceError(constants.ErrCodeSuspiciousPromotion,
				errors.New("SUSPICIOUS_PROMOTION"))
		}

		u.Role = newRole
	}

	if cmd.Email != nil {
		u.Email = *cmd.Email
	}
	if cmd.Verified != nil {
		u.Verified = *cmd.Verified
	}
	if cmd.Suspicious != nil {
		u.Suspicious = *cmd.Suspicious
	}
	u.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, NewServiceError(constants.ErrCodeUserExisted, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("User updated",
		zap.Uint64("userID", u.ID),
		zap.String("role", u.Role.String()),
		zap.Bool("verified", u.Verified),
		zap.Bool("suspicious", u.Suspicious))

	return u, nil
}

func (s *userService) RequestPasswordReset(ctx context.Context, cmd RequestPasswordResetCommand) error {
	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		u, err := s.userRepo.GetByUTORid(ctx, cmd.UTORid)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return NewServiceError(constants.ErrCodeUserNotFound, err)
			}
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		now := time.Now()
		if u.ResetRequestedAt != nil && now.Sub(*u.ResetRequestedAt) < resetThrottle {
			s.logger.Warn("Password reset throttled",
				zap.String("utorid", u.UTORid))
			return NewServiceError(constants.ErrCodeResetThrottled,
				errors.New("RESET_THROTTLED"))
		}

		u.ResetRequestedAt = &now
		u.UpdatedAt = now

		if err := s.userRepo.Update(ctx, u); err != nil {
			return NewServiceError(constants.ErrCodeOperationFailed, err)
		}

		s.logger.Info("Password reset requested", zap.String("utorid", u.UTORid))
		return nil
	})
}

func (s *userService) SetPassword(ctx context.Context, cmd SetPasswordCommand) error {
	u, err := s.userRepo.GetByUTORid(ctx, cmd.UTORid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return NewServiceError(constants.ErrCodeUserNotFound, err)
		}
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	hash, err := hashArgon2id(cmd.Password)
	if err != nil {
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	u.PasswordHash = &hash
	u.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, u); err != nil {
		return NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	s.logger.Info("Password set", zap.String("utorid", u.UTORid))
	return nil
}

func (s *userService) VerifyPassword(ctx context.Context, utorid, password string) (*model.User, error) {
	u, err := s.userRepo.GetByUTORid(ctx, utorid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewServiceError(constants.ErrCodeUnauthorized, err)
		}
		return nil, NewServiceError(constants.ErrCodeOperationFailed, err)
	}

	if u.PasswordHash == nil || !verifyArgon2id(password, *u.PasswordHash) {
		return nil, NewServiceError(constants.ErrCodeUnauthorized,
			errors.New("UNAUTHORIZED"))
	}

	return u, nil
}

func hashArgon2id(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key)), nil
}

func verifyArgon2id(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
