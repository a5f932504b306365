package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/leeyanqing2004/loyalty-platform/internal/constants"
	"github.com/leeyanqing2004/loyalty-platform/internal/mocks"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/internal/repository"
	"github.com/leeyanqing2004/loyalty-platform/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newUserService(t *testing.T) (service.UserService, *mocks.TxManager, *mocks.UserRepository) {
	t.Helper()

	txManager := &mocks.TxManager{}
	userRepo := &mocks.UserRepository{}
	svc := service.NewUserService(txManager, userRepo, zap.NewNop())

	return svc, txManager, userRepo
}

func rolePtr(r model.Role) *model.Role { return &r }

func TestUser_Register(t *testing.T) {
	t.Run("cashier registers a regular user", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		userRepo.On("Create", context.Background(), mock.MatchedBy(func(u *model.User) bool {
			return u.UTORid == "alicesmi" && u.Role == model.RoleRegular && !u.Verified
		})).Return(nil)

		u, err := svc.Register(context.Background(), service.RegisterUserCommand{
			Actor:  cashierActor,
			UTORid: "alicesmi",
			Name:   "Alice Smith",
			Email:  "alice.smith@mail.utoronto.ca",
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleRegular, u.Role)
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate utorid or email is rejected", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		userRepo.On("Create", context.Background(), mock.AnythingOfType("*model.User")).
			Return(repository.ErrUserExists)

		_, err := svc.Register(context.Background(), service.RegisterUserCommand{
			Actor:  cashierActor,
			UTORid: "alicesmi",
			Name:   "Alice Smith",
			Email:  "alice.smith@mail.utoronto.ca",
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeUserExisted, serviceErr.Code)
	})

	t.Run("regular user cannot register others", func(t *testing.T) {
		svc, _, _ := newUserService(t)

		_, err := svc.Register(context.Background(), service.RegisterUserCommand{
			Actor:  regularActor,
			UTORid: "bobjones",
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeForbidden, serviceErr.Code)
	})
}

func TestUser_Update(t *testing.T) {
	t.Run("manager updates verification and email", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		existing := &model.User{ID: 42, UTORid: "alicesmi", Email: "old@mail.utoronto.ca"}
		email := "alice.smith@mail.utoronto.ca"

		userRepo.On("GetByID", context.Background(), uint64(42)).Return(existing, nil)
		userRepo.On("Update", context.Background(), mock.MatchedBy(func(u *model.User) bool {
			return u.Email == email && u.Verified
		})).Return(nil)

		u, err := svc.Update(context.Background(), service.UpdateUserCommand{
			Actor:    managerActor,
			UserID:   42,
			Email:    &email,
			Verified: boolPtr(true),
		})

		assert.NoError(t, err)
		assert.True(t, u.Verified)
		assert.Equal(t, email, u.Email)
		userRepo.AssertExpectations(t)
	})

	t.Run("manager cannot grant manager role", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		existing := &model.User{ID: 42, UTORid: "alicesmi"}
		userRepo.On("GetByID", context.Background(), uint64(42)).Return(existing, nil)

		_, err := svc.Update(context.Background(), service.UpdateUserCommand{
			Actor:  managerActor,
			UserID: 42,
			Role:   rolePtr(model.RoleManager),
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeForbidden, serviceErr.Code)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("superuser grants manager role", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		superuser := service.Actor{ID: 1, UTORid: "rootuser", Role: model.RoleSuperuser}
		existing := &model.User{ID: 42, UTORid: "alicesmi"}

		userRepo.On("GetByID", context.Background(), uint64(42)).Return(existing, nil)
		userRepo.On("Update", context.Background(), mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleManager
		})).Return(nil)

		u, err := svc.Update(context.Background(), service.UpdateUserCommand{
			Actor:  superuser,
			UserID: 42,
			Role:   rolePtr(model.RoleManager),
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleManager, u.Role)
	})

	t.Run("suspicious user cannot become cashier", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		existing := &model.User{ID: 42, UTORid: "alicesmi", Suspicious: true}
		userRepo.On("GetByID", context.Background(), uint64(42)).Return(existing, nil)

		_, err := svc.Update(context.Background(), service.UpdateUserCommand{
			Actor:  managerActor,
			UserID: 42,
			Role:   rolePtr(model.RoleCashier),
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeSuspiciousPromotion, serviceErr.Code)
	})

	t.Run("clearing the flag in the same update allows the promotion", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		existing := &model.User{ID: 42, UTORid: "alicesmi", Suspicious: true}

		userRepo.On("GetByID", context.Background(), uint64(42)).Return(existing, nil)
		userRepo.On("Update", context.Background(), mock.MatchedBy(func(u *model.User) bool {
			return u.Role == model.RoleCashier && !u.Suspicious
		})).Return(nil)

		u, err := svc.Update(context.Background(), service.UpdateUserCommand{
			Actor:      managerActor,
			UserID:     42,
			Role:       rolePtr(model.RoleCashier),
			Suspicious: boolPtr(false),
		})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleCashier, u.Role)
		assert.False(t, u.Suspicious)
	})
}

func TestUser_RequestPasswordReset(t *testing.T) {
	t.Run("stamps the request time", func(t *testing.T) {
		svc, txManager, userRepo := newUserService(t)

		existing := &model.User{ID: 42, UTORid: "alicesmi"}

		txManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		userRepo.On("GetByUTORid", mock.AnythingOfType("*context.valueCtx"), "alicesmi").
			Return(existing, nil)
		userRepo.On("Update", mock.AnythingOfType("*context.valueCtx"),
			mock.MatchedBy(func(u *model.User) bool {
				return u.ResetRequestedAt != nil
			})).Return(nil)

		err := svc.RequestPasswordReset(context.Background(), service.RequestPasswordResetCommand{
			UTORid: "alicesmi",
		})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("a second request within the window is throttled", func(t *testing.T) {
		svc, txManager, userRepo := newUserService(t)

		recent := time.Now().Add(-10 * time.Second)
		existing := &model.User{ID: 42, UTORid: "alicesmi", ResetRequestedAt: &recent}

		txManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		userRepo.On("GetByUTORid", mock.AnythingOfType("*context.valueCtx"), "alicesmi").
			Return(existing, nil)

		err := svc.RequestPasswordReset(context.Background(), service.RequestPasswordResetCommand{
			UTORid: "alicesmi",
		})

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeResetThrottled, serviceErr.Code)
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("an expired stamp allows a new request", func(t *testing.T) {
		svc, txManager, userRepo := newUserService(t)

		stale := time.Now().Add(-5 * time.Minute)
		existing := &model.User{ID: 42, UTORid: "alicesmi", ResetRequestedAt: &stale}

		txManager.On("WithTx", context.Background(),
			mock.AnythingOfType("func(context.Context) error")).Return(nil)
		userRepo.On("GetByUTORid", mock.AnythingOfType("*context.valueCtx"), "alicesmi").
			Return(existing, nil)
		userRepo.On("Update", mock.AnythingOfType("*context.valueCtx"),
			mock.AnythingOfType("*model.User")).Return(nil)

		err := svc.RequestPasswordReset(context.Background(), service.RequestPasswordResetCommand{
			UTORid: "alicesmi",
		})

		assert.NoError(t, err)
	})
}

func TestUser_Passwords(t *testing.T) {
	t.Run("set then verify round trips", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		existing := &model.User{ID: 42, UTORid: "alicesmi"}

		userRepo.On("GetByUTORid", context.Background(), "alicesmi").Return(existing, nil)
		userRepo.On("Update", context.Background(), mock.MatchedBy(func(u *model.User) bool {
			return u.PasswordHash != nil
		})).Return(nil)

		err := svc.SetPassword(context.Background(), service.SetPasswordCommand{
			UTORid:   "alicesmi",
			Password: "correct horse",
		})
		assert.NoError(t, err)
		assert.NotNil(t, existing.PasswordHash)

		u, err := svc.VerifyPassword(context.Background(), "alicesmi", "correct horse")
		assert.NoError(t, err)
		assert.Equal(t, "alicesmi", u.UTORid)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		existing := &model.User{ID: 42, UTORid: "alicesmi"}

		userRepo.On("GetByUTORid", context.Background(), "alicesmi").Return(existing, nil)
		userRepo.On("Update", context.Background(), mock.AnythingOfType("*model.User")).
			Return(nil)

		err := svc.SetPassword(context.Background(), service.SetPasswordCommand{
			UTORid:   "alicesmi",
			Password: "correct horse",
		})
		assert.NoError(t, err)

		_, err = svc.VerifyPassword(context.Background(), "alicesmi", "battery staple")

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeUnauthorized, serviceErr.Code)
	})

	t.Run("user without a password cannot log in", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		existing := &model.User{ID: 42, UTORid: "alicesmi"}
		userRepo.On("GetByUTORid", context.Background(), "alicesmi").Return(existing, nil)

		_, err := svc.VerifyPassword(context.Background(), "alicesmi", "anything")

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeUnauthorized, serviceErr.Code)
	})

	t.Run("unknown user is unauthorized not revealed", func(t *testing.T) {
		svc, _, userRepo := newUserService(t)

		userRepo.On("GetByUTORid", context.Background(), "ghostusr").
			Return(nil, repository.ErrUserNotFound)

		_, err := svc.VerifyPassword(context.Background(), "ghostusr", "anything")

		var serviceErr service.Error
		assert.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, constants.ErrCodeUnauthorized, serviceErr.Code)
	})
}
