package service_test

import (
	"context"
	"testing"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/security"
	"thoonsheet-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	mockUserRepo := new(MockUserRepo)
	tokens := security.NewTokenManager(testSecret, time.Hour)
	svc := service.NewAuthService(mockUserRepo, tokens)
	ctx := context.Background()

	owner := &domain.User{
		ID:           1,
		Username:     "owner1",
		PasswordHash: hashOf(t, "correct-horse"),
		Role:         domain.RoleOwner,
		TokenVersion: 3,
	}

	t.Run("Success", func(t *testing.T) {
		mockUserRepo.On("GetByUsername", ctx, "owner1").Return(owner, nil).Once()
		mockUserRepo.On("TouchLastLogin", ctx, int32(1)).Return(nil).Once()

		user, token, err := svc.Login(ctx, "owner1", "correct-horse")
		assert.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)
		assert.NotEmpty(t, token)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), claims.UserID)
		assert.Equal(t, int32(3), claims.TokenVersion)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockUserRepo.On("GetByUsername", ctx, "owner1").Return(owner, nil).Once()

		_, _, err := svc.Login(ctx, "owner1", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mockUserRepo.On("GetByUsername", ctx, "ghost").Return(nil, domain.ErrNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	mockUserRepo := new(MockUserRepo)
	tokens := security.NewTokenManager(testSecret, time.Hour)
	svc := service.NewAuthService(mockUserRepo, tokens)
	ctx := context.Background()

	user := &domain.User{
		ID:           5,
		Username:     "auditor1",
		PasswordHash: hashOf(t, "old-password"),
		Role:         domain.RoleAuditor,
		TokenVersion: 1,
	}
	actor := policy.ActorFor(user)

	t.Run("Success", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, int32(5)).Return(user, nil).Once()
		mockUserRepo.On("UpdatePassword", ctx, int32(5), mock.MatchedBy(func(hash string) bool {
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password")) == nil
		})).Return(nil).Once()

		token, err := svc.ChangePassword(ctx, actor, "old-password", "new-password", "new-password")
		assert.NoError(t, err)

		// The returned token must carry the bumped version; tokens minted
		// before the change keep the old one and stop validating.
		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), claims.TokenVersion)
	})

	t.Run("WrongOldPassword", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, int32(5)).Return(user, nil).Once()

		_, err := svc.ChangePassword(ctx, actor, "not-it", "new-password", "new-password")
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "old_password", validationErr.Field)
	})

	t.Run("ConfirmMismatch", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, int32(5)).Return(user, nil).Once()

		_, err := svc.ChangePassword(ctx, actor, "old-password", "new-password", "different")
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	t.Run("TooShort", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, int32(5)).Return(user, nil).Once()

		_, err := svc.ChangePassword(ctx, actor, "old-password", "short", "short")
		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	})

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_SetUserPassword(t *testing.T) {
	mockUserRepo := new(MockUserRepo)
	tokens := security.NewTokenManager(testSecret, time.Hour)
	svc := service.NewAuthService(mockUserRepo, tokens)
	ctx := context.Background()

	ownerActor := policy.Actor{ID: 1, Role: domain.RoleOwner}
	auditorActor := policy.Actor{ID: 5, Role: domain.RoleAuditor}
	auditor := &domain.User{ID: 5, Username: "auditor1", Role: domain.RoleAuditor}
	otherOwner := &domain.User{ID: 2, Username: "owner2", Role: domain.RoleOwner}

	t.Run("OwnerResetsAuditor", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, int32(5)).Return(auditor, nil).Once()
		mockUserRepo.On("UpdatePassword", ctx, int32(5), mock.AnythingOfType("string")).Return(nil).Once()

		err := svc.SetUserPassword(ctx, ownerActor, 5, "fresh-password", "fresh-password")
		assert.NoError(t, err)
	})

	t.Run("AuditorCannotReset", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, int32(5)).Return(auditor, nil).Once()

		err := svc.SetUserPassword(ctx, auditorActor, 5, "fresh-password", "fresh-password")
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("OwnerCannotSeeOtherOwner", func(t *testing.T) {
		mockUserRepo.On("GetByID", ctx, int32(2)).Return(otherOwner, nil).Once()

		err := svc.SetUserPassword(ctx, ownerActor, 2, "fresh-password", "fresh-password")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	mockUserRepo.AssertExpectations(t)
}
