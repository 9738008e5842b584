package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"
	"thoonsheet-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// ErrInvalidCredentials is returned for any login failure so the caller
// cannot distinguish a missing account from a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

type authService struct {
	users  repository.UserRepository
	tokens security.TokenManager
	log    *slog.Logger
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    logger.WithService("auth"),
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn("failed login attempt", "username", username)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.TokenVersion)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("failed to record last login", "user_id", user.ID, "error", err)
	} else {
		now := time.Now().UTC()
		user.LastLogin = &now
	}

	return user, token, nil
}

func (s *authService) ChangePassword(ctx context.Context, actor policy.Actor, oldPassword, newPassword, confirm string) (string, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return "", domain.NewValidationError("old_password", "old password is incorrect")
	}
	if err := validateNewPassword(newPassword, confirm); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return "", err
	}

	// UpdatePassword bumped the token version, which invalidates every
	// token issued before this call. Hand back a token minted against the
	// new version so the current session survives.
	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, user.TokenVersion+1)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}

	s.log.Info("password changed", "user_id", user.ID)
	return token, nil
}

func (s *authService) SetUserPassword(ctx context.Context, actor policy.Actor, userID int32, newPassword, confirm string) error {
	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !policy.CanSetUserPassword(actor, target) {
		if !policy.CanViewUser(actor, target) {
			return domain.ErrNotFound
		}
		return domain.ErrPermissionDenied
	}
	if err := validateNewPassword(newPassword, confirm); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, target.ID, string(hash)); err != nil {
		return err
	}

	s.log.Info("password reset", "user_id", target.ID, "actor_id", actor.ID)
	return nil
}

func validateNewPassword(newPassword, confirm string) error {
	if len(newPassword) < minPasswordLength {
		return domain.NewValidationError("new_password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if newPassword != confirm {
		return domain.NewValidationError("confirm_password", "passwords do not match")
	}
	return nil
}
