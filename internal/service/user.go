package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	users repository.UserRepository
	log   *slog.Logger
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{
		users: users,
		log:   logger.WithService("user"),
	}
}

func (s *userService) Create(ctx context.Context, actor policy.Actor, in CreateUserInput) (*domain.User, error) {
	if !policy.CanCreateUser(actor) {
		return nil, domain.ErrPermissionDenied
	}

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, domain.NewValidationError("username", "username is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if in.Role == "" {
		in.Role = domain.RoleAuditor
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.NewValidationError("role", "role must be owner or auditor")
	}

	isStaff := in.IsStaff != nil && *in.IsStaff
	isSuperuser := in.IsSuperuser != nil && *in.IsSuperuser
	if !actor.IsSuperuser {
		if in.Role != domain.RoleAuditor {
			return nil, domain.NewValidationError("role", "owners can only create auditor accounts")
		}
		if isStaff || isSuperuser {
			return nil, domain.NewValidationError("is_staff", "owners cannot grant staff or superuser flags")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: string(hash),
		Role:         in.Role,
		IsStaff:      isStaff,
		IsSuperuser:  isSuperuser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user created", "user_id", user.ID, "role", user.Role, "actor_id", actor.ID)
	return user, nil
}

func (s *userService) Get(ctx context.Context, actor policy.Actor, id int32) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewUser(actor, user) {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, actor policy.Actor) ([]domain.User, error) {
	if !policy.CanListUsers(actor) {
		return nil, domain.ErrPermissionDenied
	}
	if actor.IsSuperuser {
		return s.users.List(ctx, "")
	}
	if actor.Role == domain.RoleAuditor {
		// Auditors get no roster, only their own record.
		self, err := s.users.GetByID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		return []domain.User{*self}, nil
	}
	// Owners manage the auditor roster; other owners stay out of view.
	return s.users.List(ctx, domain.RoleAuditor)
}

func (s *userService) Update(ctx context.Context, actor policy.Actor, id int32, in UpdateUserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdateUser(actor, user) {
		if !policy.CanViewUser(actor, user) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrPermissionDenied
	}

	if !actor.IsSuperuser {
		if in.IsStaff != nil || in.IsSuperuser != nil {
			return nil, domain.ErrPermissionDenied
		}
		if in.Role != nil && actor.Role != domain.RoleOwner {
			return nil, domain.ErrPermissionDenied
		}
	}

	if in.Password != nil && len(*in.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, domain.NewValidationError("username", "username is required")
		}
		user.Username = username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		user.PhoneNumber = *in.PhoneNumber
	}
	if in.Role != nil {
		if !domain.ValidRole(*in.Role) {
			return nil, domain.NewValidationError("role", "role must be owner or auditor")
		}
		user.Role = *in.Role
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}
	if in.IsSuperuser != nil {
		user.IsSuperuser = *in.IsSuperuser
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
			return nil, err
		}
	}

	s.log.Info("user updated", "user_id", user.ID, "actor_id", actor.ID)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, actor policy.Actor, id int32) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeleteUser(actor) {
		if !policy.CanViewUser(actor, user) {
			return domain.ErrNotFound
		}
		return domain.ErrPermissionDenied
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", "user_id", id, "actor_id", actor.ID)
	return nil
}
