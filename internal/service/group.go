package service

import (
	"context"
	"log/slog"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"
)

type groupService struct {
	groups repository.GroupRepository
	log    *slog.Logger
}

func NewGroupService(groups repository.GroupRepository) GroupService {
	return &groupService{
		groups: groups,
		log:    logger.WithService("group"),
	}
}

func (s *groupService) Create(ctx context.Context, actor policy.Actor, in GroupInput) (*domain.Group, error) {
	if !policy.CanCreateOwnedResource(actor) {
		return nil, domain.ErrPermissionDenied
	}
	if in.Title == nil || *in.Title == "" {
		return nil, domain.NewValidationError("group_title", "group title is required")
	}

	group := &domain.Group{
		OwnerID:      actor.ID,
		Title:        *in.Title,
		TargetAmount: in.TargetAmount,
	}
	if in.Type != nil {
		group.Type = *in.Type
	}
	if in.Name != nil {
		group.Name = *in.Name
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, err
	}

	s.log.Info("group created", "group_id", group.ID, "owner_id", group.OwnerID)
	return group, nil
}

func (s *groupService) Get(ctx context.Context, actor policy.Actor, id int32) (*domain.Group, error) {
	return s.groups.GetByID(ctx, id)
}

// List is unscoped: auditors need the full set of groups to file
// transactions and audit entries against them.
func (s *groupService) List(ctx context.Context, actor policy.Actor) ([]domain.Group, error) {
	return s.groups.List(ctx)
}

func (s *groupService) Update(ctx context.Context, actor policy.Actor, id int32, in GroupInput) (*domain.Group, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanWriteOwnedResource(actor, group) {
		return nil, domain.ErrPermissionDenied
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.NewValidationError("group_title", "group title is required")
		}
		group.Title = *in.Title
	}
	if in.Type != nil {
		group.Type = *in.Type
	}
	if in.Name != nil {
		group.Name = *in.Name
	}
	if in.TargetAmount != nil {
		group.TargetAmount = in.TargetAmount
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, actor policy.Actor, id int32) error {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanWriteOwnedResource(actor, group) {
		return domain.ErrPermissionDenied
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("group deleted", "group_id", id, "actor_id", actor.ID)
	return nil
}
