package service

import (
	"context"
	"errors"
	"log/slog"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"
)

type auditEntryService struct {
	entries repository.AuditEntryRepository
	groups  repository.GroupRepository
	log     *slog.Logger
}

func NewAuditEntryService(entries repository.AuditEntryRepository, groups repository.GroupRepository) AuditEntryService {
	return &auditEntryService{
		entries: entries,
		groups:  groups,
		log:     logger.WithService("audit_entry"),
	}
}

func (s *auditEntryService) Create(ctx context.Context, actor policy.Actor, in AuditEntryInput) (*domain.AuditEntry, error) {
	if !policy.CanCreateAuditEntry(actor) {
		return nil, domain.ErrPermissionDenied
	}
	if in.GroupID == nil {
		return nil, domain.NewValidationError("group", "group is required")
	}
	if _, err := s.groups.GetByID(ctx, *in.GroupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("group", "group does not exist")
		}
		return nil, err
	}

	entry := &domain.AuditEntry{
		GroupID:   *in.GroupID,
		AuditorID: actor.ID,
	}
	if err := applyAuditAmounts(entry, in); err != nil {
		return nil, err
	}
	if in.Remarks != nil {
		entry.Remarks = *in.Remarks
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.log.Info("audit entry created", "audit_entry_id", entry.ID, "auditor_id", entry.AuditorID, "group_id", entry.GroupID)
	return s.entries.GetByID(ctx, entry.ID)
}

func (s *auditEntryService) Get(ctx context.Context, actor policy.Actor, id int32) (*domain.AuditEntry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewAuditEntry(actor, entry) {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

func (s *auditEntryService) List(ctx context.Context, actor policy.Actor) ([]domain.AuditEntry, error) {
	if actor.Role == domain.RoleAuditor && !actor.IsSuperuser {
		id := actor.ID
		return s.entries.List(ctx, &id)
	}
	return s.entries.List(ctx, nil)
}

func (s *auditEntryService) Update(ctx context.Context, actor policy.Actor, id int32, in AuditEntryInput) (*domain.AuditEntry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewAuditEntry(actor, entry) {
		return nil, domain.ErrNotFound
	}
	if !policy.CanUpdateAuditEntry(actor, entry) {
		return nil, domain.ErrPermissionDenied
	}

	if in.GroupID != nil {
		if _, err := s.groups.GetByID(ctx, *in.GroupID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("group", "group does not exist")
			}
			return nil, err
		}
		entry.GroupID = *in.GroupID
	}
	if err := applyAuditAmounts(entry, in); err != nil {
		return nil, err
	}
	if in.Remarks != nil {
		entry.Remarks = *in.Remarks
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	return s.entries.GetByID(ctx, entry.ID)
}

func (s *auditEntryService) Delete(ctx context.Context, actor policy.Actor, id int32) error {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanViewAuditEntry(actor, entry) {
		return domain.ErrNotFound
	}
	if !policy.CanDeleteAuditEntry(actor) {
		return domain.ErrPermissionDenied
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("audit entry deleted", "audit_entry_id", id, "actor_id", actor.ID)
	return nil
}

func applyAuditAmounts(entry *domain.AuditEntry, in AuditEntryInput) error {
	if in.ReceivableAmount != nil {
		if in.ReceivableAmount.IsNegative() {
			return domain.NewValidationError("receivable_amount", "amount cannot be negative")
		}
		entry.ReceivableAmount = *in.ReceivableAmount
	}
	if in.PayableAmount != nil {
		if in.PayableAmount.IsNegative() {
			return domain.NewValidationError("payable_amount", "amount cannot be negative")
		}
		entry.PayableAmount = *in.PayableAmount
	}
	return nil
}
