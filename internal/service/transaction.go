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
	"thoonsheet-backend/internal/storage"

	"github.com/shopspring/decimal"
)

type transactionService struct {
	transactions repository.TransactionRepository
	groups       repository.GroupRepository
	accounts     repository.PaymentAccountRepository
	images       storage.FileStore
	log          *slog.Logger
}

func NewTransactionService(
	transactions repository.TransactionRepository,
	groups repository.GroupRepository,
	accounts repository.PaymentAccountRepository,
	images storage.FileStore,
) TransactionService {
	return &transactionService{
		transactions: transactions,
		groups:       groups,
		accounts:     accounts,
		images:       images,
		log:          logger.WithService("transaction"),
	}
}

func (s *transactionService) Create(ctx context.Context, actor policy.Actor, in CreateTransactionInput) (*domain.Transaction, error) {
	if !policy.CanCreateTransaction(actor) {
		return nil, domain.ErrPermissionDenied
	}
	if err := s.validateCore(ctx, in.TransferIDLast6, in.Amount, in.Type, in.GroupID, in.PaymentAccountID); err != nil {
		return nil, err
	}
	if in.TransactionDate.IsZero() {
		return nil, domain.NewValidationError("transaction_date", "transaction date is required")
	}

	tx := &domain.Transaction{
		SubmittedBy:      actor.ID,
		TransactionDate:  in.TransactionDate,
		GroupID:          in.GroupID,
		PaymentAccountID: in.PaymentAccountID,
		TransferIDLast6:  in.TransferIDLast6,
		Amount:           in.Amount,
		Type:             in.Type,
		Image:            in.Image,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}

	s.log.Info("transaction submitted", "transaction_id", tx.ID, "submitted_by", tx.SubmittedBy, "amount", tx.Amount)
	return s.transactions.GetByID(ctx, tx.ID)
}

func (s *transactionService) Get(ctx context.Context, actor policy.Actor, id int32) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewTransaction(actor, tx) {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, actor policy.Actor, filter repository.TransactionFilter) ([]domain.Transaction, error) {
	if !policy.CanReadOwnedResources(actor) {
		return nil, domain.ErrPermissionDenied
	}
	if actor.Role == domain.RoleAuditor && !actor.IsSuperuser {
		id := actor.ID
		filter.SubmittedBy = &id
	}
	return s.transactions.List(ctx, filter)
}

func (s *transactionService) Update(ctx context.Context, actor policy.Actor, id int32, in UpdateTransactionInput) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewTransaction(actor, tx) {
		return nil, domain.ErrNotFound
	}
	if !policy.CanUpdateTransaction(actor, tx) {
		return nil, domain.ErrPermissionDenied
	}

	// Auditors can only edit transactions an owner has rejected; the edit
	// doubles as a re-submission. Pending and approved records stay frozen
	// for them until a reviewer acts.
	resubmitting := actor.Role == domain.RoleAuditor && !actor.IsSuperuser
	if resubmitting && tx.Status != domain.TransactionStatusRejected {
		return nil, domain.ErrPermissionDenied
	}

	if in.TransactionDate != nil {
		tx.TransactionDate = *in.TransactionDate
	}
	if in.GroupID != nil {
		tx.GroupID = *in.GroupID
	}
	if in.PaymentAccountID != nil {
		tx.PaymentAccountID = *in.PaymentAccountID
	}
	if in.TransferIDLast6 != nil {
		tx.TransferIDLast6 = *in.TransferIDLast6
	}
	if in.Amount != nil {
		tx.Amount = *in.Amount
	}
	if in.Type != nil {
		tx.Type = *in.Type
	}
	if in.OwnerNotes != nil && !resubmitting {
		tx.OwnerNotes = in.OwnerNotes
	}

	oldImage := ""
	if in.Image != nil && *in.Image != tx.Image {
		oldImage = tx.Image
		tx.Image = *in.Image
	}

	if err := s.validateCore(ctx, tx.TransferIDLast6, tx.Amount, tx.Type, tx.GroupID, tx.PaymentAccountID); err != nil {
		return nil, err
	}

	// An auditor editing a rejected transaction puts it back in the
	// review queue. Owner edits never move the status; the dedicated
	// actions do that.
	if resubmitting {
		tx.Status = domain.TransactionStatusPending
		tx.ApprovedByOwnerAt = nil
		tx.OwnerNotes = nil
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		return nil, err
	}
	if oldImage != "" {
		if err := s.images.Delete(oldImage); err != nil {
			s.log.Warn("failed to remove replaced image", "key", oldImage, "error", err)
		}
	}

	s.log.Info("transaction updated", "transaction_id", tx.ID, "actor_id", actor.ID, "status", tx.Status)
	return s.transactions.GetByID(ctx, tx.ID)
}

func (s *transactionService) Delete(ctx context.Context, actor policy.Actor, id int32) error {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanViewTransaction(actor, tx) {
		return domain.ErrNotFound
	}
	if !policy.CanDeleteTransaction(actor) {
		return domain.ErrPermissionDenied
	}
	if err := s.transactions.Delete(ctx, id); err != nil {
		return err
	}
	if tx.Image != "" {
		if err := s.images.Delete(tx.Image); err != nil {
			s.log.Warn("failed to remove transaction image", "key", tx.Image, "error", err)
		}
	}
	s.log.Info("transaction deleted", "transaction_id", id, "actor_id", actor.ID)
	return nil
}

func (s *transactionService) Approve(ctx context.Context, actor policy.Actor, id int32, ownerNotes *string) (*domain.Transaction, error) {
	if !policy.CanReviewTransactions(actor) {
		return nil, domain.ErrPermissionDenied
	}

	rows, err := s.transactions.Approve(ctx, id, time.Now().UTC(), ownerNotes)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, s.reviewConflict(ctx, id, "approved")
	}

	s.log.Info("transaction approved", "transaction_id", id, "actor_id", actor.ID)
	return s.transactions.GetByID(ctx, id)
}

func (s *transactionService) Reject(ctx context.Context, actor policy.Actor, id int32, ownerNotes *string) (*domain.Transaction, error) {
	if !policy.CanReviewTransactions(actor) {
		return nil, domain.ErrPermissionDenied
	}

	rows, err := s.transactions.Reject(ctx, id, ownerNotes)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, s.reviewConflict(ctx, id, "rejected")
	}

	s.log.Info("transaction rejected", "transaction_id", id, "actor_id", actor.ID)
	return s.transactions.GetByID(ctx, id)
}

func (s *transactionService) Resubmit(ctx context.Context, actor policy.Actor, id int32) (*domain.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewTransaction(actor, tx) {
		return nil, domain.ErrNotFound
	}
	if !policy.CanResubmitTransaction(actor, tx) {
		return nil, domain.ErrPermissionDenied
	}

	rows, err := s.transactions.Resubmit(ctx, id, tx.SubmittedBy)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.NewConflictError("only rejected transactions can be re-submitted")
	}

	s.log.Info("transaction re-submitted", "transaction_id", id, "actor_id", actor.ID)
	return s.transactions.GetByID(ctx, id)
}

// reviewConflict distinguishes a vanished transaction from one that lost
// the race to another reviewer.
func (s *transactionService) reviewConflict(ctx context.Context, id int32, action string) error {
	if _, err := s.transactions.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return domain.NewConflictError(fmt.Sprintf("transaction is not pending and cannot be %s", action))
}

func (s *transactionService) validateCore(ctx context.Context, transferID string, amount decimal.Decimal, txType domain.TransactionType, groupID, accountID int32) error {
	if !domain.ValidTransferID(transferID) {
		return domain.NewValidationError("transfer_id_last_6_digits", "must be exactly 6 digits")
	}
	if amount.IsNegative() {
		return domain.NewValidationError("amount", "amount cannot be negative")
	}
	if !domain.ValidTransactionType(txType) {
		return domain.NewValidationError("transaction_type", "transaction type must be income or expense")
	}
	if _, err := s.groups.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("group", "group does not exist")
		}
		return err
	}
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("payment_account", "payment account does not exist")
		}
		return err
	}
	return nil
}
