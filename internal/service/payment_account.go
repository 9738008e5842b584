package service

import (
	"context"
	"log/slog"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"
)

type paymentAccountService struct {
	accounts repository.PaymentAccountRepository
	log      *slog.Logger
}

func NewPaymentAccountService(accounts repository.PaymentAccountRepository) PaymentAccountService {
	return &paymentAccountService{
		accounts: accounts,
		log:      logger.WithService("payment_account"),
	}
}

func (s *paymentAccountService) Create(ctx context.Context, actor policy.Actor, in PaymentAccountInput) (*domain.PaymentAccount, error) {
	if !policy.CanCreateOwnedResource(actor) {
		return nil, domain.ErrPermissionDenied
	}
	if in.Name == nil || *in.Name == "" {
		return nil, domain.NewValidationError("payment_account_name", "payment account name is required")
	}

	account := &domain.PaymentAccount{
		OwnerID: actor.ID,
		Name:    *in.Name,
	}
	if in.Type != nil {
		account.Type = *in.Type
	}
	if in.BankName != nil {
		account.BankName = *in.BankName
	}
	if in.BankAccountNumber != nil {
		account.BankAccountNumber = *in.BankAccountNumber
	}
	if in.PhoneNumber != nil {
		account.PhoneNumber = *in.PhoneNumber
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.log.Info("payment account created", "payment_account_id", account.ID, "owner_id", account.OwnerID)
	return account, nil
}

func (s *paymentAccountService) Get(ctx context.Context, actor policy.Actor, id int32) (*domain.PaymentAccount, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *paymentAccountService) List(ctx context.Context, actor policy.Actor) ([]domain.PaymentAccount, error) {
	return s.accounts.List(ctx)
}

func (s *paymentAccountService) Update(ctx context.Context, actor policy.Actor, id int32, in PaymentAccountInput) (*domain.PaymentAccount, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanWriteOwnedResource(actor, account) {
		return nil, domain.ErrPermissionDenied
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.NewValidationError("payment_account_name", "payment account name is required")
		}
		account.Name = *in.Name
	}
	if in.Type != nil {
		account.Type = *in.Type
	}
	if in.BankName != nil {
		account.BankName = *in.BankName
	}
	if in.BankAccountNumber != nil {
		account.BankAccountNumber = *in.BankAccountNumber
	}
	if in.PhoneNumber != nil {
		account.PhoneNumber = *in.PhoneNumber
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *paymentAccountService) Delete(ctx context.Context, actor policy.Actor, id int32) error {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanWriteOwnedResource(actor, account) {
		return domain.ErrPermissionDenied
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("payment account deleted", "payment_account_id", id, "actor_id", actor.ID)
	return nil
}
