package postgres

import (
	"database/sql"

	"thoonsheet-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.GroupRepository
	repository.PaymentAccountRepository
	repository.TransactionRepository
	repository.AuditEntryRepository
	repository.SummaryRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		UserRepository:           NewUserRepository(db),
		GroupRepository:          NewGroupRepository(db),
		PaymentAccountRepository: NewPaymentAccountRepository(db),
		TransactionRepository:    NewTransactionRepository(db),
		AuditEntryRepository:     NewAuditEntryRepository(db),
		SummaryRepository:        NewSummaryRepository(db),
	}
}
