package repository

import (
	"context"
	"time"

	"thoonsheet-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, role domain.Role) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// UpdatePassword stores a new hash and bumps token_version so issued
	// tokens stop validating.
	UpdatePassword(ctx context.Context, id int32, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int32) error
	Delete(ctx context.Context, id int32) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *domain.Group) error
	GetByID(ctx context.Context, id int32) (*domain.Group, error)
	List(ctx context.Context) ([]domain.Group, error)
	Update(ctx context.Context, group *domain.Group) error
	Delete(ctx context.Context, id int32) error
}

type PaymentAccountRepository interface {
	Create(ctx context.Context, account *domain.PaymentAccount) error
	GetByID(ctx context.Context, id int32) (*domain.PaymentAccount, error)
	List(ctx context.Context) ([]domain.PaymentAccount, error)
	Update(ctx context.Context, account *domain.PaymentAccount) error
	Delete(ctx context.Context, id int32) error
}

// TransactionFilter narrows transaction listings. SubmittedBy doubles as
// the visibility scope for auditors.
type TransactionFilter struct {
	SubmittedBy      *int32
	Status           domain.TransactionStatus
	Type             domain.TransactionType
	GroupID          *int32
	PaymentAccountID *int32
	TransferIDLast6  string
	DateFrom         *time.Time
	DateTo           *time.Time
	Search           string
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int32) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	Delete(ctx context.Context, id int32) error

	// Approve and Reject are conditional single-statement updates matching
	// status='pending'; they report how many rows changed so the caller can
	// distinguish a lost race from a missing row.
	Approve(ctx context.Context, id int32, approvedAt time.Time, ownerNotes *string) (int64, error)
	Reject(ctx context.Context, id int32, ownerNotes *string) (int64, error)
	// Resubmit matches status='rejected' AND submitted_by=submitterID and
	// resets the review fields.
	Resubmit(ctx context.Context, id, submitterID int32) (int64, error)
}

type AuditEntryRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	GetByID(ctx context.Context, id int32) (*domain.AuditEntry, error)
	// List scopes to one auditor when auditorID is non-nil.
	List(ctx context.Context, auditorID *int32) ([]domain.AuditEntry, error)
	Update(ctx context.Context, entry *domain.AuditEntry) error
	Delete(ctx context.Context, id int32) error
}

type SummaryRepository interface {
	Overall(ctx context.Context) (*domain.AuditSummary, error)
	ByGroup(ctx context.Context) ([]domain.GroupSummary, error)
	ByPeriod(ctx context.Context, period domain.SummaryPeriod, start, end *time.Time) ([]domain.PeriodBucket, error)
}
