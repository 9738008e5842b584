package service

import (
	"context"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/policy"
	"thoonsheet-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type AuthService interface {
	// Login returns the authenticated user and a bearer token.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	// ChangePassword is the self-service flow; it revokes outstanding
	// tokens and returns a fresh one.
	ChangePassword(ctx context.Context, actor policy.Actor, oldPassword, newPassword, confirm string) (string, error)
	// SetUserPassword is the owner-initiated reset for another account;
	// the target has to log in again.
	SetUserPassword(ctx context.Context, actor policy.Actor, userID int32, newPassword, confirm string) error
}

type CreateUserInput struct {
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	PhoneNumber string      `json:"phone_number"`
	Password    string      `json:"password"`
	Role        domain.Role `json:"role"`
	IsStaff     *bool       `json:"is_staff"`
	IsSuperuser *bool       `json:"is_superuser"`
}

type UpdateUserInput struct {
	Username    *string      `json:"username"`
	Email       *string      `json:"email"`
	FirstName   *string      `json:"first_name"`
	LastName    *string      `json:"last_name"`
	PhoneNumber *string      `json:"phone_number"`
	Password    *string      `json:"password"`
	Role        *domain.Role `json:"role"`
	IsStaff     *bool        `json:"is_staff"`
	IsSuperuser *bool        `json:"is_superuser"`
}

type UserService interface {
	Create(ctx context.Context, actor policy.Actor, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor policy.Actor, id int32) (*domain.User, error)
	List(ctx context.Context, actor policy.Actor) ([]domain.User, error)
	Update(ctx context.Context, actor policy.Actor, id int32, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor policy.Actor, id int32) error
}

type GroupInput struct {
	Title        *string          `json:"group_title"`
	Type         *string          `json:"group_type"`
	Name         *string          `json:"name"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
}

type GroupService interface {
	Create(ctx context.Context, actor policy.Actor, in GroupInput) (*domain.Group, error)
	Get(ctx context.Context, actor policy.Actor, id int32) (*domain.Group, error)
	List(ctx context.Context, actor policy.Actor) ([]domain.Group, error)
	Update(ctx context.Context, actor policy.Actor, id int32, in GroupInput) (*domain.Group, error)
	Delete(ctx context.Context, actor policy.Actor, id int32) error
}

type PaymentAccountInput struct {
	Name              *string `json:"payment_account_name"`
	Type              *string `json:"payment_account_type"`
	BankName          *string `json:"bank_name"`
	BankAccountNumber *string `json:"bank_account_number"`
	PhoneNumber       *string `json:"phone_number"`
}

type PaymentAccountService interface {
	Create(ctx context.Context, actor policy.Actor, in PaymentAccountInput) (*domain.PaymentAccount, error)
	Get(ctx context.Context, actor policy.Actor, id int32) (*domain.PaymentAccount, error)
	List(ctx context.Context, actor policy.Actor) ([]domain.PaymentAccount, error)
	Update(ctx context.Context, actor policy.Actor, id int32, in PaymentAccountInput) (*domain.PaymentAccount, error)
	Delete(ctx context.Context, actor policy.Actor, id int32) error
}

type CreateTransactionInput struct {
	TransactionDate  time.Time
	GroupID          int32
	PaymentAccountID int32
	TransferIDLast6  string
	Amount           decimal.Decimal
	Type             domain.TransactionType
	Image            string
}

// UpdateTransactionInput uses pointers so an absent field means "leave it
// alone". Image follows the three-way convention: nil untouched, empty
// string clears the stored image, anything else replaces it.
type UpdateTransactionInput struct {
	TransactionDate  *time.Time
	GroupID          *int32
	PaymentAccountID *int32
	TransferIDLast6  *string
	Amount           *decimal.Decimal
	Type             *domain.TransactionType
	Image            *string
	OwnerNotes       *string
}

type TransactionService interface {
	Create(ctx context.Context, actor policy.Actor, in CreateTransactionInput) (*domain.Transaction, error)
	Get(ctx context.Context, actor policy.Actor, id int32) (*domain.Transaction, error)
	List(ctx context.Context, actor policy.Actor, filter repository.TransactionFilter) ([]domain.Transaction, error)
	Update(ctx context.Context, actor policy.Actor, id int32, in UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, actor policy.Actor, id int32) error

	Approve(ctx context.Context, actor policy.Actor, id int32, ownerNotes *string) (*domain.Transaction, error)
	Reject(ctx context.Context, actor policy.Actor, id int32, ownerNotes *string) (*domain.Transaction, error)
	Resubmit(ctx context.Context, actor policy.Actor, id int32) (*domain.Transaction, error)
}

type AuditEntryInput struct {
	GroupID          *int32           `json:"group"`
	ReceivableAmount *decimal.Decimal `json:"receivable_amount"`
	PayableAmount    *decimal.Decimal `json:"payable_amount"`
	Remarks          *string          `json:"remarks"`
}

type AuditEntryService interface {
	Create(ctx context.Context, actor policy.Actor, in AuditEntryInput) (*domain.AuditEntry, error)
	Get(ctx context.Context, actor policy.Actor, id int32) (*domain.AuditEntry, error)
	List(ctx context.Context, actor policy.Actor) ([]domain.AuditEntry, error)
	Update(ctx context.Context, actor policy.Actor, id int32, in AuditEntryInput) (*domain.AuditEntry, error)
	Delete(ctx context.Context, actor policy.Actor, id int32) error
}

type SummaryService interface {
	// Report builds the full aggregation response; period is optional and
	// enables the time-bucketed rollup.
	Report(ctx context.Context, actor policy.Actor, period domain.SummaryPeriod, start, end *time.Time) (*domain.SummaryReport, error)
}
