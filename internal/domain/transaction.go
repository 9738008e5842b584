package domain

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusApproved TransactionStatus = "approved"
	TransactionStatusRejected TransactionStatus = "rejected"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

func ValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// transferIDPattern: the last six digits of a transfer receipt, nothing else.
var transferIDPattern = regexp.MustCompile(`^\d{6}$`)

func ValidTransferID(s string) bool {
	return transferIDPattern.MatchString(s)
}

// Transaction is a money movement submitted by an auditor (or owner) and
// reviewed by an owner. (transfer_id_last_6_digits, payment_account) is
// unique per deployment; the constraint lives in the database.
type Transaction struct {
	ID                 int32             `json:"id"`
	SubmittedBy        int32             `json:"submitted_by"`
	TransactionDate    time.Time         `json:"transaction_date"`
	GroupID            int32             `json:"group"`
	PaymentAccountID   int32             `json:"payment_account"`
	TransferIDLast6    string            `json:"transfer_id_last_6_digits"`
	Amount             decimal.Decimal   `json:"amount"`
	Type               TransactionType   `json:"transaction_type"`
	Image              string            `json:"image,omitempty"`
	SubmittedAt        time.Time         `json:"submitted_at"`
	Status             TransactionStatus `json:"status"`
	ApprovedByOwnerAt  *time.Time        `json:"approved_by_owner_at,omitempty"`
	OwnerNotes         *string           `json:"owner_notes,omitempty"`
	SubmittedByName    string            `json:"submitted_by_username,omitempty"`
	GroupName          string            `json:"group_name,omitempty"`
	PaymentAccountName string            `json:"payment_account_name,omitempty"`
}

func (t *Transaction) OwnedBy(userID int32) bool {
	return t.SubmittedBy == userID
}
