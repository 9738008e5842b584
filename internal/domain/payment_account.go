package domain

import "time"

// PaymentAccount is a receiving account an owner registers for transfers
// (kpay, wavepay, bank account, etc).
type PaymentAccount struct {
	ID                int32     `json:"id"`
	OwnerID           int32     `json:"owner"`
	Name              string    `json:"payment_account_name"`
	Type              string    `json:"payment_account_type"`
	BankName          string    `json:"bank_name,omitempty"`
	BankAccountNumber string    `json:"bank_account_number,omitempty"`
	PhoneNumber       string    `json:"phone_number,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (p *PaymentAccount) OwnedBy(userID int32) bool {
	return p.OwnerID == userID
}
