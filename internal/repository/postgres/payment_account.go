package postgres

import (
	"context"
	"database/sql"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/repository"
)

type paymentAccountRepository struct {
	db *sql.DB
}

func NewPaymentAccountRepository(db *sql.DB) repository.PaymentAccountRepository {
	return &paymentAccountRepository{db: db}
}

const paymentAccountColumns = `id, owner_id, payment_account_name, payment_account_type, COALESCE(bank_name, ''), COALESCE(bank_account_number, ''), COALESCE(phone_number, ''), created_at, updated_at`

func scanPaymentAccount(row interface{ Scan(...any) error }) (*domain.PaymentAccount, error) {
	p := &domain.PaymentAccount{}
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Type, &p.BankName, &p.BankAccountNumber,
		&p.PhoneNumber, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *paymentAccountRepository) Create(ctx context.Context, p *domain.PaymentAccount) error {
	query := `INSERT INTO payment_accounts (owner_id, payment_account_name, payment_account_type, bank_name, bank_account_number, phone_number, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7) RETURNING id`
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, p.OwnerID, p.Name, p.Type, p.BankName,
		p.BankAccountNumber, p.PhoneNumber, now).Scan(&p.ID)
	return translateError(err)
}

func (r *paymentAccountRepository) GetByID(ctx context.Context, id int32) (*domain.PaymentAccount, error) {
	query := `SELECT ` + paymentAccountColumns + ` FROM payment_accounts WHERE id = $1`
	return scanPaymentAccount(r.db.QueryRowContext(ctx, query, id))
}

func (r *paymentAccountRepository) List(ctx context.Context) ([]domain.PaymentAccount, error) {
	query := `SELECT ` + paymentAccountColumns + ` FROM payment_accounts ORDER BY payment_account_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var accounts []domain.PaymentAccount
	for rows.Next() {
		p, err := scanPaymentAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *p)
	}
	return accounts, rows.Err()
}

func (r *paymentAccountRepository) Update(ctx context.Context, p *domain.PaymentAccount) error {
	query := `UPDATE payment_accounts SET payment_account_name=$1, payment_account_type=$2, bank_name=$3, bank_account_number=$4, phone_number=$5, updated_at=$6 WHERE id=$7`
	p.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Type, p.BankName, p.BankAccountNumber,
		p.PhoneNumber, p.UpdatedAt, p.ID)
	return translateError(err)
}

func (r *paymentAccountRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payment_accounts WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
