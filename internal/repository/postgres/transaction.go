package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/logger"
	"thoonsheet-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `t.id, t.submitted_by, t.transaction_date, t.group_id, t.payment_account_id,
	t.transfer_id_last_6_digits, t.amount, t.transaction_type, COALESCE(t.image, ''), t.submitted_at,
	t.status, t.approved_by_owner_at, t.owner_notes, u.username, g.name, p.payment_account_name`

const transactionJoins = ` FROM transactions t
	JOIN users u ON u.id = t.submitted_by
	JOIN groups g ON g.id = t.group_id
	JOIN payment_accounts p ON p.id = t.payment_account_id`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.Transaction, error) {
	tx := &domain.Transaction{}
	var approvedAt sql.NullTime
	var ownerNotes sql.NullString
	err := row.Scan(&tx.ID, &tx.SubmittedBy, &tx.TransactionDate, &tx.GroupID, &tx.PaymentAccountID,
		&tx.TransferIDLast6, &tx.Amount, &tx.Type, &tx.Image, &tx.SubmittedAt,
		&tx.Status, &approvedAt, &ownerNotes, &tx.SubmittedByName, &tx.GroupName, &tx.PaymentAccountName)
	if err != nil {
		return nil, translateError(err)
	}
	if approvedAt.Valid {
		tx.ApprovedByOwnerAt = &approvedAt.Time
	}
	if ownerNotes.Valid {
		tx.OwnerNotes = &ownerNotes.String
	}
	return tx, nil
}

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `INSERT INTO transactions (submitted_by, transaction_date, group_id, payment_account_id, transfer_id_last_6_digits, amount, transaction_type, image, submitted_at, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10) RETURNING id`
	tx.SubmittedAt = time.Now().UTC()
	tx.Status = domain.TransactionStatusPending
	err := r.db.QueryRowContext(ctx, query, tx.SubmittedBy, tx.TransactionDate, tx.GroupID,
		tx.PaymentAccountID, tx.TransferIDLast6, tx.Amount, tx.Type, tx.Image, tx.SubmittedAt, tx.Status).Scan(&tx.ID)
	return translateError(err)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int32) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + transactionJoins + ` WHERE t.id = $1`
	return scanTransaction(r.db.QueryRowContext(ctx, query, id))
}

func (r *transactionRepository) List(ctx context.Context, f repository.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + transactionJoins + ` WHERE 1=1`
	var args []any

	add := func(clause string, val any) {
		args = append(args, val)
		query += fmt.Sprintf(clause, len(args))
	}

	if f.SubmittedBy != nil {
		add(" AND t.submitted_by = $%d", *f.SubmittedBy)
	}
	if f.Status != "" {
		add(" AND t.status = $%d", f.Status)
	}
	if f.Type != "" {
		add(" AND t.transaction_type = $%d", f.Type)
	}
	if f.GroupID != nil {
		add(" AND t.group_id = $%d", *f.GroupID)
	}
	if f.PaymentAccountID != nil {
		add(" AND t.payment_account_id = $%d", *f.PaymentAccountID)
	}
	if f.TransferIDLast6 != "" {
		add(" AND t.transfer_id_last_6_digits = $%d", f.TransferIDLast6)
	}
	if f.DateFrom != nil {
		add(" AND t.transaction_date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add(" AND t.transaction_date <= $%d", *f.DateTo)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (t.transfer_id_last_6_digits LIKE $%d OR t.owner_notes ILIKE $%d)", n, n)
	}
	query += ` ORDER BY t.submitted_at DESC`

	logger.DatabaseCall("SELECT", "transactions", "filters", len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `UPDATE transactions SET transaction_date=$1, group_id=$2, payment_account_id=$3,
	          transfer_id_last_6_digits=$4, amount=$5, transaction_type=$6, image=NULLIF($7, ''),
	          status=$8, approved_by_owner_at=$9, owner_notes=$10 WHERE id=$11`
	res, err := r.db.ExecContext(ctx, query, tx.TransactionDate, tx.GroupID, tx.PaymentAccountID,
		tx.TransferIDLast6, tx.Amount, tx.Type, tx.Image, tx.Status, tx.ApprovedByOwnerAt, tx.OwnerNotes, tx.ID)
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

func (r *transactionRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
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

// Approve flips pending -> approved in one statement. The status match in
// the WHERE clause is the optimistic precondition: a concurrent reviewer
// loses the race and sees zero rows affected.
func (r *transactionRepository) Approve(ctx context.Context, id int32, approvedAt time.Time, ownerNotes *string) (int64, error) {
	query := `UPDATE transactions SET status=$1, approved_by_owner_at=$2, owner_notes=COALESCE($3, owner_notes)
	          WHERE id=$4 AND status=$5`
	res, err := r.db.ExecContext(ctx, query, domain.TransactionStatusApproved, approvedAt, ownerNotes,
		id, domain.TransactionStatusPending)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected()
}

func (r *transactionRepository) Reject(ctx context.Context, id int32, ownerNotes *string) (int64, error) {
	query := `UPDATE transactions SET status=$1, owner_notes=COALESCE($2, owner_notes)
	          WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, domain.TransactionStatusRejected, ownerNotes,
		id, domain.TransactionStatusPending)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected()
}

func (r *transactionRepository) Resubmit(ctx context.Context, id, submitterID int32) (int64, error) {
	query := `UPDATE transactions SET status=$1, approved_by_owner_at=NULL, owner_notes=NULL
	          WHERE id=$2 AND submitted_by=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, domain.TransactionStatusPending, id, submitterID,
		domain.TransactionStatusRejected)
	if err != nil {
		return 0, translateError(err)
	}
	return res.RowsAffected()
}
