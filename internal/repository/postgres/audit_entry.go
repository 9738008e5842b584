package postgres

import (
	"context"
	"database/sql"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/repository"
)

type auditEntryRepository struct {
	db *sql.DB
}

func NewAuditEntryRepository(db *sql.DB) repository.AuditEntryRepository {
	return &auditEntryRepository{db: db}
}

const auditEntryColumns = `e.id, e.group_id, e.auditor_id, e.receivable_amount, e.payable_amount,
	COALESCE(e.remarks, ''), e.created_at, e.last_updated, g.name, u.username`

const auditEntryJoins = ` FROM audit_entries e
	JOIN groups g ON g.id = e.group_id
	JOIN users u ON u.id = e.auditor_id`

func scanAuditEntry(row interface{ Scan(...any) error }) (*domain.AuditEntry, error) {
	e := &domain.AuditEntry{}
	err := row.Scan(&e.ID, &e.GroupID, &e.AuditorID, &e.ReceivableAmount, &e.PayableAmount,
		&e.Remarks, &e.CreatedAt, &e.LastUpdated, &e.GroupName, &e.AuditorName)
	if err != nil {
		return nil, translateError(err)
	}
	return e, nil
}

func (r *auditEntryRepository) Create(ctx context.Context, e *domain.AuditEntry) error {
	query := `INSERT INTO audit_entries (group_id, auditor_id, receivable_amount, payable_amount, remarks, created_at, last_updated)
	          VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now().UTC()
	e.CreatedAt = now
	e.LastUpdated = now
	err := r.db.QueryRowContext(ctx, query, e.GroupID, e.AuditorID, e.ReceivableAmount,
		e.PayableAmount, e.Remarks, now).Scan(&e.ID)
	return translateError(err)
}

func (r *auditEntryRepository) GetByID(ctx context.Context, id int32) (*domain.AuditEntry, error) {
	query := `SELECT ` + auditEntryColumns + auditEntryJoins + ` WHERE e.id = $1`
	return scanAuditEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *auditEntryRepository) List(ctx context.Context, auditorID *int32) ([]domain.AuditEntry, error) {
	query := `SELECT ` + auditEntryColumns + auditEntryJoins
	var args []any
	if auditorID != nil {
		query += ` WHERE e.auditor_id = $1`
		args = append(args, *auditorID)
	}
	query += ` ORDER BY e.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (r *auditEntryRepository) Update(ctx context.Context, e *domain.AuditEntry) error {
	query := `UPDATE audit_entries SET group_id=$1, receivable_amount=$2, payable_amount=$3, remarks=$4, last_updated=$5 WHERE id=$6`
	e.LastUpdated = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, e.GroupID, e.ReceivableAmount, e.PayableAmount,
		e.Remarks, e.LastUpdated, e.ID)
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

func (r *auditEntryRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM audit_entries WHERE id = $1`, id)
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
