package postgres

import (
	"context"
	"database/sql"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type summaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) repository.SummaryRepository {
	return &summaryRepository{db: db}
}

// Overall computes the grand, audited (approved) and unapproved (pending)
// income/expense partitions in a single scan. Zero matching rows yields
// zero decimals across the board.
func (r *summaryRepository) Overall(ctx context.Context) (*domain.AuditSummary, error) {
	query := `SELECT
	    COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0),
	    COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0),
	    COALESCE(SUM(CASE WHEN status = 'approved' AND transaction_type = 'income' THEN amount ELSE 0 END), 0),
	    COALESCE(SUM(CASE WHEN status = 'approved' AND transaction_type = 'expense' THEN amount ELSE 0 END), 0),
	    COALESCE(SUM(CASE WHEN status = 'pending' AND transaction_type = 'income' THEN amount ELSE 0 END), 0),
	    COALESCE(SUM(CASE WHEN status = 'pending' AND transaction_type = 'expense' THEN amount ELSE 0 END), 0)
	  FROM transactions`

	s := &domain.AuditSummary{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.TotalIncome, &s.TotalExpense,
		&s.AuditedIncome, &s.AuditedExpense,
		&s.UnapprovedIncome, &s.UnapprovedExpense,
	)
	if err != nil {
		return nil, translateError(err)
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	s.AuditedBalance = s.AuditedIncome.Sub(s.AuditedExpense)
	s.UnapprovedBalance = s.UnapprovedIncome.Sub(s.UnapprovedExpense)
	s.LastUpdated = time.Now().UTC()
	return s, nil
}

func (r *summaryRepository) ByGroup(ctx context.Context) ([]domain.GroupSummary, error) {
	query := `SELECT g.id, g.name, g.target_amount,
	    COALESCE(SUM(CASE WHEN t.transaction_type = 'income' THEN t.amount ELSE 0 END), 0),
	    COALESCE(SUM(CASE WHEN t.transaction_type = 'expense' THEN t.amount ELSE 0 END), 0)
	  FROM groups g
	  LEFT JOIN transactions t ON t.group_id = g.id AND t.status = 'approved'
	  GROUP BY g.id, g.name, g.target_amount
	  ORDER BY g.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var summaries []domain.GroupSummary
	for rows.Next() {
		var gs domain.GroupSummary
		var target sql.NullString
		if err := rows.Scan(&gs.GroupID, &gs.GroupName, &target, &gs.TotalIncome, &gs.TotalExpense); err != nil {
			return nil, err
		}
		gs.Balance = gs.TotalIncome.Sub(gs.TotalExpense)
		gs.CollectedAmount = gs.TotalIncome
		gs.RemainingAmount = decimal.Zero
		if target.Valid {
			t, err := decimal.NewFromString(target.String)
			if err != nil {
				return nil, err
			}
			gs.TargetAmount = &t
			if remain := t.Sub(gs.CollectedAmount); remain.IsPositive() {
				gs.RemainingAmount = remain
			}
		}
		summaries = append(summaries, gs)
	}
	return summaries, rows.Err()
}

var periodTrunc = map[domain.SummaryPeriod]string{
	domain.PeriodDaily:   "day",
	domain.PeriodWeekly:  "week",
	domain.PeriodMonthly: "month",
	domain.PeriodYearly:  "year",
}

func (r *summaryRepository) ByPeriod(ctx context.Context, period domain.SummaryPeriod, start, end *time.Time) ([]domain.PeriodBucket, error) {
	trunc, ok := periodTrunc[period]
	if !ok {
		return nil, domain.NewValidationError("period", "period must be one of daily, weekly, monthly, yearly")
	}

	query := `SELECT date_trunc('` + trunc + `', transaction_date) AS bucket,
	    COUNT(*),
	    COALESCE(SUM(amount), 0),
	    COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0),
	    COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0)
	  FROM transactions
	  WHERE ($1::timestamptz IS NULL OR transaction_date >= $1)
	    AND ($2::timestamptz IS NULL OR transaction_date <= $2)
	  GROUP BY bucket
	  ORDER BY bucket`

	rows, err := r.db.QueryContext(ctx, query, nullTime(start), nullTime(end))
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var buckets []domain.PeriodBucket
	for rows.Next() {
		var b domain.PeriodBucket
		if err := rows.Scan(&b.Bucket, &b.Count, &b.TotalAmount, &b.IncomeAmount, &b.ExpenseAmount); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
