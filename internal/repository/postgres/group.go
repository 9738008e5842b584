package postgres

import (
	"context"
	"database/sql"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/repository"

	"github.com/shopspring/decimal"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	query := `INSERT INTO groups (owner_id, group_title, group_type, name, target_amount, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6) RETURNING id`
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, g.OwnerID, g.Title, g.Type, g.Name, g.TargetAmount, now).Scan(&g.ID)
	return translateError(err)
}

func (r *groupRepository) GetByID(ctx context.Context, id int32) (*domain.Group, error) {
	query := `SELECT id, owner_id, group_title, group_type, name, target_amount, created_at, updated_at FROM groups WHERE id = $1`
	return scanGroup(r.db.QueryRowContext(ctx, query, id))
}

func scanGroup(row interface{ Scan(...any) error }) (*domain.Group, error) {
	g := &domain.Group{}
	var target sql.NullString
	err := row.Scan(&g.ID, &g.OwnerID, &g.Title, &g.Type, &g.Name, &target, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	if target.Valid {
		d, err := decimal.NewFromString(target.String)
		if err != nil {
			return nil, err
		}
		g.TargetAmount = &d
	}
	return g, nil
}

func (r *groupRepository) List(ctx context.Context) ([]domain.Group, error) {
	query := `SELECT id, owner_id, group_title, group_type, name, target_amount, created_at, updated_at FROM groups ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *g)
	}
	return groups, rows.Err()
}

func (r *groupRepository) Update(ctx context.Context, g *domain.Group) error {
	query := `UPDATE groups SET group_title=$1, group_type=$2, name=$3, target_amount=$4, updated_at=$5 WHERE id=$6`
	g.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, g.Title, g.Type, g.Name, g.TargetAmount, g.UpdatedAt, g.ID)
	return translateError(err)
}

func (r *groupRepository) Delete(ctx context.Context, id int32) error {
	// transactions and audit entries cascade via their FK constraints
	res, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
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
