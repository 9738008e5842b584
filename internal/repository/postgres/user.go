package postgres

import (
	"context"
	"database/sql"
	"time"

	"thoonsheet-backend/internal/domain"
	"thoonsheet-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, first_name, last_name, phone_number, password_hash, role, is_staff, is_superuser, token_version, date_joined, last_login`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.PasswordHash, &u.Role, &u.IsStaff, &u.IsSuperuser, &u.TokenVersion, &u.DateJoined, &lastLogin)
	if err != nil {
		return nil, translateError(err)
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, email, first_name, last_name, phone_number, password_hash, role, is_staff, is_superuser, token_version, date_joined)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10) RETURNING id`
	u.DateJoined = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, u.Username, u.Email, u.FirstName, u.LastName,
		u.PhoneNumber, u.PasswordHash, u.Role, u.IsStaff, u.IsSuperuser, u.DateJoined).Scan(&u.ID)
	return translateError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *userRepository) List(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if role != "" {
		query += ` WHERE role = $1 AND is_superuser = false`
		args = append(args, role)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET username=$1, email=$2, first_name=$3, last_name=$4, phone_number=$5, role=$6, is_staff=$7, is_superuser=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, u.Username, u.Email, u.FirstName, u.LastName,
		u.PhoneNumber, u.Role, u.IsStaff, u.IsSuperuser, u.ID)
	return translateError(err)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int32, passwordHash string) error {
	// token_version bump revokes every outstanding token for the account.
	query := `UPDATE users SET password_hash=$1, token_version=token_version+1 WHERE id=$2`
	res, err := r.db.ExecContext(ctx, query, passwordHash, id)
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

func (r *userRepository) TouchLastLogin(ctx context.Context, id int32) error {
	query := `UPDATE users SET last_login=$1 WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	return translateError(err)
}

func (r *userRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
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
