package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"thoonsheet-backend/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// translateError converts driver-level failures into domain errors at the
// repository boundary: no-rows becomes ErrNotFound, unique violations become
// field-level validation errors so a constraint race never surfaces as a 500.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		switch {
		case strings.Contains(pqErr.Constraint, "transfer_id"):
			return domain.NewValidationError("transfer_id_last_6_digits",
				"a transaction with these last 6 digits already exists for this payment account")
		case strings.Contains(pqErr.Constraint, "username"):
			return domain.NewValidationError("username", "this username is already taken")
		}
		return domain.NewValidationError("", "duplicate value violates a uniqueness constraint")
	}
	return err
}
