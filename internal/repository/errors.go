package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Unique fields guarded by store-level constraints.
const (
	FieldEmail   = "email"
	FieldLicense = "license"
)

const uniqueViolationCode = "23505"

// Constraint names declared in migrations/001_create_identities.sql.
var uniqueConstraintFields = map[string]string{
	"medicos_correo_key":             FieldEmail,
	"medicos_cedula_profesional_key": FieldLicense,
	"usuarios_correo_key":            FieldEmail,
}

// UniqueViolationError reports an insert rejected by a uniqueness constraint.
type UniqueViolationError struct {
	Field      string
	Constraint string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation on %s (%s)", e.Field, e.Constraint)
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}

// translateError maps driver errors onto repository errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		field, ok := uniqueConstraintFields[pgErr.ConstraintName]
		if !ok {
			field = FieldEmail
		}
		return &UniqueViolationError{Field: field, Constraint: pgErr.ConstraintName, Err: err}
	}
	return err
}
