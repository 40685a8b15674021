package pgsql

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/quantum_bank/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgCheckViolation       = "23514"
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgInvalidTextRepr      = "22P02"
	pgStringTooLong        = "22001"
	pgNumericOutOfRange    = "22003"
)

// mapError translates a driver error into the application's error vocabulary.
// op names the failed operation and ends up in the message.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrConcurrencyConflict, pgErr.Message)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrInsufficientFunds, pgErr.ConstraintName)
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrDuplicate, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrNotFound, pgErr.ConstraintName)
		case pgInvalidTextRepr:
			// a malformed id can never match a row
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrNotFound, pgErr.Message)
		case pgStringTooLong, pgNumericOutOfRange:
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrValidation, pgErr.Message)
		}
	}

	return apperrors.NewAppError(http.StatusInternalServerError, op, errors.Join(apperrors.ErrStorageFailure, err))
}
