package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/redbco/graphschema/pkg/schema"
)

// SQLSTATE codes the backend classifies
const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// mapError classifies a driver error. Lost connections and aborted
// transactions are Unavailable so callers may retry the whole session.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *schema.Error
	if errors.As(err, &se) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == uniqueViolation:
			return schema.NewConflictError(op, "", "", err)
		case pgErr.Code == serializationFailure, pgErr.Code == deadlockDetected:
			return schema.NewUnavailableError(op, err)
		case strings.HasPrefix(pgErr.Code, "08"):
			return schema.NewUnavailableError(op, err)
		}
		return schema.WrapError(op, err)
	}

	switch {
	case errors.Is(err, pgx.ErrTxClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded),
		pgconn.Timeout(err),
		pgconn.SafeToRetry(err):
		return schema.NewUnavailableError(op, err)
	}
	return schema.WrapError(op, err)
}
