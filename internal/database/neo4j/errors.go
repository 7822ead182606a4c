package neo4j

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/redbco/graphschema/pkg/schema"
)

const constraintViolation = "Neo.ClientError.Schema.ConstraintValidationFailed"

var errNoSequence = errors.New("sequence node returned no id")

func isConstraintViolation(err error) bool {
	var nerr *neo4j.Neo4jError
	return errors.As(err, &nerr) && nerr.Code == constraintViolation
}

// mapError classifies a driver error. Transient server errors and lost
// connections are Unavailable.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *schema.Error
	if errors.As(err, &se) {
		return err
	}
	if isConstraintViolation(err) {
		return schema.NewConflictError(op, "", "", err)
	}
	if neo4j.IsRetryable(err) || neo4j.IsConnectivityError(err) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return schema.NewUnavailableError(op, err)
	}
	return schema.WrapError(op, err)
}
