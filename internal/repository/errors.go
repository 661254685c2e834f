package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"insurance-service/internal/models"

	"github.com/lib/pq"
)

// Postgres error codes for constraint violations.
const (
	pgNotNullViolation    = "23502"
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// translateError converts persistence-layer failures into the domain error
// taxonomy: missing rows become NotFoundError, constraint violations become
// ValidationError-shaped errors, anything else is wrapped as-is.
func translateError(err error, entity, id string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &models.NotFoundError{Entity: entity, ID: id}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgNotNullViolation:
			return models.NewValidationError(pqErr.Column, "must not be null")
		case pgUniqueViolation:
			return models.NewValidationError(pqErr.Constraint, "already exists")
		case pgForeignKeyViolation:
			return models.NewValidationError(pqErr.Constraint, "referenced entity does not exist")
		case pgCheckViolation:
			return models.NewValidationError(pqErr.Constraint, "constraint violated")
		}
	}
	return fmt.Errorf("%s persistence failed: %w", entity, err)
}
