package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"insurance-service/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError_NoRowsBecomesNotFound(t *testing.T) {
	err := translateError(sql.ErrNoRows, "claim", "abc")

	var nfErr *models.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "claim", nfErr.Entity)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestTranslateError_NotNullViolationBecomesValidation(t *testing.T) {
	pqErr := &pq.Error{Code: pgNotNullViolation, Column: "description"}

	err := translateError(pqErr, "claim", "abc")

	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "description", valErr.Field)
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestTranslateError_UniqueViolationBecomesValidation(t *testing.T) {
	pqErr := &pq.Error{Code: pgUniqueViolation, Constraint: "claims_claim_number_key"}

	err := translateError(pqErr, "claim", "abc")

	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "claims_claim_number_key", valErr.Field)
}

func TestTranslateError_UnknownErrorIsWrapped(t *testing.T) {
	cause := fmt.Errorf("connection reset")

	err := translateError(cause, "claim", "abc")

	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, models.ErrValidation))
}
