package repository

import (
	"testing"
	"time"

	"insurance-service/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildWhere_Empty(t *testing.T) {
	clause, args := buildWhere(nil)

	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestBuildWhere_SingleScope(t *testing.T) {
	clientID := uuid.New()

	clause, args := buildWhere([]Scope{ForClient(clientID)})

	assert.Equal(t, " WHERE client_id = $1", clause)
	assert.Equal(t, []any{clientID}, args)
}

func TestBuildWhere_RenumbersAcrossScopes(t *testing.T) {
	clientID := uuid.New()

	clause, args := buildWhere([]Scope{
		NotDeleted(),
		ForClient(clientID),
		WithStatus("active"),
	})

	assert.Equal(t, " WHERE deleted_at IS NULL AND client_id = $1 AND status = $2", clause)
	assert.Equal(t, []any{clientID, "active"}, args)
}

func TestBuildWhere_MultiPlaceholderScope(t *testing.T) {
	now := time.Unix(1700000000, 0)

	clause, args := buildWhere([]Scope{NotDeleted(), DueBefore(now)})

	assert.Equal(t, " WHERE deleted_at IS NULL AND status IN ($1, $2) AND due_date < $3", clause)
	assert.Equal(t, []any{
		string(models.CommissionPending),
		string(models.CommissionApproved),
		now.Unix(),
	}, args)
}

func TestPendingPastValidity(t *testing.T) {
	now := time.Unix(1700000000, 0)

	clause, args := buildWhere([]Scope{PendingPastValidity(now)})

	assert.Equal(t, " WHERE status = $1 AND valid_to < $2", clause)
	assert.Equal(t, []any{string(models.QuotePending), now.Unix()}, args)
}
