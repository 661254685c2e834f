package repository

import (
	"context"

	"insurance-service/internal/models"
	"insurance-service/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const claimColumns = `id, claim_number, policy_id, client_id, date_of_loss,
	       date_reported, description, estimated_amount, approved_amount,
	       paid_amount, status, rejection_reason, assigned_to, created_at,
	       updated_at, deleted_at, created_by, updated_by`

type ClaimRepository struct {
	db *sqlx.DB
}

func NewClaimRepository(db *sqlx.DB) *ClaimRepository {
	return &ClaimRepository{db: db}
}

func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	query := `
		INSERT INTO claims (id, claim_number, policy_id, client_id, date_of_loss,
		                    date_reported, description, estimated_amount, paid_amount,
		                    status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		claim.ID, claim.ClaimNumber, claim.PolicyID, claim.ClientID,
		claim.DateOfLoss, claim.DateReported, claim.Description,
		claim.EstimatedAmount, claim.PaidAmount, claim.Status,
		claim.CreatedBy, claim.UpdatedBy,
	).Scan(&claim.CreatedAt, &claim.UpdatedAt)
	if err != nil {
		return translateError(err, "claim", claim.ID.String())
	}

	return nil
}

func (r *ClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	var claim models.Claim
	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &claim, query, id)
	if err != nil {
		return nil, translateError(err, "claim", id.String())
	}

	return &claim, nil
}

func (r *ClaimRepository) GetAll(ctx context.Context, scopes ...Scope) ([]models.Claim, error) {
	var claims []models.Claim
	where, args := buildWhere(append([]Scope{NotDeleted()}, scopes...))
	query := `SELECT ` + claimColumns + ` FROM claims` + where + ` ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &claims, query, args...)
	if err != nil {
		return nil, translateError(err, "claim", "")
	}

	return claims, nil
}

func (r *ClaimRepository) GetByPolicyID(ctx context.Context, policyID uuid.UUID) ([]models.Claim, error) {
	return r.GetAll(ctx, ForPolicy(policyID))
}

func (r *ClaimRepository) Update(ctx context.Context, claim *models.Claim) error {
	query := `
		UPDATE claims
		SET date_of_loss = $2, date_reported = $3, description = $4,
		    estimated_amount = $5, approved_amount = $6, paid_amount = $7,
		    status = $8, rejection_reason = $9, assigned_to = $10,
		    updated_by = $11, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate,
		claim.ID, claim.DateOfLoss, claim.DateReported, claim.Description,
		claim.EstimatedAmount, claim.ApprovedAmount, claim.PaidAmount,
		claim.Status, claim.RejectionReason, claim.AssignedTo, claim.UpdatedBy)
	if err != nil {
		return translateError(err, "claim", claim.ID.String())
	}
	return nil
}

func (r *ClaimRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	query := `
		UPDATE claims
		SET deleted_at = NOW(), updated_by = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate, id, deletedBy)
	if err != nil {
		return translateError(err, "claim", id.String())
	}
	return nil
}
