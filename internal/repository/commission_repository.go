package repository

import (
	"context"

	"insurance-service/internal/models"
	"insurance-service/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const commissionColumns = `id, intermediary_id, policy_id, rate, amount, status,
	       due_date, paid_date, payment_reference, processed_by, notes,
	       created_at, updated_at, deleted_at, created_by, updated_by`

type CommissionRepository struct {
	db *sqlx.DB
}

func NewCommissionRepository(db *sqlx.DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) Create(ctx context.Context, commission *models.Commission) error {
	query := `
		INSERT INTO commissions (id, intermediary_id, policy_id, rate, amount,
		                         status, due_date, notes, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		commission.ID, commission.IntermediaryID, commission.PolicyID,
		commission.Rate, commission.Amount, commission.Status,
		commission.DueDate, commission.Notes,
		commission.CreatedBy, commission.UpdatedBy,
	).Scan(&commission.CreatedAt, &commission.UpdatedAt)
	if err != nil {
		return translateError(err, "commission", commission.ID.String())
	}

	return nil
}

func (r *CommissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Commission, error) {
	var commission models.Commission
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &commission, query, id)
	if err != nil {
		return nil, translateError(err, "commission", id.String())
	}

	return &commission, nil
}

func (r *CommissionRepository) GetAll(ctx context.Context, scopes ...Scope) ([]models.Commission, error) {
	var commissions []models.Commission
	where, args := buildWhere(append([]Scope{NotDeleted()}, scopes...))
	query := `SELECT ` + commissionColumns + ` FROM commissions` + where + ` ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &commissions, query, args...)
	if err != nil {
		return nil, translateError(err, "commission", "")
	}

	return commissions, nil
}

func (r *CommissionRepository) GetByIntermediaryID(ctx context.Context, intermediaryID string) ([]models.Commission, error) {
	return r.GetAll(ctx, Scope{Clause: "intermediary_id = ?", Args: []any{intermediaryID}})
}

func (r *CommissionRepository) Update(ctx context.Context, commission *models.Commission) error {
	query := `
		UPDATE commissions
		SET rate = $2, amount = $3, status = $4, due_date = $5, paid_date = $6,
		    payment_reference = $7, processed_by = $8, notes = $9,
		    updated_by = $10, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate,
		commission.ID, commission.Rate, commission.Amount, commission.Status,
		commission.DueDate, commission.PaidDate, commission.PaymentReference,
		commission.ProcessedBy, commission.Notes, commission.UpdatedBy)
	if err != nil {
		return translateError(err, "commission", commission.ID.String())
	}
	return nil
}

func (r *CommissionRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	query := `
		UPDATE commissions
		SET deleted_at = NOW(), updated_by = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate, id, deletedBy)
	if err != nil {
		return translateError(err, "commission", id.String())
	}
	return nil
}
