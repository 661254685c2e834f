package repository

import (
	"context"

	"insurance-service/internal/models"
	"insurance-service/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const policyColumns = `id, policy_number, quote_id, client_id, product_name,
	       sum_insured, annual_premium, adjusted_premium, down_payment,
	       total_installments, paid_installments, pending_installments,
	       overdue_installments, policy_start_date, policy_end_date, status,
	       cancellation_date, cancellation_reason, created_at, updated_at,
	       deleted_at, created_by, updated_by`

const policyInsert = `
		INSERT INTO policies (id, policy_number, quote_id, client_id, product_name,
		                      sum_insured, annual_premium, adjusted_premium, down_payment,
		                      total_installments, paid_installments, pending_installments,
		                      overdue_installments, policy_start_date, policy_end_date,
		                      status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at, updated_at`

type PolicyRepository struct {
	db *sqlx.DB
}

func NewPolicyRepository(db *sqlx.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) Create(ctx context.Context, policy *models.Policy) error {
	err := r.db.QueryRowxContext(ctx, policyInsert, policyInsertArgs(policy)...).
		Scan(&policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return translateError(err, "policy", policy.ID.String())
	}
	return nil
}

// CreateTx inserts a policy inside an open transaction, used by quote
// conversion so the new policy and the converted quote commit together.
func (r *PolicyRepository) CreateTx(tx *sqlx.Tx, policy *models.Policy) error {
	err := tx.QueryRowx(policyInsert, policyInsertArgs(policy)...).
		Scan(&policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return translateError(err, "policy", policy.ID.String())
	}
	return nil
}

func policyInsertArgs(policy *models.Policy) []any {
	return []any{
		policy.ID, policy.PolicyNumber, policy.QuoteID, policy.ClientID,
		policy.ProductName, policy.SumInsured, policy.AnnualPremium,
		policy.AdjustedPremium, policy.DownPayment, policy.TotalInstallments,
		policy.PaidInstallments, policy.PendingInstallments,
		policy.OverdueInstallments, policy.PolicyStartDate, policy.PolicyEndDate,
		policy.Status, policy.CreatedBy, policy.UpdatedBy,
	}
}

func (r *PolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	var policy models.Policy
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &policy, query, id)
	if err != nil {
		return nil, translateError(err, "policy", id.String())
	}

	return &policy, nil
}

func (r *PolicyRepository) GetAll(ctx context.Context, scopes ...Scope) ([]models.Policy, error) {
	var policies []models.Policy
	where, args := buildWhere(append([]Scope{NotDeleted()}, scopes...))
	query := `SELECT ` + policyColumns + ` FROM policies` + where + ` ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &policies, query, args...)
	if err != nil {
		return nil, translateError(err, "policy", "")
	}

	return policies, nil
}

func (r *PolicyRepository) Update(ctx context.Context, policy *models.Policy) error {
	query := `
		UPDATE policies
		SET annual_premium = $2, adjusted_premium = $3, down_payment = $4,
		    total_installments = $5, paid_installments = $6,
		    pending_installments = $7, overdue_installments = $8,
		    policy_start_date = $9, policy_end_date = $10, status = $11,
		    cancellation_date = $12, cancellation_reason = $13,
		    updated_by = $14, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate,
		policy.ID, policy.AnnualPremium, policy.AdjustedPremium,
		policy.DownPayment, policy.TotalInstallments, policy.PaidInstallments,
		policy.PendingInstallments, policy.OverdueInstallments,
		policy.PolicyStartDate, policy.PolicyEndDate, policy.Status,
		policy.CancellationDate, policy.CancellationReason, policy.UpdatedBy)
	if err != nil {
		return translateError(err, "policy", policy.ID.String())
	}
	return nil
}

func (r *PolicyRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	query := `
		UPDATE policies
		SET deleted_at = NOW(), updated_by = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate, id, deletedBy)
	if err != nil {
		return translateError(err, "policy", id.String())
	}
	return nil
}
