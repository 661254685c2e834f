package repository

import (
	"context"

	"insurance-service/internal/models"
	"insurance-service/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const paymentColumns = `id, transaction_ref, client_id, policy_id, claim_id,
	       amount, currency, method, status, paid_at, created_at, updated_at,
	       deleted_at, created_by, updated_by`

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, transaction_ref, client_id, policy_id, claim_id,
		                      amount, currency, method, status, paid_at,
		                      created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		payment.ID, payment.TransactionRef, payment.ClientID, payment.PolicyID,
		payment.ClaimID, payment.Amount, payment.Currency, payment.Method,
		payment.Status, payment.PaidAt, payment.CreatedBy, payment.UpdatedBy,
	).Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return translateError(err, "payment", payment.ID.String())
	}

	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &payment, query, id)
	if err != nil {
		return nil, translateError(err, "payment", id.String())
	}

	return &payment, nil
}

// GetByTransactionRef looks a payment up by its unique transaction
// reference, the idempotency key for completion.
func (r *PaymentRepository) GetByTransactionRef(ctx context.Context, ref string) (*models.Payment, error) {
	var payment models.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_ref = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &payment, query, ref)
	if err != nil {
		return nil, translateError(err, "payment", ref)
	}

	return &payment, nil
}

func (r *PaymentRepository) GetAll(ctx context.Context, scopes ...Scope) ([]models.Payment, error) {
	var payments []models.Payment
	where, args := buildWhere(append([]Scope{NotDeleted()}, scopes...))
	query := `SELECT ` + paymentColumns + ` FROM payments` + where + ` ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &payments, query, args...)
	if err != nil {
		return nil, translateError(err, "payment", "")
	}

	return payments, nil
}

// SumCompletedByPolicyID aggregates completed payment amounts for a policy,
// the ledger input for outstanding-balance calculation.
func (r *PaymentRepository) SumCompletedByPolicyID(ctx context.Context, policyID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE policy_id = $1 AND status = $2 AND deleted_at IS NULL
	`

	err := r.db.GetContext(ctx, &total, query, policyID, models.PaymentCompleted)
	if err != nil {
		return decimal.Zero, translateError(err, "payment", policyID.String())
	}

	return total, nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	query := `
		UPDATE payments
		SET status = $2, paid_at = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate,
		payment.ID, payment.Status, payment.PaidAt, payment.UpdatedBy)
	if err != nil {
		return translateError(err, "payment", payment.ID.String())
	}
	return nil
}
