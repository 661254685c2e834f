package repository

import (
	"context"

	"insurance-service/internal/models"
	"insurance-service/utils"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const quoteColumns = `id, quote_number, client_id, product_name, sum_insured,
	       base_premium, total_premium, discounts, loadings, taxes, fees,
	       valid_from, valid_to, status, decline_reason, policy_id,
	       converted_at, converted_by, created_at, updated_at, deleted_at,
	       created_by, updated_by`

const quoteUpdateSet = `
		SET sum_insured = $2, base_premium = $3, total_premium = $4,
		    discounts = $5, loadings = $6, taxes = $7, fees = $8,
		    valid_from = $9, valid_to = $10, status = $11, decline_reason = $12,
		    policy_id = $13, converted_at = $14, converted_by = $15,
		    updated_by = $16, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

type QuoteRepository struct {
	db *sqlx.DB
}

func NewQuoteRepository(db *sqlx.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// BeginTransaction opens a transaction for multi-entity writes such as
// quote conversion.
func (r *QuoteRepository) BeginTransaction() (*sqlx.Tx, error) {
	return r.db.Beginx()
}

func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	query := `
		INSERT INTO quotes (id, quote_number, client_id, product_name, sum_insured,
		                    base_premium, total_premium, discounts, loadings, taxes,
		                    fees, valid_from, valid_to, status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		quote.ID, quote.QuoteNumber, quote.ClientID, quote.ProductName,
		quote.SumInsured, quote.BasePremium, quote.TotalPremium,
		quote.Discounts, quote.Loadings, quote.Taxes, quote.Fees,
		quote.ValidFrom, quote.ValidTo, quote.Status,
		quote.CreatedBy, quote.UpdatedBy,
	).Scan(&quote.CreatedAt, &quote.UpdatedAt)
	if err != nil {
		return translateError(err, "quote", quote.ID.String())
	}

	return nil
}

func (r *QuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &quote, query, id)
	if err != nil {
		return nil, translateError(err, "quote", id.String())
	}

	return &quote, nil
}

func (r *QuoteRepository) GetAll(ctx context.Context, scopes ...Scope) ([]models.Quote, error) {
	var quotes []models.Quote
	where, args := buildWhere(append([]Scope{NotDeleted()}, scopes...))
	query := `SELECT ` + quoteColumns + ` FROM quotes` + where + ` ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &quotes, query, args...)
	if err != nil {
		return nil, translateError(err, "quote", "")
	}

	return quotes, nil
}

func (r *QuoteRepository) Update(ctx context.Context, quote *models.Quote) error {
	err := utils.ExecWithCheck(r.db, `UPDATE quotes`+quoteUpdateSet, utils.ExecUpdate, quoteUpdateArgs(quote)...)
	if err != nil {
		return translateError(err, "quote", quote.ID.String())
	}
	return nil
}

// UpdateTx updates a quote inside an open transaction.
func (r *QuoteRepository) UpdateTx(tx *sqlx.Tx, quote *models.Quote) error {
	err := utils.ExecWithCheck(tx, `UPDATE quotes`+quoteUpdateSet, utils.ExecUpdate, quoteUpdateArgs(quote)...)
	if err != nil {
		return translateError(err, "quote", quote.ID.String())
	}
	return nil
}

func quoteUpdateArgs(quote *models.Quote) []any {
	return []any{
		quote.ID, quote.SumInsured, quote.BasePremium, quote.TotalPremium,
		quote.Discounts, quote.Loadings, quote.Taxes, quote.Fees,
		quote.ValidFrom, quote.ValidTo, quote.Status, quote.DeclineReason,
		quote.PolicyID, quote.ConvertedAt, quote.ConvertedBy, quote.UpdatedBy,
	}
}

func (r *QuoteRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	query := `
		UPDATE quotes
		SET deleted_at = NOW(), updated_by = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	err := utils.ExecWithCheck(r.db, query, utils.ExecUpdate, id, deletedBy)
	if err != nil {
		return translateError(err, "quote", id.String())
	}
	return nil
}
