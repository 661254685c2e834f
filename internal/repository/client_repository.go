package repository

import (
	"context"

	"insurance-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const clientColumns = `id, client_number, first_name, last_name, email, phone,
	       national_id, address, status, created_at, updated_at, deleted_at,
	       created_by, updated_by`

type ClientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, client_number, first_name, last_name, email, phone,
		                     national_id, address, status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		client.ID, client.ClientNumber, client.FirstName, client.LastName,
		client.Email, client.Phone, client.NationalID, client.Address,
		client.Status, client.CreatedBy, client.UpdatedBy,
	).Scan(&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return translateError(err, "client", client.ID.String())
	}

	return nil
}

// GetByID retrieves a client by its ID. Soft-deleted rows are invisible.
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &client, query, id)
	if err != nil {
		return nil, translateError(err, "client", id.String())
	}

	return &client, nil
}

func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &client, query, email)
	if err != nil {
		return nil, translateError(err, "client", email)
	}

	return &client, nil
}

// GetAll retrieves clients matching the given scopes, newest first.
func (r *ClientRepository) GetAll(ctx context.Context, scopes ...Scope) ([]models.Client, error) {
	var clients []models.Client
	where, args := buildWhere(append([]Scope{NotDeleted()}, scopes...))
	query := `SELECT ` + clientColumns + ` FROM clients` + where + ` ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &clients, query, args...)
	if err != nil {
		return nil, translateError(err, "client", "")
	}

	return clients, nil
}

func (r *ClientRepository) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients
		SET first_name = $2, last_name = $3, email = $4, phone = $5,
		    national_id = $6, address = $7, status = $8, updated_by = $9,
		    updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		client.ID, client.FirstName, client.LastName, client.Email, client.Phone,
		client.NationalID, client.Address, client.Status, client.UpdatedBy)
	if err != nil {
		return translateError(err, "client", client.ID.String())
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError(err, "client", client.ID.String())
	}
	if rows == 0 {
		return &models.NotFoundError{Entity: "client", ID: client.ID.String()}
	}

	return nil
}

// SoftDelete stamps deleted_at, suppressing default visibility without
// destroying the row.
func (r *ClientRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedBy string) error {
	query := `
		UPDATE clients
		SET deleted_at = NOW(), updated_by = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id, deletedBy)
	if err != nil {
		return translateError(err, "client", id.String())
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return translateError(err, "client", id.String())
	}
	if rows == 0 {
		return &models.NotFoundError{Entity: "client", ID: id.String()}
	}

	return nil
}
