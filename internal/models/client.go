package models

import (
	"time"

	"insurance-service/utils"

	"github.com/google/uuid"
)

type Client struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	ClientNumber string       `json:"client_number" db:"client_number"`
	FirstName    string       `json:"first_name" db:"first_name"`
	LastName     string       `json:"last_name" db:"last_name"`
	Email        string       `json:"email" db:"email"`
	Phone        string       `json:"phone" db:"phone"`
	NationalID   *string      `json:"national_id,omitempty" db:"national_id"`
	Address      *string      `json:"address,omitempty" db:"address"`
	Status       ClientStatus `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time   `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedBy    *string      `json:"created_by,omitempty" db:"created_by"`
	UpdatedBy    *string      `json:"updated_by,omitempty" db:"updated_by"`
}

// NormalizeContact rewrites email and phone into their canonical persisted
// form. Invoked explicitly by the calling operation before every write.
func (c *Client) NormalizeContact() {
	c.Email = utils.NormalizeEmail(c.Email)
	c.Phone = utils.NormalizePhone(c.Phone)
}

func (c *Client) Validate() error {
	if c.FirstName == "" {
		return NewValidationError("first_name", "is required")
	}
	if c.LastName == "" {
		return NewValidationError("last_name", "is required")
	}
	if _, err := utils.ValidateEmail(c.Email); err != nil {
		return NewValidationError("email", err.Error())
	}
	if _, err := utils.ValidatePhone(c.Phone); err != nil {
		return NewValidationError("phone", err.Error())
	}
	switch c.Status {
	case ClientActive, ClientInactive, ClientSuspended, ClientPendingVerification:
	default:
		return NewValidationError("status", "unknown client status")
	}
	return nil
}
