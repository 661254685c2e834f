package services

import (
	"context"

	"insurance-service/internal/models"
	"insurance-service/internal/repository"
	"insurance-service/utils"

	"github.com/google/uuid"
)

// ClientNumberPrefix heads generated client numbers.
const ClientNumberPrefix = "CLI"

type ClientService struct {
	clientRepo *repository.ClientRepository
}

func NewClientService(clientRepo *repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClient normalizes contact details and persists a new client in the
// pending-verification state. Email uniqueness is enforced by the database
// constraint and surfaces as a validation error.
func (s *ClientService) CreateClient(ctx context.Context, req models.CreateClientRequest, userID string) (*models.Client, error) {
	client := &models.Client{
		ID:           uuid.New(),
		ClientNumber: utils.GenerateReferenceNumber(ClientNumberPrefix),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		NationalID:   req.NationalID,
		Address:      req.Address,
		Status:       models.ClientPendingVerification,
		CreatedBy:    &userID,
		UpdatedBy:    &userID,
	}

	client.NormalizeContact()
	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ClientService) GetClientByID(ctx context.Context, clientID uuid.UUID) (*models.Client, error) {
	return s.clientRepo.GetByID(ctx, clientID)
}

func (s *ClientService) GetAllClients(ctx context.Context, scopes ...repository.Scope) ([]models.Client, error) {
	return s.clientRepo.GetAll(ctx, scopes...)
}

// UpdateClient applies a partial update, re-normalizing contact fields when
// they change.
func (s *ClientService) UpdateClient(ctx context.Context, clientID uuid.UUID, req models.UpdateClientRequest, userID string) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = *req.LastName
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Address != nil {
		client.Address = req.Address
	}
	if req.Status != nil {
		client.Status = *req.Status
	}

	client.NormalizeContact()
	if err := client.Validate(); err != nil {
		return nil, err
	}

	client.UpdatedBy = &userID
	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, clientID uuid.UUID, deletedBy string) error {
	return s.clientRepo.SoftDelete(ctx, clientID, deletedBy)
}
