package service

import (
	"context"

	"go.uber.org/zap"

	"studiodesk/internal/model"
	"studiodesk/internal/repository"
)

type ClientService struct {
	clientRepo   *repository.ClientRepository
	contractRepo *repository.ContractRepository
	logger       *zap.Logger
}

func NewClientService(clientRepo *repository.ClientRepository, contractRepo *repository.ContractRepository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo:   clientRepo,
		contractRepo: contractRepo,
		logger:       logger,
	}
}

type ClientInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Document string `json:"document"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
}

func (s *ClientService) Create(ctx context.Context, in ClientInput) (*model.Client, error) {
	client := &model.Client{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Document: in.Document,
		Address:  in.Address,
		Notes:    in.Notes,
	}
	id, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		return nil, err
	}
	client.ID = id
	s.logger.Info("Client created", zap.Int("client_id", id))
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, id int, in ClientInput) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = in.Name
	client.Email = in.Email
	client.Phone = in.Phone
	client.Document = in.Document
	client.Address = in.Address
	client.Notes = in.Notes

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// Delete refuses to remove a client that still owns draft or active
// contracts.
func (s *ClientService) Delete(ctx context.Context, id int) error {
	n, err := s.contractRepo.CountActiveByClient(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return model.ErrClientHasContracts
	}
	return s.clientRepo.Delete(ctx, id)
}

func (s *ClientService) Get(ctx context.Context, id int) (*model.Client, error) {
	return s.clientRepo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	return s.clientRepo.List(ctx)
}
