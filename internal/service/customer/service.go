package customer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
)

type Service struct {
	repo repository.CustomerRepository
}

func NewService(repo repository.CustomerRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateCustomerRequest) (*model.Customer, error) {
	customer := &model.Customer{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("customer", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

// Exists verifies the customer foreign key before booking writes.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) error {
	_, err := s.Get(ctx, id)
	return err
}
