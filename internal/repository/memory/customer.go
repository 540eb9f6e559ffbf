package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
)

func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = *customer
	return nil
}

func (r *CustomerRepository) Get(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &customer, nil
}
