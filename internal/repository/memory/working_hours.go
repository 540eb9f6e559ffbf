package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
)

func (r *WorkingHoursRepository) Replace(ctx context.Context, artistID uuid.UUID, rules []*model.WorkingHourRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := make([]model.WorkingHourRule, 0, len(rules))
	for _, rule := range rules {
		rule.ID = uuid.New()
		rule.ArtistID = artistID
		rule.CreatedAt = now
		rule.UpdatedAt = now
		stored = append(stored, *rule)
	}
	r.rules[artistID] = stored
	return nil
}

func (r *WorkingHoursRepository) GetForDay(ctx context.Context, artistID uuid.UUID, dayOfWeek int) (*model.WorkingHourRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.rules[artistID] {
		if rule.DayOfWeek == dayOfWeek {
			found := rule
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *WorkingHoursRepository) ListForArtist(ctx context.Context, artistID uuid.UUID) ([]*model.WorkingHourRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]*model.WorkingHourRule, 0, len(r.rules[artistID]))
	for _, rule := range r.rules[artistID] {
		found := rule
		rules = append(rules, &found)
	}
	return rules, nil
}
