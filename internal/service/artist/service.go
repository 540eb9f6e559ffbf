package artist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
	apperrors "github.com/inkstudio/booking-api/pkg/errors"
)

// Artist records change rarely and are read on every calendar query, so Get
// is backed by a short-lived cache. Slot grids themselves are never cached.
type Service struct {
	repo  repository.ArtistRepository
	cache *cache.Cache
}

func NewService(repo repository.ArtistRepository, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, 2*cacheTTL),
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateArtistRequest) (*model.Artist, error) {
	artist := &model.Artist{
		Name:      req.Name,
		Specialty: req.Specialty,
		Active:    true,
	}
	if err := s.repo.Create(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}
	s.cache.Set(artist.ID.String(), artist, cache.DefaultExpiration)
	return artist, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Artist, error) {
	if cached, ok := s.cache.Get(id.String()); ok {
		return cached.(*model.Artist), nil
	}

	artist, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("artist", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}

	s.cache.Set(id.String(), artist, cache.DefaultExpiration)
	return artist, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Artist, error) {
	artists, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

// Exists verifies the artist foreign key before booking or calendar writes.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) error {
	_, err := s.Get(ctx, id)
	return err
}
