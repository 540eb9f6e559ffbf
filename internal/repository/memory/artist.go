package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/inkstudio/booking-api/internal/model"
	"github.com/inkstudio/booking-api/internal/repository"
)

func (r *ArtistRepository) Create(ctx context.Context, artist *model.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if artist.ID == uuid.Nil {
		artist.ID = uuid.New()
	}
	artist.CreatedAt = time.Now()
	artist.UpdatedAt = time.Now()
	r.artists[artist.ID] = *artist
	return nil
}

func (r *ArtistRepository) Get(ctx context.Context, id uuid.UUID) (*model.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artist, ok := r.artists[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &artist, nil
}

func (r *ArtistRepository) List(ctx context.Context) ([]*model.Artist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	artists := make([]*model.Artist, 0, len(r.artists))
	for _, a := range r.artists {
		artist := a
		artists = append(artists, &artist)
	}
	sort.Slice(artists, func(i, j int) bool { return artists[i].Name < artists[j].Name })
	return artists, nil
}

func (r *ArtistRepository) Update(ctx context.Context, artist *model.Artist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.artists[artist.ID]; !ok {
		return repository.ErrNotFound
	}
	artist.UpdatedAt = time.Now()
	r.artists[artist.ID] = *artist
	return nil
}
