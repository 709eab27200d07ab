package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotels_api/internal/domain"
)

type CommandService struct {
	repo  domain.HotelRepository
	cache domain.Cache
	now   func() time.Time
}

func NewCommandService(r domain.HotelRepository, c domain.Cache) *CommandService {
	return &CommandService{
		repo:  r,
		cache: c,
		// DATETIME columns keep whole seconds only
		now: func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// WithClock replaces the timestamp source used for created_at/updated_at.
func (s *CommandService) WithClock(now func() time.Time) *CommandService {
	s.now = now
	return s
}

func (s *CommandService) CreateHotel(ctx context.Context, in domain.HotelInput) (domain.Hotel, error) {
	if err := ValidateHotel(in); err != nil {
		return domain.Hotel{}, err
	}

	now := s.now()
	h := domain.Hotel{Name: in.Name, Address: in.Address, CreatedAt: now, UpdatedAt: now}
	id, err := s.repo.CreateHotel(ctx, h)
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("create hotel: %w", err)
	}
	h.ID = id

	// a new row only changes the listing
	s.evict(ctx, listCacheKey)
	return h, nil
}

// UpdateHotel overwrites both name and address. Validation runs before the
// lookup, so an invalid payload for an unknown id is still a ValidationError.
func (s *CommandService) UpdateHotel(ctx context.Context, id int64, in domain.HotelInput) (domain.Hotel, error) {
	if err := ValidateHotel(in); err != nil {
		return domain.Hotel{}, err
	}

	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("update hotel %d: %w", id, err)
	}

	h.Name = in.Name
	h.Address = in.Address
	h.UpdatedAt = s.now()
	if err := s.repo.UpdateHotel(ctx, h); err != nil {
		return domain.Hotel{}, fmt.Errorf("update hotel %d: %w", id, err)
	}

	s.evict(ctx, hotelCacheKey(id), listCacheKey)
	return h, nil
}

// DeleteHotel removes the row and returns its last known values.
func (s *CommandService) DeleteHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("delete hotel %d: %w", id, err)
	}
	if err := s.repo.DeleteHotel(ctx, id); err != nil {
		return domain.Hotel{}, fmt.Errorf("delete hotel %d: %w", id, err)
	}

	s.evict(ctx, hotelCacheKey(id), listCacheKey)
	return h, nil
}

func (s *CommandService) evict(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	for _, k := range keys {
		if err := s.cache.Del(ctx, k); err != nil {
			// a stale entry lives until its TTL; the write itself succeeded
			log.Warn().Err(err).Str("key", k).Msg("cache eviction failed")
		}
	}
}
