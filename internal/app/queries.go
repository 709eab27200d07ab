package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotels_api/internal/domain"
)

const listCacheKey = "hotels:all"

func hotelCacheKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

type QueryService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

// NewQueryService builds the read side. c may be nil, in which case every
// read goes straight to the repository.
func NewQueryService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelCacheKey(id)
	var h domain.Hotel
	if s.cacheGet(ctx, key, &h) {
		return h, nil
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("get hotel %d: %w", id, err)
	}
	s.cacheSet(ctx, key, h)
	return h, nil
}

func (s *QueryService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	var out []domain.Hotel
	if s.cacheGet(ctx, listCacheKey, &out) {
		return out, nil
	}

	hs, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}

	// copy so callers can't mutate what we hand to the cache
	out = make([]domain.Hotel, len(hs))
	copy(out, hs)

	s.cacheSet(ctx, listCacheKey, out)
	return out, nil
}

func (s *QueryService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, err := s.cache.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	return ok
}

func (s *QueryService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}
