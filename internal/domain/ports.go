package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("hotel not found")

type HotelRepository interface {
	// Write paths
	CreateHotel(ctx context.Context, h Hotel) (int64, error)
	UpdateHotel(ctx context.Context, h Hotel) error
	DeleteHotel(ctx context.Context, id int64) error

	// Read paths
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
