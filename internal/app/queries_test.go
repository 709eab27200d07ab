package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"hotels_api/internal/app"
	"hotels_api/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Hotel
	err    error // returned by every call when set
}

func newFakeRepo(seed ...domain.Hotel) *fakeRepo {
	f := &fakeRepo{rows: map[int64]domain.Hotel{}}
	for _, h := range seed {
		f.rows[h.ID] = h
		if h.ID > f.nextID {
			f.nextID = h.ID
		}
	}
	return f
}

func (f *fakeRepo) CreateHotel(ctx context.Context, h domain.Hotel) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	h.ID = f.nextID
	f.rows[h.ID] = h
	return h.ID, nil
}

func (f *fakeRepo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[h.ID]; !ok {
		return domain.ErrNotFound
	}
	f.rows[h.ID] = h
	return nil
}

func (f *fakeRepo) DeleteHotel(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Hotel{}, f.err
	}
	h, ok := f.rows[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Hotel, 0, len(f.rows))
	for _, h := range f.rows {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

// ---- tests ----

func TestGetHotel_CacheMissThenHit(t *testing.T) {
	repo := newFakeRepo(domain.Hotel{ID: 42, Name: "Hotel Test", Address: "Main St 1"})
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	// Miss (first time, populates cache)
	h, err := q.GetHotel(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.ID != 42 || h.Name != "Hotel Test" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	// Mutate repo to ensure second read indeed comes from cache
	repo.rows[42] = domain.Hotel{ID: 42, Name: "SHOULD NOT SEE THIS"}

	h2, err := q.GetHotel(context.Background(), 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h2.Name != "Hotel Test" {
		t.Fatalf("expected cached name, got %s", h2.Name)
	}
}

func TestGetHotel_NotFound(t *testing.T) {
	q := app.NewQueryService(newFakeRepo(), &fakeCache{}, time.Minute)

	_, err := q.GetHotel(context.Background(), 7)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListHotels_Cache(t *testing.T) {
	repo := newFakeRepo(
		domain.Hotel{ID: 1, Name: "Ana", Address: "A"},
		domain.Hotel{ID: 2, Name: "Bob", Address: "B"},
	)
	cache := &fakeCache{}
	q := app.NewQueryService(repo, cache, 10*time.Minute)

	out, err := q.ListHotels(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(out) != 2 || out[0].Name != "Ana" || out[1].Name != "Bob" {
		t.Fatalf("unexpected hotels: %+v", out)
	}

	// Change repo, call again -> should come from cache
	delete(repo.rows, 2)
	out2, _ := q.ListHotels(context.Background())
	if len(out2) != 2 {
		t.Fatalf("expected cached listing of 2, got %d", len(out2))
	}
}

func TestListHotels_EmptyIsNotNil(t *testing.T) {
	q := app.NewQueryService(newFakeRepo(), nil, 0)

	out, err := q.ListHotels(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestQueries_NilCacheReadsThrough(t *testing.T) {
	repo := newFakeRepo(domain.Hotel{ID: 3, Name: "Old", Address: "X"})
	q := app.NewQueryService(repo, nil, time.Minute)

	if _, err := q.GetHotel(context.Background(), 3); err != nil {
		t.Fatalf("err: %v", err)
	}
	repo.rows[3] = domain.Hotel{ID: 3, Name: "New", Address: "X"}
	h, err := q.GetHotel(context.Background(), 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.Name != "New" {
		t.Fatalf("expected fresh read without cache, got %s", h.Name)
	}
}
