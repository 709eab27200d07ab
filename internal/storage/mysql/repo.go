package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"hotels_api/internal/adapters/observability"
	"hotels_api/internal/domain"
)

type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open connects to MySQL, applies pool limits and pings within 5s.
// The DSN must carry parseTime=true so DATETIME scans into time.Time.
func Open(ctx context.Context, dsn string, p PoolOptions) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if p.MaxOpenConns > 0 {
		db.SetMaxOpenConns(p.MaxOpenConns)
	}
	if p.MaxIdleConns > 0 {
		db.SetMaxIdleConns(p.MaxIdleConns)
	}
	if p.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(p.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) (id int64, err error) {
	defer observe("create", time.Now(), &err)
	res, err := r.db.ExecContext(ctx, insertHotelSQL, h.Name, h.Address, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpdateHotel(ctx context.Context, h domain.Hotel) (err error) {
	defer observe("update", time.Now(), &err)
	// RowsAffected is 0 for an unchanged row in MySQL, so it can't signal a
	// missing id here; callers look the row up first.
	_, err = r.db.ExecContext(ctx, updateHotelSQL, h.Name, h.Address, h.UpdatedAt, h.ID)
	return err
}

func (r *Repo) DeleteHotel(ctx context.Context, id int64) (err error) {
	defer observe("delete", time.Now(), &err)
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (h domain.Hotel, err error) {
	defer observe("get", time.Now(), &err)
	h, err = scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, err
}

func (r *Repo) ListHotels(ctx context.Context) (out []domain.Hotel, err error) {
	defer observe("list", time.Now(), &err)
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface{ Scan(dest ...any) error }

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var name, address sql.NullString
	var createdAt, updatedAt sql.NullTime
	if err := s.Scan(&h.ID, &name, &address, &createdAt, &updatedAt); err != nil {
		return domain.Hotel{}, err
	}
	h.Name = name.String
	h.Address = address.String
	if createdAt.Valid {
		h.CreatedAt = createdAt.Time.UTC()
	}
	if updatedAt.Valid {
		h.UpdatedAt = updatedAt.Time.UTC()
	}
	return h, nil
}

func observe(op string, start time.Time, err *error) {
	observability.ObserveDB(op, time.Since(start), *err)
}
