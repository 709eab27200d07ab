// Package migrations owns the hotels schema. The SQL files are embedded and
// applied with goose, which records applied versions in goose_db_version.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed *.sql
var FS embed.FS

// goose keeps its dialect, filesystem and logger in package globals.
var setupMu sync.Mutex

func setup() error {
	goose.SetBaseFS(FS)
	goose.SetLogger(gooseLogger{})
	return goose.SetDialect("mysql")
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB) error {
	return run("up", func() error { return goose.UpContext(ctx, db, ".") })
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB) error {
	return run("down", func() error { return goose.DownContext(ctx, db, ".") })
}

// Reset rolls back every applied migration.
func Reset(ctx context.Context, db *sql.DB) error {
	return run("reset", func() error { return goose.ResetContext(ctx, db, ".") })
}

// Status logs the applied/pending state of each migration.
func Status(ctx context.Context, db *sql.DB) error {
	return run("status", func() error { return goose.StatusContext(ctx, db, ".") })
}

// Version returns the latest applied migration version.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	setupMu.Lock()
	defer setupMu.Unlock()
	if err := setup(); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}

func run(op string, fn func() error) error {
	setupMu.Lock()
	defer setupMu.Unlock()
	if err := setup(); err != nil {
		return fmt.Errorf("migrations %s: %w", op, err)
	}
	if err := fn(); err != nil {
		return fmt.Errorf("migrations %s: %w", op, err)
	}
	log.Info().Str("op", op).Msg("migrations done")
	return nil
}

type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	log.Info().Str("component", "goose").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf must not return; goose relies on it to stop.
func (gooseLogger) Fatalf(format string, v ...any) {
	log.Fatal().Str("component", "goose").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
