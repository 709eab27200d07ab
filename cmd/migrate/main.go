package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"hotels_api/internal/adapters/observability"
	"hotels_api/internal/shared"
	mysqlrepo "hotels_api/internal/storage/mysql"
	"hotels_api/internal/storage/mysql/migrations"
)

const usage = `usage: migrate [-timeout 1m] <up|down|reset|status|version>

  up       apply all pending migrations
  down     roll back the latest migration
  reset    roll back all migrations
  status   print applied/pending migrations
  version  print the current schema version
`

func main() {
	timeout := flag.Duration("timeout", time.Minute, "overall deadline")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	cmd := flag.Arg(0)

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN, mysqlrepo.PoolOptions{MaxOpenConns: 1})
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	log.Info().Msg("db ping ok")

	switch cmd {
	case "up":
		err = migrations.Up(ctx, db)
	case "down":
		err = migrations.Down(ctx, db)
	case "reset":
		err = migrations.Reset(ctx, db)
	case "status":
		err = migrations.Status(ctx, db)
	case "version":
		var v int64
		if v, err = migrations.Version(ctx, db); err == nil {
			log.Info().Int64("version", v).Msg("schema version")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migration failed")
	}
}
