package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	"github.com/goodnatureofminers/ethtxs-indexer/migrations"
)

type config struct {
	DSN     string `long:"dsn" env:"MIGRATIONS_DSN" required:"true" description:"database DSN (postgres://... or clickhouse://...)"`
	Dialect string `long:"dialect" env:"MIGRATIONS_DIALECT" default:"postgres" choice:"postgres" choice:"clickhouse" description:"schema dialect"`
	Down    bool   `long:"down" env:"MIGRATIONS_DOWN" description:"roll every migration back instead of applying"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runMigrations(ctx, cfg); err != nil {
		log.Fatalf("migration run failed: %v", err)
	}
}

func runMigrations(ctx context.Context, cfg config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dialect, err := migrations.ParseDialect(cfg.Dialect)
	if err != nil {
		return err
	}

	step, name := migrations.Up, "applied"
	if cfg.Down {
		step, name = migrations.Down, "rolled back"
	}
	if err := step(cfg.DSN, dialect); err != nil {
		return fmt.Errorf("%s migrations: %w", dialect, err)
	}

	log.Printf("%s migrations %s", dialect, name)
	return nil
}
