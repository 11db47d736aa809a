// Package migrations embeds the schema migrations for every supported store.
package migrations

import (
	"embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/clickhouse"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql clickhouse/*.sql
var files embed.FS

// Dialect selects the migration set and the target driver.
type Dialect string

const (
	Postgres   Dialect = "postgres"
	ClickHouse Dialect = "clickhouse"
)

// ParseDialect validates a dialect name.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(name)); d {
	case Postgres, ClickHouse:
		return d, nil
	default:
		return "", fmt.Errorf("unknown migration dialect %q", name)
	}
}

// New builds a migrator over the embedded files for dialect.
func New(dsn string, dialect Dialect) (*migrate.Migrate, error) {
	src, err := iofs.New(files, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("open %s migrations: %w", dialect, err)
	}
	target, err := DatabaseURL(dsn, dialect)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, target)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

// Up applies every pending migration. An up-to-date schema is not an error.
func Up(dsn string, dialect Dialect) error {
	return run(dsn, dialect, (*migrate.Migrate).Up)
}

// Down reverts every applied migration.
func Down(dsn string, dialect Dialect) error {
	return run(dsn, dialect, (*migrate.Migrate).Down)
}

func run(dsn string, dialect Dialect, step func(*migrate.Migrate) error) (err error) {
	m, err := New(dsn, dialect)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = errors.Join(err, srcErr, dbErr)
	}()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}

// DatabaseURL rewrites a connection string into the URL form golang-migrate expects for dialect.
func DatabaseURL(dsn string, dialect Dialect) (string, error) {
	parsed, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse %s dsn: %w", dialect, err)
	}

	switch dialect {
	case Postgres:
		switch parsed.Scheme {
		case "postgres", "postgresql", "pgx5":
			parsed.Scheme = "pgx5"
		default:
			return "", fmt.Errorf("unsupported postgres dsn scheme %q", parsed.Scheme)
		}
	case ClickHouse:
		if parsed.Scheme != "clickhouse" {
			return "", fmt.Errorf("unsupported clickhouse dsn scheme %q", parsed.Scheme)
		}
		query := parsed.Query()
		if query.Get("x-multi-statement") == "" {
			query.Set("x-multi-statement", "true")
		}
		parsed.RawQuery = query.Encode()
	default:
		return "", fmt.Errorf("unknown migration dialect %q", dialect)
	}
	return parsed.String(), nil
}
