// Package storage opens the process-wide database handle behind the record
// store and brings its schema up to date with goose.
//
// The default backend is an embedded SQLite file (pure-Go modernc driver).
// A postgres:// DSN switches to PostgreSQL through the pgx stdlib driver; the
// schema and queries are shared by both.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/filex"
	"github.com/dmitrijs2005/interviewkeeper/internal/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Registered database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// DriverFor picks the driver for a DSN. Anything that is not a PostgreSQL
// URL is treated as a SQLite path.
func DriverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// isPlainPath reports whether a SQLite DSN is a bare file path rather than a
// file: URI or an in-memory database.
func isPlainPath(dsn string) bool {
	return dsn != "" && !isMemory(dsn) && !strings.HasPrefix(dsn, "file:") && !strings.Contains(dsn, "?")
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// SQLiteDSN turns a file path into a modernc DSN with the pragmas the store
// relies on: a busy timeout so writers queue instead of failing, WAL so
// readers do not block the writer, and IMMEDIATE transactions so a
// read-modify-write takes the write lock before it reads.
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	params := []string{
		fmt.Sprintf("_pragma=busy_timeout(%d)", busyTimeout.Milliseconds()),
		"_pragma=foreign_keys(1)",
		"_txlock=immediate",
	}
	if !isMemory(path) {
		params = append(params, "_pragma=journal_mode(WAL)")
	}
	return dsn + sep + strings.Join(params, "&")
}

func dialectFor(driver string) goose.Dialect {
	if driver == DriverPostgres {
		return goose.DialectPostgres
	}
	return goose.DialectSQLite3
}

// gooseUp is a seam for testing migration failures.
var gooseUp = func(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	p, err := goose.NewProvider(dialect, db, migrations.Migrations)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// RunMigrations applies all pending migrations for the given driver.
// It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) error {
	if err := gooseUp(ctx, db, dialectFor(driver)); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}

// Open connects to dsn, verifies the connection and runs migrations.
// The returned handle is meant to be shared for the lifetime of the process.
func Open(ctx context.Context, dsn string, busyTimeout time.Duration) (*sqlx.DB, error) {
	driver := DriverFor(dsn)
	if driver == DriverSQLite {
		if isPlainPath(dsn) {
			if _, err := filex.EnsureParentDir(dsn); err != nil {
				return nil, fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
			}
		}
		dsn = SQLiteDSN(dsn, busyTimeout)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
	}

	// every connection to :memory: is a separate database
	if driver == DriverSQLite && isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
	}

	if err := RunMigrations(ctx, db.DB, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
