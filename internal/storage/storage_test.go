package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestDriverFor(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost:5432/ik?sslmode=disable", DriverPostgres},
		{"postgresql://localhost/ik", DriverPostgres},
		{"interviewkeeper.db", DriverSQLite},
		{"file:/var/lib/ik/data.db", DriverSQLite},
		{":memory:", DriverSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, DriverFor(tt.dsn))
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	got := SQLiteDSN("/tmp/ik.db", 5*time.Second)
	assert.Equal(t, "file:/tmp/ik.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_txlock=immediate&_pragma=journal_mode(WAL)", got)

	got = SQLiteDSN("file:ik.db?cache=private", time.Second)
	assert.Equal(t, "file:ik.db?cache=private&_pragma=busy_timeout(1000)&_pragma=foreign_keys(1)&_txlock=immediate&_pragma=journal_mode(WAL)", got)

	got = SQLiteDSN(":memory:", time.Second)
	assert.Equal(t, "file::memory:?_pragma=busy_timeout(1000)&_pragma=foreign_keys(1)&_txlock=immediate", got)
}

func TestOpen_CreatesSchema(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "ik.db"), time.Second)
	require.NoError(t, err)
	defer db.Close()

	require.True(t, tableExists(t, db.DB, "records"))
	require.True(t, tableExists(t, db.DB, "goose_db_version"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "ik.db"), time.Second)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db.DB, DriverSQLite), "second run must be a no-op")
	require.True(t, tableExists(t, db.DB, "records"))
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "data", "ik.db")
	db, err := Open(context.Background(), path, time.Second)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Dir(path))
	require.NoError(t, err)
}

func TestIsPlainPath(t *testing.T) {
	assert.True(t, isPlainPath("ik.db"))
	assert.True(t, isPlainPath("/var/lib/ik/ik.db"))
	assert.False(t, isPlainPath(":memory:"))
	assert.False(t, isPlainPath("file:ik.db"))
	assert.False(t, isPlainPath("ik.db?_pragma=foreign_keys(1)"))
	assert.False(t, isPlainPath(""))
}

func TestOpen_InMemory(t *testing.T) {
	t.Parallel()

	db, err := Open(context.Background(), ":memory:", time.Second)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO records (kind, id, owner, body, created_at, updated_at) VALUES ('user', 'u1', 'u1', '{}', 'now', 'now')`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM records`))
	assert.Equal(t, 1, n)
}

func TestRunMigrations_Error(t *testing.T) {
	orig := gooseUp
	gooseUp = func(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
		assert.Equal(t, goose.DialectPostgres, dialect)
		return errors.New("boom")
	}
	defer func() { gooseUp = orig }()

	err := RunMigrations(context.Background(), nil, DriverPostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations failed: boom")
}
