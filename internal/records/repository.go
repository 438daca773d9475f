package records

import (
	"context"

	"github.com/dmitrijs2005/interviewkeeper/internal/dbx"
)

// Row is one stored record as it sits in the records table.
type Row struct {
	Kind      Kind   `db:"kind"`
	ID        string `db:"id"`
	Owner     string `db:"owner"`
	Body      string `db:"body"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// Repository describes row-level access to the records table.
type Repository interface {
	// Get returns the row for (kind, id) or common.ErrorNotFound.
	Get(ctx context.Context, kind Kind, id string) (*Row, error)

	// Insert creates a row; common.ErrorAlreadyExists if the key is taken.
	Insert(ctx context.Context, row *Row) error

	// Upsert creates the row or overwrites owner, body and updated_at.
	Upsert(ctx context.Context, row *Row) error

	// Update overwrites owner, body and updated_at of an existing row;
	// common.ErrorNotFound if there is none.
	Update(ctx context.Context, row *Row) error

	// FindByOwner lists rows of a kind owned by owner, oldest first.
	FindByOwner(ctx context.Context, kind Kind, owner string) ([]Row, error)
}

// RepositoryManager vends repositories bound to a DBTX (pool or transaction).
type RepositoryManager interface {
	Records(db dbx.DBTX) Repository
}

// SQLRepositoryManager vends SQLRepository instances.
type SQLRepositoryManager struct{}

// NewSQLRepositoryManager constructs the SQL-backed RepositoryManager.
func NewSQLRepositoryManager() *SQLRepositoryManager {
	return &SQLRepositoryManager{}
}

// Records returns a Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Records(db dbx.DBTX) Repository {
	return NewSQLRepository(db)
}
