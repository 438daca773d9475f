package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/dbx"
	"github.com/jmoiron/sqlx"
)

// SQLRepository implements Repository using a DBTX (either *sqlx.DB or *sqlx.Tx).
// Queries use ? placeholders and are rebound for the driver in use.
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository returns a new SQLRepository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Get(ctx context.Context, kind Kind, id string) (*Row, error) {
	query := `SELECT kind, id, owner, body, created_at, updated_at FROM records
		WHERE kind = ? AND id = ?`

	row := &Row{}
	err := sqlx.GetContext(ctx, r.db, row, r.db.Rebind(query), kind, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row, nil
}

// Insert relies on ON CONFLICT DO NOTHING so a duplicate key is detected
// from the affected row count instead of a driver-specific error code.
func (r *SQLRepository) Insert(ctx context.Context, row *Row) error {
	query := `INSERT INTO records (kind, id, owner, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		row.Kind, row.ID, row.Owner, row.Body, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorAlreadyExists
	}
	return nil
}

func (r *SQLRepository) Upsert(ctx context.Context, row *Row) error {
	query := `INSERT INTO records (kind, id, owner, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (kind, id) DO UPDATE SET owner = excluded.owner,
			body = excluded.body,
			updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		row.Kind, row.ID, row.Owner, row.Body, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, row *Row) error {
	query := `UPDATE records SET owner = ?, body = ?, updated_at = ?
		WHERE kind = ? AND id = ?`

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		row.Owner, row.Body, row.UpdatedAt, row.Kind, row.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLRepository) FindByOwner(ctx context.Context, kind Kind, owner string) ([]Row, error) {
	query := `SELECT kind, id, owner, body, created_at, updated_at FROM records
		WHERE kind = ? AND owner = ?
		ORDER BY created_at, id`

	var rows []Row
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), kind, owner); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rows, nil
}
