package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/dbx"
	"github.com/dmitrijs2005/interviewkeeper/internal/keylock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UpdateFunc receives the current record and returns its replacement.
// Returning an error aborts the write and is passed back to the caller as is.
type UpdateFunc func(cur Record) (Record, error)

// UpsertFunc is like UpdateFunc but is also called for a missing key, with
// found == false and an empty record.
type UpsertFunc func(cur Record, found bool) (Record, error)

// Store is the record store shared by all services.
type Store struct {
	db    *sqlx.DB
	repos RepositoryManager
	locks *keylock.Map
	now   func() time.Time
	newID func() string
}

// NewStore binds a Store to an open database handle.
func NewStore(db *sqlx.DB, m RepositoryManager) *Store {
	return &Store{
		db:    db,
		repos: m,
		locks: keylock.New(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

func lockKey(kind Kind, id string) string {
	return string(kind) + "/" + id
}

// TimeLayout is fixed width so that stored timestamps sort chronologically
// as plain strings.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

func (s *Store) timestamp() string {
	return s.now().UTC().Format(TimeLayout)
}

// storageError keeps the store's own sentinels and turns everything else into
// common.ErrorStorageUnavailable.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{common.ErrorNotFound, common.ErrorAlreadyExists, common.ErrorStorageUnavailable} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
}

// Get returns the record stored under (kind, id).
func (s *Store) Get(ctx context.Context, kind Kind, id string) (Record, error) {
	row, err := s.repos.Records(s.db).Get(ctx, kind, id)
	if err != nil {
		return nil, storageError(err)
	}
	rec, err := Decode(row.Body)
	if err != nil {
		return nil, storageError(err)
	}
	return rec, nil
}

// Put overwrites (or creates) the record stored under (kind, id).
func (s *Store) Put(ctx context.Context, kind Kind, id string, rec Record) error {
	body, err := Encode(rec)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(lockKey(kind, id))
	defer unlock()

	ts := s.timestamp()
	row := &Row{Kind: kind, ID: id, Owner: ownerOf(id, rec), Body: body, CreatedAt: ts, UpdatedAt: ts}
	return storageError(s.repos.Records(s.db).Upsert(ctx, row))
}

// Insert creates the record under a caller-chosen key. It fails with
// common.ErrorAlreadyExists when the key is taken.
func (s *Store) Insert(ctx context.Context, kind Kind, id string, rec Record) error {
	body, err := Encode(rec)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(lockKey(kind, id))
	defer unlock()

	ts := s.timestamp()
	row := &Row{Kind: kind, ID: id, Owner: ownerOf(id, rec), Body: body, CreatedAt: ts, UpdatedAt: ts}
	return storageError(s.repos.Records(s.db).Insert(ctx, row))
}

// Create stores rec under a freshly generated key and returns the key. The
// key is also written into the record's id field.
func (s *Store) Create(ctx context.Context, kind Kind, rec Record) (string, error) {
	id := s.newID()
	rec = rec.Clone()
	rec[FieldID] = id
	if err := s.Insert(ctx, kind, id, rec); err != nil {
		return "", err
	}
	return id, nil
}

// Update runs fn against the stored record and writes the result back,
// atomically with respect to every other write to the same key.
// It fails with common.ErrorNotFound when the key does not exist.
func (s *Store) Update(ctx context.Context, kind Kind, id string, fn UpdateFunc) (Record, error) {
	return s.modify(ctx, kind, id, false, func(cur Record, _ bool) (Record, error) {
		return fn(cur)
	})
}

// Upsert is Update that starts from an empty record for a missing key.
func (s *Store) Upsert(ctx context.Context, kind Kind, id string, fn UpsertFunc) (Record, error) {
	return s.modify(ctx, kind, id, true, fn)
}

func (s *Store) modify(ctx context.Context, kind Kind, id string, create bool, fn UpsertFunc) (Record, error) {
	unlock := s.locks.Lock(lockKey(kind, id))
	defer unlock()

	var (
		next  Record
		fnErr error
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Records(tx)

		found := true
		row, err := repo.Get(ctx, kind, id)
		if errors.Is(err, common.ErrorNotFound) && create {
			found = false
			row = &Row{Kind: kind, ID: id, CreatedAt: s.timestamp()}
		} else if err != nil {
			return err
		}

		cur, err := Decode(row.Body)
		if err != nil {
			return err
		}

		next, fnErr = fn(cur, found)
		if fnErr != nil {
			return fnErr
		}

		body, err := Encode(next)
		if err != nil {
			return err
		}
		row.Owner = ownerOf(id, next)
		row.Body = body
		row.UpdatedAt = s.timestamp()

		if found {
			return repo.Update(ctx, row)
		}
		return repo.Insert(ctx, row)
	})
	if fnErr != nil {
		return nil, fnErr
	}
	if err != nil {
		return nil, storageError(err)
	}
	return next, nil
}

// FindByOwner returns every record of kind owned by owner, oldest first.
func (s *Store) FindByOwner(ctx context.Context, kind Kind, owner string) ([]Record, error) {
	rows, err := s.repos.Records(s.db).FindByOwner(ctx, kind, owner)
	if err != nil {
		return nil, storageError(err)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec, err := Decode(row.Body)
		if err != nil {
			return nil, storageError(err)
		}
		out = append(out, rec)
	}
	return out, nil
}
