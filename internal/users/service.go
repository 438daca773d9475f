package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/records"
)

// Registry stores user accounts keyed by user id. Accounts are immutable
// once created.
type Registry struct {
	store Store
	now   func() time.Time
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store, now: time.Now}
}

// CreateUser registers userID with an already hashed password.
func (r *Registry) CreateUser(ctx context.Context, userID, passwordHash string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", common.ErrorInvalidArgument)
	}

	user := &User{
		UserID:       userID,
		PasswordHash: passwordHash,
		CreatedAt:    r.now().UTC(),
	}

	if err := r.store.Insert(ctx, records.KindUser, userID, toRecord(user)); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// GetUser returns common.ErrorNotFound for an unknown user id.
func (r *Registry) GetUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, common.ErrorNotFound
	}

	rec, err := r.store.Get(ctx, records.KindUser, userID)
	if err != nil {
		return nil, err
	}

	user, err := fromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user record: %w", common.ErrorStorageUnavailable, err)
	}
	return user, nil
}
