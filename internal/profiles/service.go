package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/records"
)

// Store is the part of records.Store the profile service depends on.
type Store interface {
	Get(ctx context.Context, kind records.Kind, id string) (records.Record, error)
	Upsert(ctx context.Context, kind records.Kind, id string, fn records.UpsertFunc) (records.Record, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// GetProfile returns the stored profile of userID merged over the defaults.
// A user without a stored profile gets Default().
func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	if userID == "" {
		return Profile{}, fmt.Errorf("%w: empty user id", common.ErrorInvalidArgument)
	}

	rec, err := s.store.Get(ctx, records.KindProfile, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Profile{}, err
	}
	return Merge(rec), nil
}

// UpdateProfile replaces the profile of userID with payload merged over the
// defaults. When payload has no avatarData key the stored avatar is kept.
// A non-string, non-null avatarData is common.ErrorInvalidArgument.
func (s *Service) UpdateProfile(ctx context.Context, userID string, payload map[string]any) (Profile, error) {
	if userID == "" {
		return Profile{}, fmt.Errorf("%w: empty user id", common.ErrorInvalidArgument)
	}

	if v, ok := payload[fieldAvatarData]; ok && v != nil {
		if _, isString := v.(string); !isString {
			return Profile{}, fmt.Errorf("%w: avatarData must be a string or null, got %T", common.ErrorInvalidArgument, v)
		}
	}

	var out Profile
	_, err := s.store.Upsert(ctx, records.KindProfile, userID, func(cur records.Record, found bool) (records.Record, error) {
		p := Merge(payload)
		if _, ok := payload[fieldAvatarData]; !ok && found {
			p.AvatarData = Merge(cur).AvatarData
		}
		p.UpdatedAt = s.now().UTC()
		out = p
		return ToRecord(p), nil
	})
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %w", common.ErrorPersistence, err)
	}
	return out, nil
}
