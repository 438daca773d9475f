package interviews

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/records"
)

// Store is the part of records.Store the interview service depends on.
type Store interface {
	Get(ctx context.Context, kind records.Kind, id string) (records.Record, error)
	Create(ctx context.Context, kind records.Kind, rec records.Record) (string, error)
	Update(ctx context.Context, kind records.Kind, id string, fn records.UpdateFunc) (records.Record, error)
	FindByOwner(ctx context.Context, kind records.Kind, owner string) ([]records.Record, error)
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateInterview stores a new interview for userID. The payload provides
// created_at, mode, setup and the initial transcript; id and user_id are
// always assigned here.
func (s *Service) CreateInterview(ctx context.Context, userID string, payload map[string]any) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", common.ErrorInvalidArgument)
	}

	rec := records.Record(payload).Clone()
	delete(rec, records.FieldID)
	rec[records.FieldUserID] = userID
	if rec[fieldTranscript] == nil {
		rec[fieldTranscript] = []any{}
	}
	if rec.String(fieldCreatedAt) == "" {
		rec[fieldCreatedAt] = s.now().UTC().Format(records.TimeLayout)
	}

	if _, err := fromRecord(rec); err != nil {
		return "", err
	}

	return s.store.Create(ctx, records.KindInterview, rec)
}

// UpdateInterview shallow-merges patch into the stored interview. The id and
// owner of an interview cannot be changed.
func (s *Service) UpdateInterview(ctx context.Context, id string, patch map[string]any) (*Interview, error) {
	rec, err := s.store.Update(ctx, records.KindInterview, id, func(cur records.Record) (records.Record, error) {
		for k, v := range patch {
			if k == records.FieldID || k == records.FieldUserID {
				continue
			}
			cur[k] = v
		}
		if _, err := fromRecord(cur); err != nil {
			return nil, err
		}
		return cur, nil
	})
	if err != nil {
		return nil, err
	}
	return fromRecord(rec)
}

// AppendTranscriptEntry adds entry at the end of the interview transcript.
// Concurrent appends to one interview are serialized and none is lost.
func (s *Service) AppendTranscriptEntry(ctx context.Context, id string, entry TranscriptEntry) (*Interview, error) {
	if err := entry.validate(); err != nil {
		return nil, err
	}
	item, err := entryRecord(entry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInvalidArgument, err)
	}

	rec, err := s.store.Update(ctx, records.KindInterview, id, func(cur records.Record) (records.Record, error) {
		list, _ := cur[fieldTranscript].([]any)
		cur[fieldTranscript] = append(list, item)
		return cur, nil
	})
	if err != nil {
		return nil, err
	}
	return fromRecord(rec)
}

// GetInterview returns common.ErrorNotFound for an unknown id.
func (s *Service) GetInterview(ctx context.Context, id string) (*Interview, error) {
	if id == "" {
		return nil, common.ErrorNotFound
	}
	rec, err := s.store.Get(ctx, records.KindInterview, id)
	if err != nil {
		return nil, err
	}
	return fromRecord(rec)
}

// GetOwnedInterview is GetInterview restricted to interviews of userID.
// Interviews of other users are reported as not found.
func (s *Service) GetOwnedInterview(ctx context.Context, userID, id string) (*Interview, error) {
	iv, err := s.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return iv, nil
}

// ListInterviews returns every interview of userID ordered by created_at,
// ties broken by id.
func (s *Service) ListInterviews(ctx context.Context, userID string) ([]*Interview, error) {
	recs, err := s.store.FindByOwner(ctx, records.KindInterview, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*Interview, 0, len(recs))
	for _, rec := range recs {
		iv, err := fromRecord(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, iv)
	}

	slices.SortStableFunc(out, func(a, b *Interview) int {
		if c := cmp.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}
