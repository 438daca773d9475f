package profiles

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/common"
	"github.com/dmitrijs2005/interviewkeeper/internal/records"
	"github.com/dmitrijs2005/interviewkeeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 12, 10, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "profiles.db"), 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewService(records.NewStore(db, records.NewSQLRepositoryManager()))
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestService_GetProfileNewUser(t *testing.T) {
	s := newService(t)

	p, err := s.GetProfile(context.Background(), "new_user")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
	assert.Equal(t, DefaultStatus, p.Status)
	assert.Nil(t, p.AvatarData)
}

func TestService_UpdateThenGet(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	out, err := s.UpdateProfile(ctx, "u1", map[string]any{"name": "Alice", "avatarData": nil})
	require.NoError(t, err)
	assert.Equal(t, "Alice", out.Name)
	assert.Equal(t, fixedNow, out.UpdatedAt)

	got, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Nil(t, got.AvatarData)
	assert.Equal(t, DefaultStatus, got.Status)
	assert.Equal(t, fixedNow, got.UpdatedAt)
}

func TestService_UpdateIsFullReplace(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.UpdateProfile(ctx, "u1", map[string]any{"name": "Alice", "email": "a@example.com", "status": "面接"})
	require.NoError(t, err)
	_, err = s.UpdateProfile(ctx, "u1", map[string]any{"name": "Alice B."})
	require.NoError(t, err)

	got, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", got.Name)
	assert.Equal(t, "", got.Email)
	assert.Equal(t, DefaultStatus, got.Status)
}

func TestService_AvatarCarriedOverWhenOmitted(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.UpdateProfile(ctx, "u1", map[string]any{"avatarData": "img-1"})
	require.NoError(t, err)

	out, err := s.UpdateProfile(ctx, "u1", map[string]any{"name": "Alice"})
	require.NoError(t, err)
	require.NotNil(t, out.AvatarData)
	assert.Equal(t, "img-1", *out.AvatarData)

	got, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.AvatarData)
	assert.Equal(t, "img-1", *got.AvatarData)

	_, err = s.UpdateProfile(ctx, "u1", map[string]any{"avatarData": nil})
	require.NoError(t, err)
	got, err = s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got.AvatarData)
}

func TestService_AvatarDefaultWhenOmittedOnFirstWrite(t *testing.T) {
	s := newService(t)

	out, err := s.UpdateProfile(context.Background(), "u1", map[string]any{"name": "Alice"})
	require.NoError(t, err)
	assert.Nil(t, out.AvatarData)
}

func TestService_ProfilesAreIsolated(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.UpdateProfile(ctx, "u1", map[string]any{"name": "Alice"})
	require.NoError(t, err)

	other, err := s.GetProfile(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, Default(), other)
}

func TestService_EmptyUserID(t *testing.T) {
	s := newService(t)

	_, err := s.GetProfile(context.Background(), "")
	require.ErrorIs(t, err, common.ErrorInvalidArgument)

	_, err = s.UpdateProfile(context.Background(), "", map[string]any{})
	require.ErrorIs(t, err, common.ErrorInvalidArgument)
}

type brokenStore struct{ err error }

func (b brokenStore) Get(context.Context, records.Kind, string) (records.Record, error) {
	return nil, b.err
}

func (b brokenStore) Upsert(context.Context, records.Kind, string, records.UpsertFunc) (records.Record, error) {
	return nil, b.err
}

func TestService_WriteFailureIsPersistenceError(t *testing.T) {
	cause := errors.New("disk I/O error")
	s := NewService(brokenStore{err: errors.Join(common.ErrorStorageUnavailable, cause)})

	_, err := s.UpdateProfile(context.Background(), "u1", map[string]any{"name": "Alice"})
	require.ErrorIs(t, err, common.ErrorPersistence)
	require.ErrorIs(t, err, common.ErrorStorageUnavailable)
	require.ErrorIs(t, err, cause)
}

func TestService_ReadFailurePropagates(t *testing.T) {
	s := NewService(brokenStore{err: common.ErrorStorageUnavailable})

	_, err := s.GetProfile(context.Background(), "u1")
	require.ErrorIs(t, err, common.ErrorStorageUnavailable)
}

func TestService_UpdateRejectsNonStringAvatar(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	_, err := s.UpdateProfile(ctx, "u1", map[string]any{"name": "Alice", "avatarData": "img-1"})
	require.NoError(t, err)

	for _, avatar := range []any{int64(1), true, map[string]any{"url": "x"}} {
		_, err := s.UpdateProfile(ctx, "u1", map[string]any{"name": "Mallory", "avatarData": avatar})
		require.ErrorIs(t, err, common.ErrorInvalidArgument, "avatar=%v", avatar)
		assert.NotErrorIs(t, err, common.ErrorStorageUnavailable)
	}

	got, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	require.NotNil(t, got.AvatarData)
	assert.Equal(t, "img-1", *got.AvatarData)
}
