package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/interviewkeeper/internal/config"
	"github.com/dmitrijs2005/interviewkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.DatabaseDSN = filepath.Join(t.TempDir(), "app.db")
	return c
}

func TestNewApp_SeedsUsers(t *testing.T) {
	c := testConfig(t)
	c.UsersFile = filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(c.UsersFile, []byte("users:\n  - user_id: demo\n    password: demo\n"), 0o600))

	ctx := context.Background()
	app, err := NewApp(ctx, c, logging.Discard())
	require.NoError(t, err)
	defer app.Close()

	u, err := app.Services().Users.GetUser(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", u.UserID)

	tok, err := app.Services().Auth.Login(ctx, "demo", "demo")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.AccessToken)
}

func TestNewApp_Errors(t *testing.T) {
	c := testConfig(t)
	c.UsersFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := NewApp(context.Background(), c, logging.Discard())
	require.Error(t, err)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o660))

	c = testConfig(t)
	c.DatabaseDSN = filepath.Join(blocker, "app.db")
	_, err = NewApp(context.Background(), c, logging.Discard())
	require.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}

	require.Error(t, app.db.Ping(), "store must be closed after Run")
}

func TestApp_RunFailsOnBadAddress(t *testing.T) {
	c := testConfig(t)
	c.HTTPAddr = "256.0.0.1:bad"
	app, err := NewApp(context.Background(), c, logging.Discard())
	require.NoError(t, err)

	require.Error(t, app.Run(context.Background()))
}
