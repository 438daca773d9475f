package ikctl

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func tempDSN(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "ikctl.db")
}

func TestMigrate(t *testing.T) {
	dsn := tempDSN(t)

	out, err := run(t, "migrate", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "up to date (driver sqlite)")

	_, err = run(t, "migrate", "--dsn", dsn)
	require.NoError(t, err, "migrations are idempotent")
}

func TestPlayground(t *testing.T) {
	dsn := tempDSN(t)

	out, err := run(t, "playground", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "User 'test_user_001' created.")
	assert.Contains(t, out, "Transcript count: 2")
	assert.Contains(t, out, "[USER] I am a software engineer")
	assert.Contains(t, out, "[AI] That's great.")
	assert.Contains(t, out, "Found 1 interviews for user 'test_user_001'")

	out, err = run(t, "playground", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "User 'test_user_001' already exists.")
	assert.Contains(t, out, "Found 2 interviews")
}

func TestUserCreate(t *testing.T) {
	dsn := tempDSN(t)

	out, err := run(t, "user", "create", "alice", "--password", "pw", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, `user "alice" created`)

	_, err = run(t, "user", "create", "alice", "--password", "pw", "--dsn", dsn)
	require.ErrorContains(t, err, "already exists")

	out, err = run(t, "user", "create", "bob", "--generate-password", "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "generated password: ")
}

func TestUserCreate_PromptsForPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	var prompted bool
	readPassword = func(int) ([]byte, error) {
		prompted = true
		return []byte("typed"), nil
	}

	out, err := run(t, "user", "create", "carol", "--dsn", tempDSN(t))
	require.NoError(t, err)
	assert.True(t, prompted)
	assert.Contains(t, out, "Password for carol: ")
}

func TestUserCreate_PromptFailure(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }

	_, err := run(t, "user", "create", "dave", "--dsn", tempDSN(t))
	require.ErrorContains(t, err, "not a terminal")
}

func TestInterviewListAndShow(t *testing.T) {
	dsn := tempDSN(t)

	_, err := run(t, "playground", "--dsn", dsn, "--user", "u1")
	require.NoError(t, err)

	out, err := run(t, "interview", "list", "u1", "--dsn", dsn)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	fields := strings.Fields(lines[1])
	require.Len(t, fields, 4)
	assert.Equal(t, "training", fields[2])
	assert.Equal(t, "2", fields[3])

	out, err = run(t, "interview", "show", fields[0], "--dsn", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, `"last_question": "Tell me about yourself."`)
	assert.Contains(t, out, `"audioUrl": "/static/audio/reply_1.mp3"`)

	_, err = run(t, "interview", "show", "missing", "--dsn", dsn)
	require.Error(t, err)

	out, err = run(t, "interview", "list", "nobody", "--dsn", dsn)
	require.NoError(t, err)
	assert.Equal(t, "ID", strings.Fields(out)[0])
}

func TestArgsValidation(t *testing.T) {
	_, err := run(t, "user", "create")
	require.Error(t, err)

	_, err = run(t, "interview", "show")
	require.Error(t, err)
}
