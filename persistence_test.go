package modeldesk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modeldesk/pkg/errors"
	"github.com/agentstation/modeldesk/pkg/logging"
)

func TestSession_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")

	w := imported(t)
	require.NoError(t, w.SetField("llama3-coder", "params.temperature", 0.9))
	require.NoError(t, w.Delete("writer"))
	require.NoError(t, w.SaveSession(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	resumed, err := Open(path, WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, []string{"llama3-coder"}, resumed.Keys())
	assert.Equal(t, 2, resumed.HistoryLen())

	want, err := w.Export()
	require.NoError(t, err)
	got, err := resumed.Export()
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))

	// Undo works across the save and reaches the raw copy of the deleted record.
	require.NoError(t, resumed.Undo())
	require.NoError(t, resumed.Undo())
	got, err = resumed.Export()
	require.NoError(t, err)
	assert.JSONEq(t, fixture, string(got))
}

func TestOpen_MissingSession(t *testing.T) {
	w, err := Open(filepath.Join(t.TempDir(), "none.json"), WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	assert.Equal(t, 0, w.Len())
}

func TestLoadSession_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		w := newWorkspace(t)
		err := w.LoadSession(filepath.Join(dir, "missing.json"))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("corrupt", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 1, "entries": [`), 0o600))

		w := imported(t)
		err := w.LoadSession(path)
		assert.True(t, errors.IsParseError(err))
		assert.Equal(t, 2, w.Len())
	})

	t.Run("version", func(t *testing.T) {
		path := filepath.Join(dir, "future.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "entries": []}`), 0o600))

		w := newWorkspace(t)
		err := w.LoadSession(path)
		var cfgErr *errors.ConfigError
		assert.True(t, errors.As(err, &cfgErr))
	})
}
