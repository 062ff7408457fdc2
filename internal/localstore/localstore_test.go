package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/modeldesk/pkg/errors"
)

func TestStore_SetGetRemove(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nested", "store.json"))

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("b", `{"tags":[]}`))
	require.NoError(t, s.Set("a", "1"))

	v, ok, err := s.Get("b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"tags":[]}`, v)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Remove("a"))
	require.NoError(t, s.Remove("a"))
	keys, err = s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, Open(path).Set("k", "v"))

	v, ok, err := Open(path).Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, _, err := Open(path).Get("k")
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
}

func TestStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	keys, err := Open(path).Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}
