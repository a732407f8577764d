package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerIDCreatesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "player-id")
	p := Provider{Path: path}

	id, err := p.PlayerID()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	again, err := p.PlayerID()
	require.NoError(t, err)
	assert.Equal(t, id, again, "the id must be stable across sessions")
}

func TestPlayerIDReplacesMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player-id")
	require.NoError(t, os.WriteFile(path, []byte("not-a-uuid\n"), 0o600))

	id, err := Provider{Path: path}.PlayerID()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), id)
}

func TestPlayerIDReusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "player-id")
	want := uuid.NewString()
	require.NoError(t, os.WriteFile(path, []byte(want+"\n"), 0o600))

	id, err := Provider{Path: path}.PlayerID()
	require.NoError(t, err)
	assert.Equal(t, want, id)
}
