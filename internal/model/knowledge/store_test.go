package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreTrimsExamples(t *testing.T) {
	store := NewMemoryStore([]Entry{{Intent: "a", Examples: []string{"  hi ", "", "   "}, Response: "r"}})

	entry, ok := store.FindByIntent("a")
	require.True(t, ok)
	assert.Equal(t, []string{"hi"}, entry.Examples)

	_, ok = store.FindByIntent("missing")
	assert.False(t, ok)
}

func TestLoadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"intent":"greeting","examples":["hello"],"response":"Hi!"},
		{"intent":"bare","response":"No examples"}
	]`), 0o600))

	store, err := LoadFile(path)
	require.NoError(t, err)

	items := store.List()
	require.Len(t, items, 2)
	assert.Equal(t, "greeting", items[0].Intent)
	assert.Empty(t, items[1].Examples)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- intent: pricing
  examples:
    - what are your prices
  response: It depends.
`), 0o600))

	store, err := LoadFile(path)
	require.NoError(t, err)

	entry, ok := store.FindByIntent("pricing")
	require.True(t, ok)
	assert.Equal(t, "It depends.", entry.Response)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0o600))
	_, err = LoadFile(empty)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{`), 0o600))
	_, err = LoadFile(broken)
	assert.Error(t, err)
}

func TestSeedHasExamples(t *testing.T) {
	for _, entry := range Seed() {
		assert.NotEmpty(t, entry.Intent)
		assert.NotEmpty(t, entry.Examples, entry.Intent)
		assert.NotEmpty(t, entry.Response, entry.Intent)
	}
}
