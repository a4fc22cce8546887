package recipes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdrift/internal/store"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "versions.yml", "versions:\n  rust: \"1.86\"\n")
	writeFile(t, root, "frontier-evm/versions.yml", "rust: \"1.90\"\n")
	writeFile(t, root, "nested/zombienet-basics/versions.yaml", "zombienet: v1.3.128\n")
	writeFile(t, root, "plain-guide/README.md", "# no overrides here\n")

	found, err := Discover(root)
	require.NoError(t, err)

	names := make([]string, len(found))
	for i, r := range found {
		names[i] = r.Name
	}
	// Root versions.yml is the global table, not a recipe.
	assert.ElementsMatch(t, []string{"frontier-evm", "nested/zombienet-basics"}, names)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "frontier-evm/versions.yml", "rust: \"1.90\"\n")
	writeFile(t, root, "bare/README.md", "x\n")

	t.Run("with override", func(t *testing.T) {
		r, err := Find(root, "frontier-evm")
		require.NoError(t, err)
		assert.NotEmpty(t, r.OverridePath)
	})

	t.Run("without override", func(t *testing.T) {
		r, err := Find(root, "bare")
		require.NoError(t, err)
		assert.Empty(t, r.OverridePath)

		tab, err := r.Override()
		require.NoError(t, err)
		assert.Equal(t, 0, tab.Len())
	})

	t.Run("missing recipe", func(t *testing.T) {
		_, err := Find(root, "nope")
		assert.Error(t, err)
	})
}

func TestResolved(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "frontier-evm/versions.yml", "rust: \"1.90\"\nchopsticks: \"1.2.3\"\n")

	global := store.NewTable("rust", "1.86", "polkadot_omni_node", "v0.5.0")

	r, err := Find(root, "frontier-evm")
	require.NoError(t, err)
	resolved, err := r.Resolved(global)
	require.NoError(t, err)

	v, _ := resolved.Get("rust")
	assert.Equal(t, "1.90", v, "override wins")
	v, _ = resolved.Get("polkadot_omni_node")
	assert.Equal(t, "v0.5.0", v, "global fallback")
	v, ok := resolved.Get("chopsticks")
	assert.True(t, ok, "override-only key is additive")
	assert.Equal(t, "1.2.3", v)
}
