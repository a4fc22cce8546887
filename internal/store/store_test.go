package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const globalFile = `# Toolchain pins for the cookbook.
versions:
  rust: "1.86" # MSRV, bump carefully
  polkadot_omni_node: v0.5.0
  chain_spec_builder: "10.0.0"
  polkadot_sdk: polkadot-stable2512-1
`

const recipeFile = `rust: "1.90"
zombienet: v1.3.128
`

func TestParse(t *testing.T) {
	t.Run("global layout", func(t *testing.T) {
		f, err := Parse([]byte(globalFile), "versions.yml")
		require.NoError(t, err)

		v, ok := f.Get("rust")
		assert.True(t, ok)
		assert.Equal(t, "1.86", v)

		_, ok = f.Get("no_such_key")
		assert.False(t, ok)
	})

	t.Run("flat recipe layout", func(t *testing.T) {
		f, err := Parse([]byte(recipeFile), "recipes/frontier/versions.yml")
		require.NoError(t, err)

		v, ok := f.Get("zombienet")
		assert.True(t, ok)
		assert.Equal(t, "v1.3.128", v)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := Parse([]byte("versions: [unclosed"), "bad.yml")
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "bad.yml", perr.Path)
	})

	t.Run("non-mapping document", func(t *testing.T) {
		_, err := Parse([]byte("- a\n- b\n"), "list.yml")
		var perr *ParseError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestLookup(t *testing.T) {
	doc := `dependencies:
  repositories:
    polkadot_sdk:
      version: polkadot-stable2512-1
  crates:
    frame_omni_bencher:
      version: "0.13.0"
    empty_pin:
      version: ""
    unpinned:
      version: null
`
	f, err := Parse([]byte(doc), "variables.yml")
	require.NoError(t, err)

	t.Run("nested scalar", func(t *testing.T) {
		v, ok, err := f.Lookup("dependencies.repositories.polkadot_sdk.version")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "polkadot-stable2512-1", v)
	})

	t.Run("missing path is absent, not an error", func(t *testing.T) {
		_, ok, err := f.Lookup("dependencies.crates.nonexistent.version")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("present empty string is distinct from absent", func(t *testing.T) {
		v, ok, err := f.Lookup("dependencies.crates.empty_pin.version")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("explicit null reads as absent", func(t *testing.T) {
		_, ok, err := f.Lookup("dependencies.crates.unpinned.version")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-scalar leaf is a parse error", func(t *testing.T) {
		_, _, err := f.Lookup("dependencies.crates")
		var perr *ParseError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestSetPreservesFormatting(t *testing.T) {
	f, err := Parse([]byte(globalFile), "versions.yml")
	require.NoError(t, err)

	f.Set("polkadot_omni_node", "v0.6.0")
	out, err := f.Marshal()
	require.NoError(t, err)

	// Comments and untouched pins survive the round trip.
	assert.Contains(t, string(out), "# Toolchain pins for the cookbook.")
	assert.Contains(t, string(out), "# MSRV, bump carefully")
	assert.Contains(t, string(out), "polkadot_omni_node: v0.6.0")
	assert.Contains(t, string(out), `chain_spec_builder: "10.0.0"`)
}

func TestSetAppendsUnknownKey(t *testing.T) {
	f, err := Parse([]byte(recipeFile), "versions.yml")
	require.NoError(t, err)

	f.Set("chopsticks", "1.2.3")
	v, ok := f.Get("chopsticks")
	assert.True(t, ok)
	assert.Equal(t, "1.2.3", v)

	// Existing keys are never removed by Set.
	tab, err := f.Table()
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "zombienet", "chopsticks"}, tab.Keys())
}

func TestSaveAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "versions.yml")
	require.NoError(t, os.WriteFile(path, []byte(globalFile), 0o644))

	f, err := Load(path)
	require.NoError(t, err)
	f.Set("rust", "1.90")
	require.NoError(t, f.Save())

	// No temp droppings left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	re, err := Load(path)
	require.NoError(t, err)
	v, ok := re.Get("rust")
	assert.True(t, ok)
	assert.Equal(t, "1.90", v)
}

func TestTable(t *testing.T) {
	f, err := Parse([]byte(globalFile), "versions.yml")
	require.NoError(t, err)

	tab, err := f.Table()
	require.NoError(t, err)
	assert.Equal(t, 4, tab.Len())
	assert.Equal(t, []string{"rust", "polkadot_omni_node", "chain_spec_builder", "polkadot_sdk"}, tab.Keys())

	t.Run("non-scalar value", func(t *testing.T) {
		f, err := Parse([]byte("rust:\n  - nope\n"), "bad.yml")
		require.NoError(t, err)
		_, err = f.Table()
		var perr *ParseError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestResolve(t *testing.T) {
	global := NewTable("rust", "1.86", "polkadot_omni_node", "v0.5.0")
	override := NewTable("rust", "1.90", "chopsticks", "1.2.3")

	t.Run("override wins per key, additive keys kept", func(t *testing.T) {
		r := Resolve(global, override)
		v, _ := r.Get("rust")
		assert.Equal(t, "1.90", v)
		v, _ = r.Get("polkadot_omni_node")
		assert.Equal(t, "v0.5.0", v)
		v, ok := r.Get("chopsticks")
		assert.True(t, ok)
		assert.Equal(t, "1.2.3", v)
		assert.Equal(t, []string{"rust", "polkadot_omni_node", "chopsticks"}, r.Keys())
	})

	t.Run("empty override is identity", func(t *testing.T) {
		r := Resolve(global, Table{})
		assert.Equal(t, global.Keys(), r.Keys())
		v, _ := r.Get("rust")
		assert.Equal(t, "1.86", v)
	})

	t.Run("idempotent and pure", func(t *testing.T) {
		first := Resolve(global, override)
		second := Resolve(global, override)
		assert.Equal(t, first.Keys(), second.Keys())
		for _, k := range first.Keys() {
			fv, _ := first.Get(k)
			sv, _ := second.Get(k)
			assert.Equal(t, fv, sv)
		}
		// Inputs untouched.
		v, _ := global.Get("rust")
		assert.Equal(t, "1.86", v)
	})
}
