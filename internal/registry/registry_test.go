package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tutorials/relay.md", `---
title: Spawn a relay chain
source_github: https://github.com/polkadot-developers/polkadot-docs/blob/master/tutorials/relay.md
docs_commit: abc123
test_path: tests/relay.test.ts
---
body
`)
	writeFile(t, root, "tutorials/untracked.md", "# Just a note\n\nNo frontmatter here.\n")
	writeFile(t, root, "tutorials/no-source.md", "---\ntitle: local only\n---\nbody\n")
	writeFile(t, root, "tutorials/no-commit.md", `---
title: Fresh guide
source_github: https://github.com/polkadot-developers/polkadot-docs/blob/master/tutorials/fresh.md
---
body
`)
	writeFile(t, root, "README.txt", "not markdown")

	res, err := Scan(root)
	require.NoError(t, err)

	require.Len(t, res.Docs, 1)
	doc := res.Docs[0]
	assert.Equal(t, "tutorials/relay.md", doc.Path)
	assert.Equal(t, "Spawn a relay chain", doc.Title)
	assert.Equal(t, "abc123", doc.DocsCommit)
	assert.Equal(t, "tests/relay.test.ts", doc.TestPath)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "tutorials/no-commit.md", res.Skipped[0].Path)
	assert.Equal(t, "missing docs_commit", res.Skipped[0].Reason)
}

func TestParseSourceURL(t *testing.T) {
	t.Run("blob url", func(t *testing.T) {
		ref, err := ParseSourceURL("https://github.com/polkadot-developers/polkadot-docs/blob/master/tutorials/deep/relay.md")
		require.NoError(t, err)
		assert.Equal(t, "polkadot-developers", ref.Owner)
		assert.Equal(t, "polkadot-docs", ref.Repo)
		assert.Equal(t, "master", ref.Branch)
		assert.Equal(t, "tutorials/deep/relay.md", ref.Path)
	})

	t.Run("rejects non-github and non-blob urls", func(t *testing.T) {
		for _, url := range []string{
			"https://gitlab.com/o/r/blob/master/f.md",
			"https://github.com/o/r/tree/master/f.md",
			"https://github.com/o/r",
		} {
			_, err := ParseSourceURL(url)
			assert.Error(t, err, url)
		}
	})
}

func TestUpdateCommit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "guide.md", `---
title: G
source_github: https://github.com/o/r/blob/master/g.md
docs_commit: abc123
---
# G
`)

	require.NoError(t, UpdateCommit(root, "guide.md", "def456"))

	res, err := Scan(root)
	require.NoError(t, err)
	require.Len(t, res.Docs, 1)
	assert.Equal(t, "def456", res.Docs[0].DocsCommit)
}
