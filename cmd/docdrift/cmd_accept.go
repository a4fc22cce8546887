package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"docdrift/internal/frontmatter"
	"docdrift/internal/registry"
)

// acceptCmd records the current upstream commit for one guide.
var acceptCmd = &cobra.Command{
	Use:   "accept <guide.md>",
	Short: "Record the latest upstream commit for a verified guide",
	Long: `After manually re-verifying a guide against upstream, accept updates its
docs_commit frontmatter field to the latest upstream commit touching the
guide's source file. This is the only way docdrift ever writes a
docs_commit; the drift checker itself is read-only.

The path is relative to the cookbook root.

Example:
  docdrift accept docs/tutorials/relay.md`,
	Args: cobra.ExactArgs(1),
	RunE: runAccept,
}

func runAccept(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rel := args[0]

	data, err := os.ReadFile(filepath.Join(rootDir, filepath.FromSlash(rel)))
	if err != nil {
		return fmt.Errorf("read guide: %w", err)
	}
	meta, _, err := frontmatter.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	if meta.SourceGithub == "" {
		return fmt.Errorf("%s has no source_github field; nothing to accept", rel)
	}
	ref, err := registry.ParseSourceURL(meta.SourceGithub)
	if err != nil {
		return err
	}

	latest, err := newClient(cfg).LatestCommit(cmd.Context(), ref.Owner, ref.Repo, ref.Path, ref.Branch)
	if err != nil {
		return fmt.Errorf("lookup upstream commit: %w", err)
	}

	if latest == meta.DocsCommit {
		fmt.Printf("%s already records %s\n", rel, latest)
		return nil
	}
	if err := registry.UpdateCommit(rootDir, rel, latest); err != nil {
		return err
	}
	fmt.Printf("%s: %s → %s\n", rel, meta.DocsCommit, latest)
	return nil
}
