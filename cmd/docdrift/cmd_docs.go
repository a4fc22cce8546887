package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"docdrift/internal/registry"
)

// docsCmd lists tracked documents.
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List tracked guides and their recorded upstream commits",
	RunE:  runDocs,
}

func runDocs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scan, err := registry.Scan(filepath.Join(rootDir, cfg.DocsDir))
	if err != nil {
		return err
	}
	if len(scan.Docs) == 0 && len(scan.Skipped) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no tracked guides found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, d := range scan.Docs {
		commit := d.DocsCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", d.Path, commit, d.Title)
	}
	for _, s := range scan.Skipped {
		fmt.Fprintf(w, "%s\t-\tSKIP: %s\n", s.Path, s.Reason)
	}
	return w.Flush()
}
