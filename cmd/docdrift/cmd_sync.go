package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docdrift/internal/ciout"
	"docdrift/internal/store"
	"docdrift/internal/syncer"
)

var (
	syncDryRun      bool
	syncInteractive bool
)

// syncCmd updates local version pins from the upstream variables file.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Update version pins from the upstream variables file",
	Long: `Fetches the upstream docs repository's variables file and bumps every
tracked key whose local pin is strictly behind upstream. Pins that are equal,
ahead (local hotfix), or in a different format are left untouched — sync
never downgrades.

Writes has_updates and changelog step outputs when $GITHUB_OUTPUT is set.

Example:
  docdrift sync --dry-run
  docdrift sync --interactive`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "report updates without writing the versions file")
	syncCmd.Flags().BoolVarP(&syncInteractive, "interactive", "i", false, "confirm each bump before applying it")
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Keys) == 0 {
		return fmt.Errorf("no tracked keys configured in %s", filepath.Join(rootDir, ".docdrift.yaml"))
	}

	local, err := store.Load(filepath.Join(rootDir, cfg.VersionsFile))
	if err != nil {
		return err
	}

	keys := make([]syncer.KeyMap, len(cfg.Keys))
	for i, k := range cfg.Keys {
		keys[i] = syncer.KeyMap{Key: k.Key, UpstreamPath: k.UpstreamPath}
	}

	s := &syncer.Syncer{
		Source: newClient(cfg),
		Log:    logger,
	}
	if syncInteractive {
		s.Confirm = confirmChange
	}

	report, err := s.Run(cmd.Context(), syncer.UpstreamRef{
		Owner:         cfg.Upstream.Owner,
		Repo:          cfg.Upstream.Repo,
		Branch:        cfg.Upstream.Branch,
		VariablesPath: cfg.Upstream.VariablesPath,
	}, keys, local)
	if err != nil {
		return err
	}

	if report.HasUpdates && !syncDryRun {
		if err := local.Save(); err != nil {
			return err
		}
	}

	out, err := ciout.FromEnv()
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.SetBool("has_updates", report.HasUpdates); err != nil {
		return err
	}
	if err := out.Set("changelog", report.Changelog()); err != nil {
		return err
	}

	if !report.HasUpdates {
		fmt.Println("all pins up to date")
		return nil
	}
	for _, c := range report.Changes {
		fmt.Printf("%s: %s → %s\n", c.Key, c.From, c.To)
	}
	if syncDryRun {
		fmt.Println("(dry run: versions file not written)")
	}
	return nil
}
