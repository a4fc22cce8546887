package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docdrift/internal/ciout"
	"docdrift/internal/drift"
	"docdrift/internal/registry"
)

// driftCmd checks tracked guides against upstream.
var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Report tracked guides whose upstream source has moved",
	Long: `Scans the docs tree for tracked guides and queries upstream for the
latest commit touching each guide's source file. A guide whose recorded
docs_commit differs from upstream is drifted.

The check is advisory: nothing is rewritten, and a failed upstream lookup
counts as unknown rather than drifted. Exit status is 0 either way; CI reads
the has_drift, drift_count, and drift_details step outputs.`,
	RunE: runDrift,
}

func runDrift(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scan, err := registry.Scan(filepath.Join(rootDir, cfg.DocsDir))
	if err != nil {
		return err
	}

	checker := &drift.Checker{Source: newClient(cfg), Log: logger}
	report := checker.Run(cmd.Context(), scan)

	out, err := ciout.FromEnv()
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.SetBool("has_drift", report.HasDrift); err != nil {
		return err
	}
	if err := out.SetInt("drift_count", report.Count); err != nil {
		return err
	}
	if err := out.Set("drift_details", report.Details()); err != nil {
		return err
	}

	if !report.HasDrift {
		fmt.Printf("no drift across %d tracked guide(s)", len(scan.Docs))
		if report.Unknown > 0 {
			fmt.Printf(" (%d could not be checked)", report.Unknown)
		}
		fmt.Println()
		return nil
	}
	fmt.Printf("%d guide(s) drifted:\n%s", report.Count, report.Details())
	return nil
}
