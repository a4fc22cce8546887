package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"docdrift/internal/config"
	"docdrift/internal/gh"
)

var (
	// Global flags
	rootDir string
	verbose bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "docdrift",
	Short: "Keep cookbook version pins and tracked guides in sync with upstream",
	Long: `docdrift is the maintenance tool for a documentation cookbook.

It syncs the cookbook's pinned tool versions against the upstream docs
repository's variables file, detects drift between tracked guides and the
upstream files they document, and resolves per-recipe version overrides.

Every command is a single-shot batch run meant to be driven from CI; results
are written to $GITHUB_OUTPUT when it is set.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "C", ".", "cookbook root directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(driftCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(acceptCmd)
	rootCmd.AddCommand(docsCmd)
}

// loadConfig loads .docdrift.yaml from the cookbook root plus the
// environment overlay.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newClient builds the GitHub client from config.
func newClient(cfg *config.Config) *gh.Client {
	return gh.New(cfg.Env.GithubToken, cfg.Env.Timeout)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
