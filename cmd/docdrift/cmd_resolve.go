package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"docdrift/internal/recipes"
	"docdrift/internal/store"
)

var resolveRecipe string

// resolveCmd prints resolved version pins.
var resolveCmd = &cobra.Command{
	Use:   "resolve [key]",
	Short: "Resolve a version pin, honoring recipe overrides",
	Long: `Resolves version pins from the global versions file, with a recipe's
override file winning per key when --recipe is given.

With a key argument, prints the single resolved value; a key absent from
both tables is an error, never silently defaulted. Without arguments, prints
the whole resolved table.

Example:
  docdrift resolve rust
  docdrift resolve rust --recipe frontier-evm
  docdrift resolve --recipe frontier-evm`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveRecipe, "recipe", "", "recipe directory (relative to the recipes dir) whose overrides apply")
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := store.Load(filepath.Join(rootDir, cfg.VersionsFile))
	if err != nil {
		return err
	}
	table, err := f.Table()
	if err != nil {
		return err
	}

	if resolveRecipe != "" {
		r, err := recipes.Find(filepath.Join(rootDir, cfg.RecipesDir), resolveRecipe)
		if err != nil {
			return err
		}
		table, err = r.Resolved(table)
		if err != nil {
			return err
		}
	}

	if len(args) == 1 {
		key := args[0]
		v, ok := table.Get(key)
		if !ok {
			return fmt.Errorf("version key %q not found in global or override tables", key)
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, k := range table.Keys() {
		v, _ := table.Get(k)
		fmt.Fprintf(w, "%s\t%s\n", k, v)
	}
	return w.Flush()
}
