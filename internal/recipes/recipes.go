// Package recipes discovers recipe directories: self-contained tutorial
// folders that may carry their own dependency-version override file.
package recipes

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"docdrift/internal/store"
)

// overrideNames are the accepted spellings of a recipe override file.
var overrideNames = []string{"versions.yml", "versions.yaml"}

// Recipe is a discovered recipe directory.
type Recipe struct {
	// Name is the directory path relative to the discovery root.
	Name string
	// OverridePath is the absolute path of the recipe's override file.
	OverridePath string
}

// Discover walks root and returns every directory that carries an override
// file, in walk order. The root directory itself is excluded — its pin file
// is the global table, not an override.
func Discover(root string) ([]Recipe, error) {
	var found []Recipe
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() || path == root {
			return nil
		}
		for _, name := range overrideNames {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				rel, err := filepath.Rel(root, path)
				if err != nil {
					return err
				}
				found = append(found, Recipe{
					Name:         filepath.ToSlash(rel),
					OverridePath: candidate,
				})
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover recipes under %s: %w", root, err)
	}
	return found, nil
}

// Find returns the recipe named name under root. A directory without an
// override file is still a valid recipe target; its override table is empty.
func Find(root, name string) (Recipe, error) {
	dir := filepath.Join(root, filepath.FromSlash(name))
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Recipe{}, fmt.Errorf("recipe %q not found under %s", name, root)
	}
	r := Recipe{Name: name}
	for _, n := range overrideNames {
		candidate := filepath.Join(dir, n)
		if _, err := os.Stat(candidate); err == nil {
			r.OverridePath = candidate
			break
		}
	}
	return r, nil
}

// Override loads the recipe's override table. A recipe without an override
// file yields an empty table.
func (r Recipe) Override() (store.Table, error) {
	if r.OverridePath == "" {
		return store.Table{}, nil
	}
	f, err := store.Load(r.OverridePath)
	if err != nil {
		return store.Table{}, err
	}
	return f.Table()
}

// Resolved merges the global table with this recipe's override table,
// override winning per key.
func (r Recipe) Resolved(global store.Table) (store.Table, error) {
	override, err := r.Override()
	if err != nil {
		return store.Table{}, err
	}
	return store.Resolve(global, override), nil
}
