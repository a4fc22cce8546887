// Package registry discovers tracked documents: markdown guides whose
// frontmatter points at an upstream source file and records the commit the
// guide was last verified against.
package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"docdrift/internal/frontmatter"
)

// Document is one tracked guide.
type Document struct {
	// Path is the location of the markdown file, relative to the scan root.
	Path string
	// Title from the frontmatter; falls back to Path when absent.
	Title string
	// SourceGithub is the upstream blob URL the guide documents.
	SourceGithub string
	// DocsCommit is the upstream commit the guide was last verified against.
	// Mutated only by a maintainer (the accept command), never by the checker.
	DocsCommit string
	// TestPath optionally names the harness that verifies the guide.
	TestPath string
}

// Skip records a markdown file that declares a source but cannot be checked.
type Skip struct {
	Path   string
	Reason string
}

// ScanResult holds the outcome of walking a docs tree.
type ScanResult struct {
	Docs    []Document
	Skipped []Skip
}

// Scan walks root for tracked documents. Markdown files without frontmatter
// or without a source_github field are not tracked and are passed over
// silently; files that declare a source but lack a docs_commit are reported
// in Skipped so the caller can log them.
func Scan(root string) (ScanResult, error) {
	var result ScanResult
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		meta, _, err := frontmatter.Decode(data)
		if err != nil {
			// No (or malformed) frontmatter: not a tracked document.
			return nil
		}
		if meta.SourceGithub == "" {
			return nil
		}
		if meta.DocsCommit == "" {
			result.Skipped = append(result.Skipped, Skip{Path: rel, Reason: "missing docs_commit"})
			return nil
		}
		title := meta.Title
		if title == "" {
			title = rel
		}
		result.Docs = append(result.Docs, Document{
			Path:         rel,
			Title:        title,
			SourceGithub: meta.SourceGithub,
			DocsCommit:   meta.DocsCommit,
			TestPath:     meta.TestPath,
		})
		return nil
	})
	if err != nil {
		return ScanResult{}, fmt.Errorf("scan %s: %w", root, err)
	}
	return result, nil
}

// SourceRef is the decomposed upstream location of a tracked document.
type SourceRef struct {
	Owner  string
	Repo   string
	Branch string
	Path   string
}

// ParseSourceURL splits a GitHub blob URL
// (https://github.com/<owner>/<repo>/blob/<branch>/<path>) into its parts.
func ParseSourceURL(url string) (SourceRef, error) {
	const host = "https://github.com/"
	if !strings.HasPrefix(url, host) {
		return SourceRef{}, fmt.Errorf("source_github %q: not a github.com URL", url)
	}
	parts := strings.SplitN(strings.TrimPrefix(url, host), "/", 5)
	if len(parts) < 5 || parts[2] != "blob" {
		return SourceRef{}, fmt.Errorf("source_github %q: want .../<repo>/blob/<branch>/<path>", url)
	}
	return SourceRef{
		Owner:  parts[0],
		Repo:   parts[1],
		Branch: parts[3],
		Path:   parts[4],
	}, nil
}

// UpdateCommit rewrites the docs_commit field of the guide at path (relative
// to root), preserving the rest of the file byte-for-byte.
func UpdateCommit(root, relPath, sha string) error {
	path := filepath.Join(root, filepath.FromSlash(relPath))
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	out, err := frontmatter.SetCommit(data, sha)
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
