// Package syncer bumps the cookbook's pinned tool versions from the upstream
// variables file (the docs repo's source of truth).
//
// The engine only ever moves pins forward. A local pin that is equal to,
// ahead of, or incomparable with upstream is left untouched; keys are never
// deleted. Failure to fetch or parse the upstream file is fatal for the run;
// everything else degrades to a per-key skip.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docdrift/internal/store"
	"docdrift/internal/version"
)

// FileSource fetches raw file contents from the upstream host. Satisfied by
// *gh.Client.
type FileSource interface {
	RawFile(ctx context.Context, owner, repo, branch, path string) ([]byte, error)
}

// UpstreamRef locates the upstream variables file.
type UpstreamRef struct {
	Owner         string
	Repo          string
	Branch        string
	VariablesPath string
}

// KeyMap binds a local VersionKey to its dotted path inside the upstream
// variables document.
type KeyMap struct {
	Key          string
	UpstreamPath string
}

// Change is one applied version bump.
type Change struct {
	Key  string
	From string
	To   string
}

// Report summarizes a sync run.
type Report struct {
	HasUpdates bool
	Changes    []Change
}

// Syncer drives a sync run.
type Syncer struct {
	Source FileSource
	Log    *zap.Logger
	// Confirm, when set, is asked before each bump is applied; returning
	// false leaves the pin untouched. Nil applies every bump.
	Confirm func(Change) bool
}

// Run fetches the upstream variables file and walks the configured keys in
// order, updating local in place for every pin that is strictly behind
// upstream. The caller owns persisting local (Save) afterwards.
func (s *Syncer) Run(ctx context.Context, up UpstreamRef, keys []KeyMap, local *store.File) (Report, error) {
	raw, err := s.Source.RawFile(ctx, up.Owner, up.Repo, up.Branch, up.VariablesPath)
	if err != nil {
		return Report{}, fmt.Errorf("fetch upstream variables %s: %w", up.VariablesPath, err)
	}
	upstream, err := store.Parse(raw, up.VariablesPath)
	if err != nil {
		return Report{}, fmt.Errorf("parse upstream variables: %w", err)
	}

	var report Report
	for _, km := range keys {
		current, ok := local.Get(km.Key)
		if !ok {
			s.Log.Warn("SKIP: key not pinned locally", zap.String("key", km.Key))
			continue
		}
		latest, ok, err := upstream.Lookup(km.UpstreamPath)
		if err != nil {
			s.Log.Warn("SKIP: bad upstream value",
				zap.String("key", km.Key),
				zap.String("path", km.UpstreamPath),
				zap.Error(err))
			continue
		}
		if !ok || latest == "" {
			s.Log.Warn("SKIP: upstream path absent",
				zap.String("key", km.Key),
				zap.String("path", km.UpstreamPath))
			continue
		}

		newer, err := version.IsNewer(current, latest)
		if err != nil {
			if errors.Is(err, version.ErrIncomparable) {
				s.Log.Warn("SKIP: version formats differ",
					zap.String("key", km.Key),
					zap.String("local", current),
					zap.String("upstream", latest))
			} else {
				s.Log.Warn("SKIP: unparseable version",
					zap.String("key", km.Key),
					zap.Error(err))
			}
			continue
		}
		if !newer {
			// Equal, or local ahead (hotfix): leave it alone.
			s.Log.Debug("no change", zap.String("key", km.Key), zap.String("version", current))
			continue
		}

		change := Change{Key: km.Key, From: current, To: latest}
		if s.Confirm != nil && !s.Confirm(change) {
			s.Log.Info("bump declined", zap.String("key", km.Key))
			continue
		}
		local.Set(km.Key, latest)
		report.Changes = append(report.Changes, change)
		report.HasUpdates = true
		s.Log.Info("updated pin",
			zap.String("key", km.Key),
			zap.String("from", current),
			zap.String("to", latest))
	}
	return report, nil
}

// Changelog renders the applied changes as a markdown list for PR bodies and
// the CI changelog output.
func (r Report) Changelog() string {
	if !r.HasUpdates {
		return ""
	}
	var b strings.Builder
	b.WriteString("## Version updates\n\n")
	for _, c := range r.Changes {
		fmt.Fprintf(&b, "- `%s`: %s → %s\n", c.Key, c.From, c.To)
	}
	return b.String()
}
