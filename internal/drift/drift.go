// Package drift compares each tracked document's recorded upstream commit
// against the latest upstream commit touching its source file.
//
// The checker is advisory and read-only: it never rewrites a docs_commit.
// A lookup that fails is Unknown, not Changed — transient network trouble
// must not manufacture drift reports.
package drift

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"docdrift/internal/registry"
)

// Status is the per-document verdict.
type Status int

const (
	UpToDate Status = iota
	Changed
	Unknown
)

func (s Status) String() string {
	switch s {
	case UpToDate:
		return "up-to-date"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// CommitSource provides the latest upstream commit for a file. Satisfied by
// *gh.Client.
type CommitSource interface {
	LatestCommit(ctx context.Context, owner, repo, path, branch string) (string, error)
}

// Result is the verdict for one document.
type Result struct {
	Doc    registry.Document
	Status Status
	// Latest is the upstream commit sha when Status is Changed.
	Latest string
}

// Entry is one changed document in the aggregate report.
type Entry struct {
	Title      string
	OldCommit  string
	NewCommit  string
	TestPath   string
	DocPath    string
	CompareURL string
}

// Report aggregates a full run. This is the sole surface handed to CI.
type Report struct {
	HasDrift bool
	Count    int
	Entries  []Entry
	// Unknown counts documents whose upstream state could not be determined.
	Unknown int
}

// Checker runs drift detection over tracked documents.
type Checker struct {
	Source CommitSource
	Log    *zap.Logger
}

// CheckDocument resolves the upstream location of doc and compares commits.
// Commit hashes are opaque: plain string equality, no version semantics.
func (c *Checker) CheckDocument(ctx context.Context, doc registry.Document) Result {
	ref, err := registry.ParseSourceURL(doc.SourceGithub)
	if err != nil {
		c.Log.Warn("unparseable source URL",
			zap.String("doc", doc.Path),
			zap.Error(err))
		return Result{Doc: doc, Status: Unknown}
	}

	latest, err := c.Source.LatestCommit(ctx, ref.Owner, ref.Repo, ref.Path, ref.Branch)
	if err != nil {
		c.Log.Warn("upstream commit lookup failed",
			zap.String("doc", doc.Path),
			zap.String("source", ref.Path),
			zap.Error(err))
		return Result{Doc: doc, Status: Unknown}
	}

	if latest == doc.DocsCommit {
		return Result{Doc: doc, Status: UpToDate}
	}
	return Result{Doc: doc, Status: Changed, Latest: latest}
}

// Run checks every tracked document in sequence and aggregates the verdicts.
// Skipped documents from the scan are logged and excluded from comparison;
// Unknown documents never contribute to HasDrift.
func (c *Checker) Run(ctx context.Context, scan registry.ScanResult) Report {
	for _, s := range scan.Skipped {
		c.Log.Warn("SKIP", zap.String("doc", s.Path), zap.String("reason", s.Reason))
	}

	var report Report
	for _, doc := range scan.Docs {
		res := c.CheckDocument(ctx, doc)
		switch res.Status {
		case Changed:
			report.HasDrift = true
			report.Count++
			report.Entries = append(report.Entries, newEntry(doc, res.Latest))
			c.Log.Info("drift detected",
				zap.String("doc", doc.Path),
				zap.String("old", doc.DocsCommit),
				zap.String("new", res.Latest))
		case Unknown:
			report.Unknown++
		default:
			c.Log.Debug("up to date", zap.String("doc", doc.Path))
		}
	}
	return report
}

func newEntry(doc registry.Document, latest string) Entry {
	e := Entry{
		Title:     doc.Title,
		OldCommit: doc.DocsCommit,
		NewCommit: latest,
		TestPath:  doc.TestPath,
		DocPath:   doc.Path,
	}
	if ref, err := registry.ParseSourceURL(doc.SourceGithub); err == nil {
		e.CompareURL = fmt.Sprintf("https://github.com/%s/%s/compare/%s...%s",
			ref.Owner, ref.Repo, doc.DocsCommit, latest)
	}
	return e
}

// Details renders the changed documents as a markdown list for the CI
// drift_details output.
func (r Report) Details() string {
	var b strings.Builder
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "- **%s** (`%s`): `%s` → `%s`", e.Title, e.DocPath, short(e.OldCommit), short(e.NewCommit))
		if e.TestPath != "" {
			fmt.Fprintf(&b, " — test: `%s`", e.TestPath)
		}
		if e.CompareURL != "" {
			fmt.Fprintf(&b, " ([diff](%s))", e.CompareURL)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// short truncates a commit hash for display.
func short(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
