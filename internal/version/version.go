// Package version parses and compares the two version formats that appear in
// cookbook pins: plain semantic versions ("v1.2.3", "0.13", "1") and
// Polkadot stable release tags ("polkadot-stable2512-1").
//
// Both formats parse into a single tagged Version value; comparison is
// defined per format. Comparing a semver against a stable tag is an error —
// a key that changes format upstream needs a human, not an auto-bump.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// stablePrefix marks the Polkadot SDK release tag format.
const stablePrefix = "polkadot-stable"

// Format discriminates the two version shapes.
type Format int

const (
	Semver Format = iota
	StableTag
)

// ErrIncomparable is returned by Compare when the two versions do not share
// a format.
var ErrIncomparable = errors.New("version: formats differ")

// Version is a parsed version value.
//
// For Semver, Parts holds the numeric components in order (missing trailing
// components are simply absent and compare as zero). For StableTag, YYMM is
// the release series and Patch the patch number (0 when the tag carries no
// "-N" suffix).
type Version struct {
	Format Format
	Parts  []int // Semver only
	YYMM   int   // StableTag only
	Patch  int   // StableTag only

	raw string
}

// String returns the original input string.
func (v Version) String() string { return v.raw }

// Parse parses s into a Version. A single leading "v" is stripped from
// semantic versions. Returns an error for empty or malformed input.
func Parse(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("version: empty string")
	}
	if strings.HasPrefix(s, stablePrefix) {
		return parseStable(s)
	}
	return parseSemver(s)
}

// parseStable parses "polkadot-stable<YYMM>[-<PATCH>]".
func parseStable(s string) (Version, error) {
	rest := strings.TrimPrefix(s, stablePrefix)
	series := rest
	patch := 0
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		series = rest[:i]
		p, err := strconv.Atoi(rest[i+1:])
		if err != nil || p < 0 {
			return Version{}, fmt.Errorf("version: bad stable tag patch in %q", s)
		}
		patch = p
	}
	yymm, err := strconv.Atoi(series)
	if err != nil || yymm < 0 {
		return Version{}, fmt.Errorf("version: bad stable tag series in %q", s)
	}
	return Version{Format: StableTag, YYMM: yymm, Patch: patch, raw: s}, nil
}

// parseSemver parses "[v]MAJOR[.MINOR[.PATCH[...]]]".
func parseSemver(s string) (Version, error) {
	trimmed := strings.TrimPrefix(s, "v")
	if trimmed == "" {
		return Version{}, fmt.Errorf("version: bare %q", s)
	}
	fields := strings.Split(trimmed, ".")
	parts := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("version: bad component %q in %q", f, s)
		}
		parts[i] = n
	}
	return Version{Format: Semver, Parts: parts, raw: s}, nil
}

// Compare returns -1, 0, or 1 as a sorts before, equal to, or after b.
// Missing trailing semver components compare as zero, so "1.2" == "1.2.0".
// Returns ErrIncomparable when the formats differ.
func Compare(a, b Version) (int, error) {
	if a.Format != b.Format {
		return 0, ErrIncomparable
	}
	if a.Format == StableTag {
		if c := cmpInt(a.YYMM, b.YYMM); c != 0 {
			return c, nil
		}
		return cmpInt(a.Patch, b.Patch), nil
	}
	n := len(a.Parts)
	if len(b.Parts) > n {
		n = len(b.Parts)
	}
	for i := 0; i < n; i++ {
		if c := cmpInt(part(a.Parts, i), part(b.Parts, i)); c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// IsNewer reports whether upstream is strictly newer than local. Equal
// versions, a local version ahead of upstream, and incomparable formats all
// report false: the sync engine only ever moves forward, never downgrades.
func IsNewer(local, upstream string) (bool, error) {
	lv, err := Parse(local)
	if err != nil {
		return false, err
	}
	uv, err := Parse(upstream)
	if err != nil {
		return false, err
	}
	c, err := Compare(lv, uv)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

func part(parts []int, i int) int {
	if i < len(parts) {
		return parts[i]
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
