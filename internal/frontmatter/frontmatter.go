// Package frontmatter reads and rewrites the YAML frontmatter block that
// tracked guides carry between --- delimiters at the top of the file.
package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Meta is the tracked-document metadata a guide declares in its frontmatter.
// Fields not listed here are preserved on rewrite but otherwise ignored.
type Meta struct {
	Title        string `yaml:"title"`
	SourceGithub string `yaml:"source_github"`
	DocsCommit   string `yaml:"docs_commit"`
	TestPath     string `yaml:"test_path"`
}

// Parse splits a markdown document into its frontmatter (raw YAML bytes) and
// body. The document must begin with "---\n"; the closing "---" line ends the
// frontmatter block. Returns an error if either delimiter is absent.
func Parse(data []byte) (frontmatter []byte, body []byte, err error) {
	const delim = "---\n"
	if !bytes.HasPrefix(data, []byte(delim)) {
		return nil, nil, fmt.Errorf("frontmatter: missing opening --- delimiter")
	}
	rest := data[len(delim):]
	idx := bytes.Index(rest, []byte("\n---"))
	if idx < 0 {
		return nil, nil, fmt.Errorf("frontmatter: missing closing --- delimiter")
	}
	fm := rest[:idx]
	// Skip past closing delimiter and optional newline.
	tail := rest[idx+4:]
	if len(tail) > 0 && tail[0] == '\n' {
		tail = tail[1:]
	}
	return fm, tail, nil
}

// Decode parses the document's frontmatter into Meta and returns the body.
func Decode(data []byte) (Meta, []byte, error) {
	fm, body, err := Parse(data)
	if err != nil {
		return Meta{}, nil, err
	}
	var m Meta
	if err := yaml.Unmarshal(fm, &m); err != nil {
		return Meta{}, nil, fmt.Errorf("frontmatter: unmarshal: %w", err)
	}
	return m, body, nil
}

// SetCommit returns a copy of the document with the docs_commit field set to
// sha. Every other byte of the document — body, delimiters, unrelated
// frontmatter lines — is preserved as-is; only the docs_commit line is
// rewritten, or appended to the block when missing.
func SetCommit(data []byte, sha string) ([]byte, error) {
	fm, _, err := Parse(data)
	if err != nil {
		return nil, err
	}

	newLine := []byte("docs_commit: " + sha)
	lines := bytes.Split(fm, []byte("\n"))
	replaced := false
	for i, line := range lines {
		if bytes.HasPrefix(line, []byte("docs_commit:")) {
			lines[i] = newLine
			replaced = true
			break
		}
	}
	if !replaced {
		lines = append(lines, newLine)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.Join(lines, []byte("\n")))
	// Reattach everything from the closing delimiter on, untouched.
	rest := data[len("---\n"):]
	idx := bytes.Index(rest, []byte("\n---"))
	buf.Write(rest[idx:])
	return buf.Bytes(), nil
}
