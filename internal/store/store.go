// Package store reads, queries, and rewrites the version pin files that a
// cookbook carries: the global versions.yml (a top-level "versions:" mapping)
// and flat per-recipe override files.
//
// Files are held as yaml.v3 node trees rather than plain maps so that value
// updates preserve comments, key order, and quoting. Writes go through a
// temp file and rename; a crashed run never leaves a half-written pin file.
package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ParseError reports a version file that could not be interpreted: invalid
// YAML, a non-mapping document, or a key whose value is not a scalar.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// File is a loaded version file. The zero value is not usable; obtain one
// via Load or Parse.
type File struct {
	path string
	doc  yaml.Node
}

// Load reads and parses the version file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses data as a version file. The path is carried for error
// reporting and Save; Parse itself never touches the filesystem.
func Parse(data []byte, path string) (*File, error) {
	f := &File{path: path}
	if err := yaml.Unmarshal(data, &f.doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if root := f.root(); root != nil && root.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("document is not a mapping")}
	}
	return f, nil
}

// Path returns the filesystem path the file was loaded from.
func (f *File) Path() string { return f.path }

// root returns the top-level node of the document, or nil for an empty file.
func (f *File) root() *yaml.Node {
	if f.doc.Kind != yaml.DocumentNode || len(f.doc.Content) == 0 {
		return nil
	}
	return f.doc.Content[0]
}

// versionsRoot returns the mapping that holds the key→version pairs: the
// value of a top-level "versions" key when present (global file layout),
// otherwise the top-level mapping itself (recipe override layout).
func (f *File) versionsRoot() *yaml.Node {
	root := f.root()
	if root == nil || root.Kind != yaml.MappingNode {
		return nil
	}
	if v := mappingValue(root, "versions"); v != nil && v.Kind == yaml.MappingNode {
		return v
	}
	return root
}

// Lookup resolves a dotted path ("dependencies.crates.frame_omni_bencher.version")
// against the document. A missing node reports ok=false with no error —
// absence is an answer, not a failure. A path that lands on a non-scalar
// node is a ParseError.
func (f *File) Lookup(path string) (value string, ok bool, err error) {
	node := f.root()
	for _, seg := range splitPath(path) {
		if node == nil || node.Kind != yaml.MappingNode {
			return "", false, nil
		}
		node = mappingValue(node, seg)
	}
	if node == nil {
		return "", false, nil
	}
	if node.Kind != yaml.ScalarNode {
		return "", false, &ParseError{Path: f.path, Err: fmt.Errorf("%s is not a scalar", path)}
	}
	if node.Tag == "!!null" {
		return "", false, nil
	}
	return node.Value, true, nil
}

// Get returns the pinned version for key from the versions mapping.
func (f *File) Get(key string) (string, bool) {
	vr := f.versionsRoot()
	if vr == nil {
		return "", false
	}
	v := mappingValue(vr, key)
	if v == nil || v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
		return "", false
	}
	return v.Value, true
}

// Set updates the pinned version for key in place, keeping the existing
// node's comments and quoting style. An unknown key is appended to the end
// of the versions mapping; keys are never removed.
func (f *File) Set(key, value string) {
	vr := f.versionsRoot()
	if vr == nil {
		// Empty document: build a flat mapping from scratch.
		f.doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{Kind: yaml.MappingNode, Tag: "!!map"},
			},
		}
		vr = f.doc.Content[0]
	}
	if v := mappingValue(vr, key); v != nil {
		v.SetString(value)
		return
	}
	vr.Content = append(vr.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}

// Table flattens the versions mapping into a Table. Non-scalar values are a
// ParseError; explicit nulls are treated as absent and excluded.
func (f *File) Table() (Table, error) {
	t := Table{m: map[string]string{}}
	vr := f.versionsRoot()
	if vr == nil {
		return t, nil
	}
	for i := 0; i+1 < len(vr.Content); i += 2 {
		k, v := vr.Content[i], vr.Content[i+1]
		if v.Tag == "!!null" {
			continue
		}
		if v.Kind != yaml.ScalarNode {
			return Table{}, &ParseError{Path: f.path, Err: fmt.Errorf("value for %q is not a scalar", k.Value)}
		}
		t.put(k.Value, v.Value)
	}
	return t, nil
}

// Save writes the document back to its path atomically: marshal to a temp
// file in the same directory, then rename over the original.
func (f *File) Save() error {
	if f.path == "" {
		return fmt.Errorf("store: no path to save to")
	}
	data, err := f.Marshal()
	if err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", f.path, err)
	}
	return nil
}

// Marshal renders the document with the conventional 2-space indent.
func (f *File) Marshal() ([]byte, error) {
	if f.root() == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f.root()); err != nil {
		return nil, fmt.Errorf("marshal %s: %w", f.path, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal %s: %w", f.path, err)
	}
	return buf.Bytes(), nil
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func splitPath(path string) []string {
	var segs []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			if i > start {
				segs = append(segs, path[start:i])
			}
			start = i + 1
		}
	}
	return segs
}
