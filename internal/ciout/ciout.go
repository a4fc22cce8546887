// Package ciout appends step outputs to the file CI provides via
// $GITHUB_OUTPUT: key=value lines, with a key<<EOF heredoc for multi-line
// values.
package ciout

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Writer appends outputs to the CI output file. A nil *Writer is a valid
// no-op, so local runs without $GITHUB_OUTPUT need no branching at call
// sites.
type Writer struct {
	f *os.File
}

// FromEnv opens the output file named by $GITHUB_OUTPUT. Returns (nil, nil)
// when the variable is unset — not a CI run.
func FromEnv() (*Writer, error) {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil, nil
	}
	return Open(path)
}

// Open opens (appending, creating) the output file at path.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open output file %s: %w", path, err)
	}
	return &Writer{f: f}, nil
}

// Set writes one output. Single-line values use key=value; values containing
// a newline use the key<<DELIM heredoc form with a delimiter guaranteed not
// to occur in the value.
func (w *Writer) Set(key, value string) error {
	if w == nil {
		return nil
	}
	var line string
	if strings.Contains(value, "\n") {
		delim := heredocDelim(value)
		line = fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delim, strings.TrimSuffix(value, "\n"), delim)
	} else {
		line = fmt.Sprintf("%s=%s\n", key, value)
	}
	if _, err := w.f.WriteString(line); err != nil {
		return fmt.Errorf("write output %s: %w", key, err)
	}
	return nil
}

// SetBool writes a true/false output.
func (w *Writer) SetBool(key string, v bool) error {
	return w.Set(key, strconv.FormatBool(v))
}

// SetInt writes an integer output.
func (w *Writer) SetInt(key string, v int) error {
	return w.Set(key, strconv.Itoa(v))
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	return w.f.Close()
}

// heredocDelim picks a delimiter that does not appear as a line of value.
func heredocDelim(value string) string {
	delim := "EOF"
	for n := 0; containsLine(value, delim); n++ {
		delim = fmt.Sprintf("EOF%d", n)
	}
	return delim
}

func containsLine(value, line string) bool {
	for _, l := range strings.Split(value, "\n") {
		if l == line {
			return true
		}
	}
	return false
}
