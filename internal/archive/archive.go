// Package archive exposes the entries of a zip-structured container.
package archive

import (
	"errors"
	"strings"
)

var (
	// ErrOpen is returned when the input is not a readable zip container.
	ErrOpen = errors.New("archive: cannot open as zip container")
	// ErrFileNotFound is returned when a named entry does not exist.
	ErrFileNotFound = errors.New("archive: file not found")
)

// Entry describes one archive member.
type Entry struct {
	Name string // forward-slash separated path
	Size int64  // uncompressed size in bytes
}

// IsDir reports whether the entry is a directory placeholder.
func (e Entry) IsDir() bool {
	return strings.HasSuffix(e.Name, "/")
}

// Archive is a read-only view over a set of named entries.
type Archive interface {
	// Entries returns all entries in their stored order.
	Entries() []Entry
	// ReadFile returns the full contents of the named entry.
	ReadFile(name string) ([]byte, error)
}

// normalizePath removes a leading "./" or "/" from entry names.
func normalizePath(name string) string {
	name = strings.TrimPrefix(name, "./")
	return strings.TrimPrefix(name, "/")
}
