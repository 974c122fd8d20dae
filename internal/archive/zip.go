package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
)

// maxEntrySize caps the decompressed size of a single entry.
const maxEntrySize int64 = 256 * 1024 * 1024

// Zip is an Archive backed by a zip file on disk.
type Zip struct {
	zipReader *zip.ReadCloser
	entries   []Entry
	files     map[string]*zip.File
}

// Open opens the zip container at path.
func Open(path string) (*Zip, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}

	z := &Zip{
		zipReader: zr,
		entries:   make([]Entry, 0, len(zr.File)),
		files:     make(map[string]*zip.File, len(zr.File)),
	}

	for _, f := range zr.File {
		name := normalizePath(f.Name)
		if _, dup := z.files[name]; dup {
			continue
		}
		z.files[name] = f
		z.entries = append(z.entries, Entry{Name: name, Size: int64(f.UncompressedSize64)})
	}

	return z, nil
}

// Close releases the underlying file.
func (z *Zip) Close() error {
	return z.zipReader.Close()
}

// Entries returns all entries in the order they are stored in the zip.
func (z *Zip) Entries() []Entry {
	return z.entries
}

// ReadFile reads the contents of the named entry. Lookup is exact first,
// then case-insensitive.
func (z *Zip) ReadFile(name string) ([]byte, error) {
	f := z.lookup(normalizePath(name))
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return readZipFile(f, maxEntrySize)
}

func (z *Zip) lookup(name string) *zip.File {
	if f, ok := z.files[name]; ok {
		return f
	}
	for _, e := range z.entries {
		if strings.EqualFold(e.Name, name) {
			return z.files[e.Name]
		}
	}
	return nil
}

func readZipFile(f *zip.File, limit int64) ([]byte, error) {
	if f.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("archive: entry %s too large: %d bytes (max %d)", f.Name, f.UncompressedSize64, limit)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("archive: open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	// The declared size may be forged, so read one byte past the limit.
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("archive: read entry %s: %w", f.Name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("archive: entry %s exceeds %d bytes", f.Name, limit)
	}
	return data, nil
}

var _ Archive = (*Zip)(nil)
