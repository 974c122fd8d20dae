package archive

import "fmt"

// Memory is an Archive held entirely in memory. Entries keep insertion order.
type Memory struct {
	entries []Entry
	data    map[string][]byte
}

// NewMemory returns an empty in-memory archive.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Add appends an entry with the given contents. Adding an existing name
// replaces its contents but keeps its position.
func (m *Memory) Add(name string, data []byte) *Memory {
	name = normalizePath(name)
	if _, ok := m.data[name]; ok {
		for i := range m.entries {
			if m.entries[i].Name == name {
				m.entries[i].Size = int64(len(data))
			}
		}
	} else {
		m.entries = append(m.entries, Entry{Name: name, Size: int64(len(data))})
	}
	m.data[name] = data
	return m
}

// AddSized appends an entry whose reported size differs from its contents.
// The entry has no readable data.
func (m *Memory) AddSized(name string, size int64) *Memory {
	m.entries = append(m.entries, Entry{Name: normalizePath(name), Size: size})
	return m
}

// Entries returns the entries in insertion order.
func (m *Memory) Entries() []Entry {
	return m.entries
}

// ReadFile returns the contents of the named entry.
func (m *Memory) ReadFile(name string) ([]byte, error) {
	data, ok := m.data[normalizePath(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	return data, nil
}

var _ Archive = (*Memory)(nil)
