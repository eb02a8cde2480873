package store

import (
	"bytes"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps descriptions in a map. It is meant for tests and for
// processes that rebuild their catalog at startup.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]stored
	closed bool
}

type stored struct {
	data      []byte
	version   int
	timestamp time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]stored),
	}
}

func (m *MemoryStore) Save(name string, data []byte) error {
	if name == "" {
		return ErrEmptyName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	m.data[name] = stored{
		data:      bytes.Clone(data),
		version:   m.data[name].version + 1,
		timestamp: time.Now().UTC(),
	}
	return nil
}

// Load returns a copy of the data stored under name.
func (m *MemoryStore) Load(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	s, ok := m.data[name]
	if !ok {
		return nil, ErrNotFound
	}
	if s.data == nil {
		return []byte{}, nil
	}
	return bytes.Clone(s.data), nil
}

func (m *MemoryStore) List() ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	infos := make([]Info, 0, len(m.data))
	for name, s := range m.data {
		infos = append(infos, Info{
			Name:      name,
			Version:   s.version,
			Timestamp: s.timestamp,
			Size:      int64(len(s.data)),
		})
	}
	slices.SortFunc(infos, func(a, b Info) int {
		return strings.Compare(a.Name, b.Name)
	})
	return infos, nil
}

func (m *MemoryStore) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	delete(m.data, name)
	return nil
}

// Close drops all data. Later calls other than Close fail with ErrStoreClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.data = nil
	return nil
}

// Len returns the number of stored names.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
