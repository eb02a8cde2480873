package workers

import (
	"sort"
	"sync"
)

// table is a thread-safe map of named entries.
type table[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
}

func newTable[V any]() *table[V] {
	return &table[V]{entries: make(map[string]V)}
}

func (t *table[V]) set(name string, v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[name] = v
}

func (t *table[V]) get(name string) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[name]
	return v, ok
}

func (t *table[V]) delete(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, name)
}

// names returns the entry names in sorted order.
func (t *table[V]) names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *table[V]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
