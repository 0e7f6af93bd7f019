package pak

import (
	"strings"
	"sync"
)

// Index resolves logical asset names to package records.
//
// Index files themselves are parsed outside this module; any lookup structure
// satisfying Index can back an Extractor. Implementations must be safe for
// concurrent use.
type Index interface {
	// Lookup returns the record for name in category, e.g. ("Tile", "4.til").
	Lookup(category, name string) (Record, bool)
}

// MapIndex is an in-memory Index. Names are matched case-insensitively.
type MapIndex struct {
	mu      sync.RWMutex
	records map[string]map[string]Record
}

// NewMapIndex returns an empty MapIndex.
func NewMapIndex() *MapIndex {
	return &MapIndex{records: make(map[string]map[string]Record)}
}

// Add registers rec under category using rec.Name as the key.
func (m *MapIndex) Add(category string, rec Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names, ok := m.records[category]
	if !ok {
		names = make(map[string]Record)
		m.records[category] = names
	}
	names[strings.ToLower(rec.Name)] = rec
}

// Lookup implements Index.
func (m *MapIndex) Lookup(category, name string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[category][strings.ToLower(name)]
	return rec, ok
}

// Len returns the number of records across all categories.
func (m *MapIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, names := range m.records {
		n += len(names)
	}
	return n
}
