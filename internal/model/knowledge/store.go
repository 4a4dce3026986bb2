package knowledge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Store exposes knowledge base lookups.
type Store interface {
	List() []Entry
	FindByIntent(intent string) (Entry, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Entry
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied entries.
// Examples are trimmed and blank examples dropped.
func NewMemoryStore(items []Entry) *MemoryStore {
	cleaned := make([]Entry, 0, len(items))
	for _, item := range items {
		examples := make([]string, 0, len(item.Examples))
		for _, ex := range item.Examples {
			if ex = strings.TrimSpace(ex); ex != "" {
				examples = append(examples, ex)
			}
		}
		item.Examples = examples
		cleaned = append(cleaned, item)
	}
	return &MemoryStore{items: cleaned}
}

// List returns the entries in dataset order.
func (s *MemoryStore) List() []Entry {
	return append([]Entry(nil), s.items...)
}

// FindByIntent looks up an entry by intent name.
func (s *MemoryStore) FindByIntent(intent string) (Entry, bool) {
	for _, item := range s.items {
		if item.Intent == intent {
			return item, true
		}
	}
	return Entry{}, false
}

// LoadFile reads a dataset from a JSON or YAML file (by extension).
func LoadFile(path string) (*MemoryStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read knowledge base")
	}

	var items []Entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &items)
	default:
		err = json.Unmarshal(raw, &items)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse knowledge base %s", path)
	}
	if len(items) == 0 {
		return nil, errors.Errorf("knowledge base %s has no entries", path)
	}

	return NewMemoryStore(items), nil
}
