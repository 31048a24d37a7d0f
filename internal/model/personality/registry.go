package personality

// Registry exposes read-only personality lookup.
type Registry interface {
	List() []Personality
	Get(id string) (Personality, bool)
}

// MemoryRegistry implements Registry over a fixed slice. It is never mutated
// after construction, so it is safe for concurrent readers.
type MemoryRegistry struct {
	items []Personality
	index map[string]int
}

// NewMemoryRegistry returns a registry preloaded with the supplied personalities.
// Later duplicates of an ID are ignored.
func NewMemoryRegistry(items []Personality) *MemoryRegistry {
	r := &MemoryRegistry{
		items: make([]Personality, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if _, dup := r.index[item.ID]; dup {
			continue
		}
		r.index[item.ID] = len(r.items)
		r.items = append(r.items, item)
	}
	return r
}

// Default returns the registry holding the built-in personalities.
func Default() *MemoryRegistry {
	return NewMemoryRegistry(Seed())
}

// List returns the personalities in declaration order.
func (r *MemoryRegistry) List() []Personality {
	return append([]Personality(nil), r.items...)
}

// Get looks up a personality by identifier.
func (r *MemoryRegistry) Get(id string) (Personality, bool) {
	i, ok := r.index[id]
	if !ok {
		return Personality{}, false
	}
	return r.items[i], true
}
