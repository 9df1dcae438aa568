package products

import (
	"sync"

	"github.com/techstore/backend/pkg/types"
)

// DefaultIDSeed is where locally assigned product ids start, well clear of
// the upstream catalog's id space.
const DefaultIDSeed = 1000

// Store is the proxy's ephemeral, append-only list of locally created
// products. It is an explicit object injected into the service, scoped to
// the process: contents are lost on restart and that is the documented
// lifecycle. Records are never mutated or deleted once appended.
type Store struct {
	mu     sync.RWMutex
	items  []types.Product
	nextID int
}

func NewStore(seed int) *Store {
	if seed <= 0 {
		seed = DefaultIDSeed
	}
	return &Store{nextID: seed}
}

// Append assigns the next locally-unique id and stores the record.
func (s *Store) Append(p types.Product) types.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.items = append(s.items, p)
	return p
}

// FindByID returns the locally created product with the given id, if any.
func (s *Store) FindByID(id int) (types.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return types.Product{}, false
}

// All returns a copy of the stored records in append order.
func (s *Store) All() []types.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Product, len(s.items))
	copy(out, s.items)
	return out
}
