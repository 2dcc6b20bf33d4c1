package cart

import (
	"sync"

	"github.com/envatex/storefront-gateway/pkg/upstream"
)

// Entry pairs a catalog product with the quantity requested for quotation.
// Quantity is always at least 1; an entry that would drop to 0 is removed
// from the store instead.
type Entry struct {
	Product  upstream.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

// Store holds the ordered, deduplicated cart for one session. Entries keep
// insertion order for display; re-adding a previously removed product
// appends at the tail rather than restoring its old position.
//
// The store is safe for concurrent use. Within a session all mutations are
// serialized by the mutex, which preserves the order the triggering requests
// were dispatched in.
type Store struct {
	mu      sync.Mutex
	entries []Entry
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Add merges the product into the cart: an existing entry gains quantity 1,
// otherwise a new entry with quantity 1 is appended. Add never fails.
func (s *Store) Add(product upstream.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Product.ID == product.ID {
			s.entries[i].Quantity++
			return
		}
	}
	s.entries = append(s.entries, Entry{Product: product, Quantity: 1})
}

// Decrement lowers the quantity for the product by 1, removing the entry
// when it would reach 0. Decrementing an absent product is a no-op.
func (s *Store) Decrement(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Product.ID != productID {
			continue
		}
		if s.entries[i].Quantity > 1 {
			s.entries[i].Quantity--
			return
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return
	}
}

// Clear removes every entry unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// QuantityOf reports the quantity held for the product, or 0 when absent.
func (s *Store) QuantityOf(productID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Product.ID == productID {
			return s.entries[i].Quantity
		}
	}
	return 0
}

// Len reports the number of distinct products in the cart.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot returns a copy of the entries in insertion order. Mutating the
// returned slice does not affect the store.
func (s *Store) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
