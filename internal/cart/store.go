package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/techstore/backend/pkg/events"
)

// Store holds one surface's view of the cart. Independently mounted surfaces
// (a summary widget, the full cart page) each construct their own Store and
// subscribe to the bus separately; they reconcile only through the shared
// Persister at load time, so two surfaces can transiently disagree until both
// have processed the same event.
type Store struct {
	mu      sync.RWMutex
	lines   []Line
	persist Persister
}

// NewStore seeds the cart from the persister.
func NewStore(ctx context.Context, persist Persister) *Store {
	return &Store{
		lines:   persist.Load(ctx),
		persist: persist,
	}
}

// Run subscribes the store to add-to-cart events and drains them on a single
// goroutine, so two adds can never interleave their read-modify-write on the
// persisted list. Returns after subscribing; processing stops when ctx is
// cancelled.
func (s *Store) Run(ctx context.Context, bus *events.Bus) error {
	sub, err := bus.SubscribeAddToCart(ctx)
	if err != nil {
		return err
	}
	go func() {
		for ev := range sub {
			s.Add(ctx, ev)
		}
	}()
	return nil
}

// Add merges the event into the cart: an existing line's quantity goes up by
// one, a new product appends a line with quantity 1. Every call mutates, so
// it must run exactly once per logical "add" action.
func (s *Store) Add(ctx context.Context, ev events.AddToCart) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == ev.ID {
			s.lines[i].Qty++
			s.persist.Save(ctx, s.lines)
			return
		}
	}
	s.lines = append(s.lines, Line{
		ID:    ev.ID,
		Title: ev.Title,
		Price: ev.Price,
		Qty:   1,
		Image: ev.Image,
	})
	s.persist.Save(ctx, s.lines)
}

// Remove drops the line for the given product id. No-op if absent.
func (s *Store) Remove(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.ID != id {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.persist.Save(ctx, s.lines)
}

// Clear empties the cart and persists the empty list; the storage key stays.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = s.lines[:0]
	s.persist.Save(ctx, s.lines)
}

// Total is the sum of price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(decimal.NewFromFloat(line.Price).Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return total
}

// Count is the sum of quantities over all lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, line := range s.lines {
		count += line.Qty
	}
	return count
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}
