package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/techstore/backend/pkg/events"
)

type memPersister struct {
	mu    sync.Mutex
	saved [][]Line
	seed  []Line
}

func (p *memPersister) Load(context.Context) []Line {
	out := make([]Line, len(p.seed))
	copy(out, p.seed)
	return out
}

func (p *memPersister) Save(_ context.Context, lines []Line) {
	p.mu.Lock()
	defer p.mu.Unlock()
	snapshot := make([]Line, len(lines))
	copy(snapshot, lines)
	p.saved = append(p.saved, snapshot)
}

func (p *memPersister) lastSave() []Line {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saved) == 0 {
		return nil
	}
	return p.saved[len(p.saved)-1]
}

func TestAddMergesByProductID(t *testing.T) {
	ctx := context.Background()
	persist := &memPersister{}
	store := NewStore(ctx, persist)

	phone := events.AddToCart{ID: 1, Title: "Phone", Price: 20}
	watch := events.AddToCart{ID: 2, Title: "Watch", Price: 30}

	store.Add(ctx, phone)
	store.Add(ctx, phone)
	store.Add(ctx, watch)

	lines := store.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ID != 1 || lines[0].Qty != 2 || lines[0].Price != 20 {
		t.Fatalf("unexpected first line %+v", lines[0])
	}
	if lines[1].ID != 2 || lines[1].Qty != 1 || lines[1].Price != 30 {
		t.Fatalf("unexpected second line %+v", lines[1])
	}
	if !store.Total().Equal(decimal.NewFromInt(70)) {
		t.Fatalf("expected total 70, got %s", store.Total())
	}
	if store.Count() != 3 {
		t.Fatalf("expected count 3, got %d", store.Count())
	}
	if len(persist.saved) != 3 {
		t.Fatalf("every add must persist, got %d saves", len(persist.saved))
	}
}

func TestAddSnapshotsPriceAtFirstAdd(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, &memPersister{})

	store.Add(ctx, events.AddToCart{ID: 1, Title: "Phone", Price: 20})
	// catalog price changed between adds; the line keeps its snapshot
	store.Add(ctx, events.AddToCart{ID: 1, Title: "Phone", Price: 25})

	lines := store.Lines()
	if lines[0].Price != 20 || lines[0].Qty != 2 {
		t.Fatalf("expected snapshot price 20 qty 2, got %+v", lines[0])
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	persist := &memPersister{}
	store := NewStore(ctx, persist)

	store.Add(ctx, events.AddToCart{ID: 1, Title: "Phone", Price: 20})
	store.Remove(ctx, 1)
	store.Remove(ctx, 1)

	if len(store.Lines()) != 0 {
		t.Fatalf("expected empty cart, got %v", store.Lines())
	}
	if got := persist.lastSave(); len(got) != 0 {
		t.Fatalf("expected empty list persisted, got %v", got)
	}
}

func TestClearPersistsEmptyList(t *testing.T) {
	ctx := context.Background()
	persist := &memPersister{}
	store := NewStore(ctx, persist)

	store.Add(ctx, events.AddToCart{ID: 1, Title: "Phone", Price: 20})
	store.Clear(ctx)

	if store.Count() != 0 {
		t.Fatalf("expected count 0 after clear")
	}
	got := persist.lastSave()
	if got == nil || len(got) != 0 {
		t.Fatalf("clear must persist an empty list, got %v", got)
	}
}

func TestStoreSeedsFromPersister(t *testing.T) {
	ctx := context.Background()
	persist := &memPersister{seed: []Line{{ID: 7, Title: "Ring", Price: 120, Qty: 2}}}
	store := NewStore(ctx, persist)

	if store.Count() != 2 {
		t.Fatalf("expected seeded quantity, got %d", store.Count())
	}
	if !store.Total().Equal(decimal.NewFromInt(240)) {
		t.Fatalf("expected total 240, got %s", store.Total())
	}
}

func TestRunDeliversEventsToIndependentStores(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := events.NewBus()
	defer bus.Close()

	widget := NewStore(ctx, &memPersister{})
	page := NewStore(ctx, &memPersister{})
	if err := widget.Run(ctx, bus); err != nil {
		t.Fatalf("run widget: %v", err)
	}
	if err := page.Run(ctx, bus); err != nil {
		t.Fatalf("run page: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := bus.PublishAddToCart(ctx, events.AddToCart{ID: 1, Title: "Phone", Price: 20}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	waitFor := func(s *Store) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			if s.Count() == 3 {
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
		t.Fatalf("store never converged, count=%d", s.Count())
	}
	waitFor(widget)
	waitFor(page)

	for _, s := range []*Store{widget, page} {
		lines := s.Lines()
		if len(lines) != 1 || lines[0].Qty != 3 {
			t.Fatalf("expected one line with qty 3, got %v", lines)
		}
	}
}
