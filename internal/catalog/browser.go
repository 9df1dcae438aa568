package catalog

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/techstore/backend/pkg/types"
)

// DefaultLimit is the page size the browser requests from the proxy.
const DefaultLimit = 24

// reader is the slice of the proxy client the browser needs.
type reader interface {
	Categories(ctx context.Context) ([]string, error)
	Products(ctx context.Context, q Query) ([]types.Product, error)
}

// Browser holds the catalog query state: selected category, buffered and
// applied search term, price bucket, and the most recently fetched result
// set. Fetch failures are propagated uniformly from both category and
// product loads so the caller can render an error state; nothing degrades
// silently.
//
// A load that resolves after a newer query was issued is discarded via a
// generation token, so rapid query changes can never paint stale results.
type Browser struct {
	mu     sync.Mutex
	client reader
	limit  int

	categories []string
	products   []types.Product
	category   *string
	term       string // applied on the last fetch
	buffered   string // typed but not yet submitted
	bucket     *string
	loading    bool
	generation uint64
}

func NewBrowser(client reader, limit int) *Browser {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Browser{client: client, limit: limit}
}

// FetchCategories loads the category list.
func (b *Browser) FetchCategories(ctx context.Context) error {
	categories, err := b.client.Categories(ctx)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.categories = categories
	b.mu.Unlock()
	return nil
}

// LoadProducts fetches the result set for the current category and applied
// search term. If a newer load was issued while this one was in flight the
// response is dropped without touching state.
func (b *Browser) LoadProducts(ctx context.Context) error {
	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.loading = true
	q := Query{Term: b.term, Limit: b.limit}
	if b.category != nil {
		q.Category = *b.category
	}
	b.mu.Unlock()

	products, err := b.client.Products(ctx, q)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		// superseded; the newer load owns the loading flag
		return nil
	}
	b.loading = false
	if err != nil {
		return err
	}
	b.products = products
	return nil
}

// Refresh is the initial load: it fetches the category list and the product
// set for the staged inputs in one pass. Failures are aggregated so the
// caller sees every broken fetch at once.
func (b *Browser) Refresh(ctx context.Context) error {
	return multierr.Append(b.FetchCategories(ctx), b.SubmitSearch(ctx))
}

// SetCategory stages the category (nil means all) without issuing a fetch.
func (b *Browser) SetCategory(category *string) {
	b.mu.Lock()
	b.category = category
	b.mu.Unlock()
}

// SelectCategory updates the category (nil means all) and reloads with the
// currently applied search term.
func (b *Browser) SelectCategory(ctx context.Context, category *string) error {
	b.SetCategory(category)
	return b.LoadProducts(ctx)
}

// SetSearchTerm buffers the typed term; it only reaches a fetch on an
// explicit SubmitSearch.
func (b *Browser) SetSearchTerm(term string) {
	b.mu.Lock()
	b.buffered = term
	b.mu.Unlock()
}

// SubmitSearch applies the buffered term and reloads.
func (b *Browser) SubmitSearch(ctx context.Context) error {
	b.mu.Lock()
	b.term = b.buffered
	b.mu.Unlock()
	return b.LoadProducts(ctx)
}

// SelectBucket narrows the displayed set client-side; no fetch is issued.
func (b *Browser) SelectBucket(key *string) {
	b.mu.Lock()
	b.bucket = key
	b.mu.Unlock()
}

// Visible returns the fetched set narrowed by the selected price bucket.
// Always a subset of the most recent fetch.
func (b *Browser) Visible() []types.Product {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]types.Product, 0, len(b.products))
	for _, p := range b.products {
		if MatchesBucket(b.bucket, p.Price) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the last fetched category list.
func (b *Browser) Categories() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]string, len(b.categories))
	copy(out, b.categories)
	return out
}

// Category returns the selected category, nil meaning all.
func (b *Browser) Category() *string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.category
}

// Loading reports whether a product fetch is in flight.
func (b *Browser) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}
