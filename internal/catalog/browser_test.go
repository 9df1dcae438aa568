package catalog

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/multierr"

	pkgerrors "github.com/techstore/backend/pkg/errors"
	"github.com/techstore/backend/pkg/types"
)

type stubReader struct {
	mu         sync.Mutex
	categories []string
	err        error
	respond    func(q Query) []types.Product

	queries []Query
}

func (s *stubReader) Categories(context.Context) ([]string, error) {
	return s.categories, s.err
}

func (s *stubReader) Products(_ context.Context, q Query) ([]types.Product, error) {
	s.mu.Lock()
	s.queries = append(s.queries, q)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.respond == nil {
		return nil, nil
	}
	return s.respond(q), nil
}

func (s *stubReader) lastQuery() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queries) == 0 {
		return Query{}
	}
	return s.queries[len(s.queries)-1]
}

func TestSearchTermIsBufferedUntilSubmit(t *testing.T) {
	stub := &stubReader{respond: func(Query) []types.Product { return nil }}
	b := NewBrowser(stub, 24)
	ctx := context.Background()

	if err := b.LoadProducts(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	b.SetSearchTerm("phone")
	if err := b.LoadProducts(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := stub.lastQuery().Term; got != "" {
		t.Fatalf("typed term must not apply before submit, got %q", got)
	}

	if err := b.SubmitSearch(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := stub.lastQuery().Term; got != "phone" {
		t.Fatalf("expected submitted term to apply, got %q", got)
	}
}

func TestSelectCategoryReloadsWithAppliedTerm(t *testing.T) {
	stub := &stubReader{respond: func(Query) []types.Product { return nil }}
	b := NewBrowser(stub, 24)
	ctx := context.Background()

	b.SetSearchTerm("phone")
	if err := b.SubmitSearch(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := b.SelectCategory(ctx, strPtr("electronics")); err != nil {
		t.Fatalf("select: %v", err)
	}

	q := stub.lastQuery()
	if q.Category != "electronics" || q.Term != "phone" || q.Limit != 24 {
		t.Fatalf("unexpected query %+v", q)
	}
}

func TestVisibleAppliesBucketFilter(t *testing.T) {
	stub := &stubReader{respond: func(Query) []types.Product {
		return []types.Product{
			{ID: 1, Title: "Earbuds", Price: 30},
			{ID: 2, Title: "Phone", Price: 199},
			{ID: 3, Title: "Laptop", Price: 899},
		}
	}}
	b := NewBrowser(stub, 24)
	ctx := context.Background()

	if err := b.LoadProducts(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	b.SelectBucket(strPtr("50-200"))
	visible := b.Visible()
	if len(visible) != 1 || visible[0].ID != 2 {
		t.Fatalf("expected only the phone visible, got %v", visible)
	}

	b.SelectBucket(nil)
	if len(b.Visible()) != 3 {
		t.Fatalf("nil bucket should show everything")
	}
}

func TestFetchFailuresPropagate(t *testing.T) {
	stub := &stubReader{err: pkgerrors.New(pkgerrors.CodeDependency, "proxy returned 502")}
	b := NewBrowser(stub, 24)
	ctx := context.Background()

	if err := b.FetchCategories(ctx); err == nil {
		t.Fatalf("category failures must propagate")
	}
	if err := b.LoadProducts(ctx); err == nil {
		t.Fatalf("product failures must propagate")
	}
	if b.Loading() {
		t.Fatalf("loading flag must clear after a failed load")
	}
}

func TestRefreshLoadsCategoriesAndStagedQuery(t *testing.T) {
	stub := &stubReader{
		categories: []string{"electronics", "jewelery"},
		respond: func(Query) []types.Product {
			return []types.Product{{ID: 1, Title: "Phone", Price: 199}}
		},
	}
	b := NewBrowser(stub, 24)
	ctx := context.Background()

	b.SetCategory(strPtr("electronics"))
	b.SetSearchTerm("phone")
	if err := b.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if got := b.Categories(); len(got) != 2 {
		t.Fatalf("expected both categories after refresh, got %v", got)
	}
	if got := b.Visible(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected the fetched product visible, got %v", got)
	}
	q := stub.lastQuery()
	if q.Category != "electronics" || q.Term != "phone" || q.Limit != 24 {
		t.Fatalf("staged inputs must drive the refresh query, got %+v", q)
	}
	if len(stub.queries) != 1 {
		t.Fatalf("refresh must issue exactly one product fetch, got %d", len(stub.queries))
	}
}

func TestRefreshAggregatesFetchFailures(t *testing.T) {
	stub := &stubReader{err: pkgerrors.New(pkgerrors.CodeDependency, "proxy returned 502")}
	b := NewBrowser(stub, 24)

	err := b.Refresh(context.Background())
	if err == nil {
		t.Fatalf("refresh failures must propagate")
	}
	if errs := multierr.Errors(err); len(errs) != 2 {
		t.Fatalf("expected both the category and product failures, got %v", errs)
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	stub := &stubReader{}
	stub.respond = func(q Query) []types.Product {
		if q.Term == "old" {
			close(firstStarted)
			<-release
			return []types.Product{{ID: 1, Title: "Stale"}}
		}
		return []types.Product{{ID: 2, Title: "Fresh"}}
	}

	b := NewBrowser(stub, 24)
	ctx := context.Background()

	b.SetSearchTerm("old")
	done := make(chan error, 1)
	go func() { done <- b.SubmitSearch(ctx) }()
	<-firstStarted

	// a newer query lands while the first fetch is still in flight
	b.SetSearchTerm("new")
	if err := b.SubmitSearch(ctx); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}

	visible := b.Visible()
	if len(visible) != 1 || visible[0].Title != "Fresh" {
		t.Fatalf("stale response must be discarded, got %v", visible)
	}
	if b.Loading() {
		t.Fatalf("loading flag should be owned and cleared by the newest load")
	}
}
