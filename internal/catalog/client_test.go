package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pkgerrors "github.com/techstore/backend/pkg/errors"
)

func TestClientBuildsProxyQueries(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"id":1,"title":"Phone","price":199.99,"description":"","category":"electronics","image":""}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	items, err := c.Products(context.Background(), Query{Category: "electronics", Term: "phone", Limit: 24})
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if gotQuery != "category=electronics&limit=24&q=phone" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if len(items) != 1 {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestClientMapsFailuresToDependencyErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	_, err := c.Categories(context.Background())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
