package products

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/techstore/backend/pkg/errors"
	"github.com/techstore/backend/pkg/types"
)

const (
	defaultCategory = "uncategorized"
	defaultImage    = "https://via.placeholder.com/150"

	minTitleLength = 3
)

// upstreamReader is the slice of the catalog client the service needs.
type upstreamReader interface {
	Products(ctx context.Context, category string, limit int) ([]types.Product, error)
	Product(ctx context.Context, id int) (*types.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// Service mediates between the browser-facing proxy route and the upstream
// catalog, merging in locally created products.
type Service interface {
	Get(ctx context.Context, id int) (*types.Product, error)
	Categories(ctx context.Context) ([]string, error)
	List(ctx context.Context, input ListInput) ([]types.Product, error)
	Create(ctx context.Context, input CreateInput) (*types.Product, error)
}

// ListInput scopes a product list query.
type ListInput struct {
	Category string
	Limit    int
	Query    string
}

// CreateInput is the validated payload for a locally created product.
type CreateInput struct {
	Title       string
	Price       float64
	Description string
	Category    string
	Image       string
}

type service struct {
	upstream upstreamReader
	store    *Store
}

// NewService constructs the proxy product service.
func NewService(upstream upstreamReader, store *Store) (Service, error) {
	if upstream == nil {
		return nil, fmt.Errorf("upstream client required")
	}
	if store == nil {
		return nil, fmt.Errorf("local product store required")
	}
	return &service{upstream: upstream, store: store}, nil
}

// Get serves single-item lookups, local store first, then upstream.
func (s *service) Get(ctx context.Context, id int) (*types.Product, error) {
	if local, ok := s.store.FindByID(id); ok {
		return &local, nil
	}
	return s.upstream.Product(ctx, id)
}

// Categories passes the upstream category list through.
func (s *service) Categories(ctx context.Context) ([]string, error) {
	return s.upstream.Categories(ctx)
}

// List fetches the upstream result set, appends locally created items, then
// narrows by the free-text query: case-insensitive substring over title plus
// description.
func (s *service) List(ctx context.Context, input ListInput) ([]types.Product, error) {
	items, err := s.upstream.Products(ctx, input.Category, input.Limit)
	if err != nil {
		return nil, err
	}

	merged := append(items, s.store.All()...)
	if input.Query == "" {
		return merged, nil
	}

	needle := strings.ToLower(input.Query)
	results := make([]types.Product, 0, len(merged))
	for _, p := range merged {
		haystack := strings.ToLower(p.Title + p.Description)
		if strings.Contains(haystack, needle) {
			results = append(results, p)
		}
	}
	return results, nil
}

// Create validates the payload, fills defaults, assigns a local id and
// appends the record to the ephemeral store.
func (s *service) Create(ctx context.Context, input CreateInput) (*types.Product, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	// trimming is for the length check only, the title is stored as sent
	p := s.store.Append(types.Product{
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		Category:    orDefault(input.Category, defaultCategory),
		Image:       orDefault(input.Image, defaultImage),
	})
	return &p, nil
}

func validateCreate(input CreateInput) error {
	if len(strings.TrimSpace(input.Title)) < minTitleLength {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required and must be at least 3 characters")
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be a non-negative number")
	}
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
