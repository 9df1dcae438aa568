package cart

import "context"

// Line is one row of the shopping cart: a distinct product and its quantity.
// Title, price and image are snapshots taken when the product was first
// added; catalog changes after that point do not rewrite them.
type Line struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
	Image string  `json:"image,omitempty"`
}

// Persister is the persistence sink behind a cart store. Implementations
// never surface failures: Load degrades to an empty list and Save absorbs
// write errors, so a broken local store can never take the storefront down.
type Persister interface {
	Load(ctx context.Context) []Line
	Save(ctx context.Context, lines []Line)
}
