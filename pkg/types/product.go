package types

// Product is the catalog record shape, byte-compatible with the upstream
// API. Records are never mutated once returned: catalog items carry
// upstream-assigned ids, locally created items carry monotonically
// increasing ids from the proxy's ephemeral store.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}
