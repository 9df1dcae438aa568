package catalog

// Bucket is one price-band filter option offered for a category.
type Bucket struct {
	Key   string
	Label string
}

type priceRange struct {
	min, max float64
	hasMin   bool
	hasMax   bool
}

// bucketRanges maps bucket keys to their numeric bands. Bounds are
// inclusive on both ends for middle bands, strict for open-ended ones,
// matching the storefront's advertised labels.
var bucketRanges = map[string]priceRange{
	"under-25": {max: 25, hasMax: true},
	"25-75":    {min: 25, max: 75, hasMin: true, hasMax: true},
	"over-75":  {min: 75, hasMin: true},
	"under-50": {max: 50, hasMax: true},
	"50-150":   {min: 50, max: 150, hasMin: true, hasMax: true},
	"over-150": {min: 150, hasMin: true},
	"50-200":   {min: 50, max: 200, hasMin: true, hasMax: true},
	"over-200": {min: 200, hasMin: true},
}

var bucketsByCategory = map[string][]Bucket{
	"electronics": {
		{Key: "under-50", Label: "Under $50"},
		{Key: "50-200", Label: "$50 - $200"},
		{Key: "over-200", Label: "Over $200"},
	},
	"jewelery": {
		{Key: "under-50", Label: "Under $50"},
		{Key: "50-150", Label: "$50 - $150"},
		{Key: "over-150", Label: "Over $150"},
	},
	"men's clothing": {
		{Key: "under-25", Label: "Under $25"},
		{Key: "25-75", Label: "$25 - $75"},
		{Key: "over-75", Label: "Over $75"},
	},
	"women's clothing": {
		{Key: "under-25", Label: "Under $25"},
		{Key: "25-75", Label: "$25 - $75"},
		{Key: "over-75", Label: "Over $75"},
	},
}

var defaultBuckets = []Bucket{
	{Key: "under-50", Label: "Under $50"},
	{Key: "50-200", Label: "$50 - $200"},
	{Key: "over-200", Label: "Over $200"},
}

// BucketsFor returns the filter options for a category; an unknown or empty
// category gets the default band set.
func BucketsFor(category string) []Bucket {
	if buckets, ok := bucketsByCategory[category]; ok {
		out := make([]Bucket, len(buckets))
		copy(out, buckets)
		return out
	}
	out := make([]Bucket, len(defaultBuckets))
	copy(out, defaultBuckets)
	return out
}

// MatchesBucket reports whether the price falls inside the bucket's band.
// A nil key matches everything. An unrecognized key also matches everything:
// failing open means a stale or mistyped filter key shows the full result
// set rather than an inexplicably empty page.
func MatchesBucket(key *string, price float64) bool {
	if key == nil {
		return true
	}
	r, ok := bucketRanges[*key]
	if !ok {
		return true
	}
	switch {
	case r.hasMin && r.hasMax:
		return price >= r.min && price <= r.max
	case r.hasMax:
		return price < r.max
	case r.hasMin:
		return price > r.min
	}
	return true
}
