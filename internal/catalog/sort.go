package catalog

import (
	"sort"

	"github.com/aaravmahajanofficial/storefront/internal/models"
)

type lessFunc func(a, b models.Product) bool

var comparators = map[string]lessFunc{
	models.SortPriceAsc: func(a, b models.Product) bool {
		return a.Price.LessThan(b.Price)
	},
	models.SortPriceDesc: func(a, b models.Product) bool {
		return a.Price.GreaterThan(b.Price)
	},
	models.SortRating: func(a, b models.Product) bool {
		return a.Rating > b.Rating
	},
}

// SortProducts orders products in place by sort key. Unknown and empty keys
// leave the remote order untouched; ties keep their remote order.
func SortProducts(products []models.Product, key string) {
	less, ok := comparators[key]
	if !ok {
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

func IsSortKey(key string) bool {
	_, ok := comparators[key]

	return ok
}
