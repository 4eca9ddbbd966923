package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/hubkit/internal/domain"
)

// AllCategories disables the category constraint.
const AllCategories = "All Categories"

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
)

// SortKeys lists the accepted sort keys.
var SortKeys = []SortKey{SortFeatured, SortPriceLow, SortPriceHigh, SortRating, SortNewest}

// Filter is the storefront's search state. The price range is inclusive.
type Filter struct {
	Search   string
	Category string
	MinPrice domain.Cents
	MaxPrice domain.Cents
	Sort     SortKey
}

func DefaultFilter() Filter {
	return Filter{
		Category: AllCategories,
		MinPrice: 0,
		MaxPrice: 100000,
		Sort:     SortFeatured,
	}
}

// Validate rejects unknown sort keys and inverted price ranges.
func (f Filter) Validate() error {
	if f.MinPrice > f.MaxPrice {
		return fmt.Errorf("%w: min price %s is above max price %s", domain.ErrValidation, f.MinPrice, f.MaxPrice)
	}
	for _, k := range SortKeys {
		if f.Sort == k {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown sort %q", domain.ErrValidation, f.Sort)
}

// Matches reports whether p passes the search, category and price checks.
func (f Filter) Matches(p domain.Product) bool {
	if f.Category != "" && f.Category != AllCategories && p.Category != f.Category {
		return false
	}
	if p.Price < f.MinPrice || p.Price > f.MaxPrice {
		return false
	}
	return matchesSearch(p, f.Search)
}

func matchesSearch(p domain.Product, search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Apply returns the matching products in the requested order. The input is
// not modified; unknown sort keys keep catalog order.
func Apply(products []domain.Product, f Filter) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}

	var less func(a, b domain.Product) bool
	switch f.Sort {
	case SortFeatured:
		less = func(a, b domain.Product) bool { return a.Featured && !b.Featured }
	case SortPriceLow:
		less = func(a, b domain.Product) bool { return a.Price < b.Price }
	case SortPriceHigh:
		less = func(a, b domain.Product) bool { return a.Price > b.Price }
	case SortRating:
		less = func(a, b domain.Product) bool { return a.Rating > b.Rating }
	case SortNewest:
		less = func(a, b domain.Product) bool { return compareIDs(a.ID, b.ID) > 0 }
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// compareIDs orders numeric ids numerically and everything else lexically.
func compareIDs(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
