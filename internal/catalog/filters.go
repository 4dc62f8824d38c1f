// Package catalog maps URL filter state onto typed product queries and
// projects backend products for display.
package catalog

import (
	"math"
	"strings"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/querystate"
)

// Query parameter names of the product listing
const (
	ParamSearch    = "q"
	ParamCategory  = "category"
	ParamBrand     = "brand"
	ParamMinPrice  = "minPrice"
	ParamMaxPrice  = "maxPrice"
	ParamAvailable = "available"
	ParamSort      = "sort"
	ParamPage      = "page"
)

// PriceListWholesale selects wholesale prices on the backend
const PriceListWholesale = "wholesale"

// Defaults is the unfiltered listing
var Defaults = querystate.Defaults{
	ParamSearch:    "",
	ParamCategory:  "",
	ParamBrand:     "",
	ParamMinPrice:  0.0,
	ParamMaxPrice:  0.0,
	ParamAvailable: false,
	ParamSort:      domain.SortNewest,
	ParamPage:      1,
}

var sortKeys = map[string]bool{
	domain.SortNewest:    true,
	domain.SortCheapest:  true,
	domain.SortExpensive: true,
	domain.SortPopular:   true,
}

// FilterFromQuery builds the filter state from resolved URL values. Values
// that cannot describe a filter fall back to their defaults.
func FilterFromQuery(v querystate.Values) domain.ProductFilter {
	f := domain.DefaultProductFilter()
	f.SearchTerm = strings.TrimSpace(v.String(ParamSearch))
	f.Category = v.String(ParamCategory)
	f.Brand = v.String(ParamBrand)
	f.PriceRange = domain.PriceRange{
		Min: priceBound(v.Float(ParamMinPrice)),
		Max: priceBound(v.Float(ParamMaxPrice)),
	}
	// an inverted range keeps the lower bound only
	if f.PriceRange.Max > 0 && f.PriceRange.Min > f.PriceRange.Max {
		f.PriceRange.Max = 0
	}
	f.OnlyAvailable = v.Bool(ParamAvailable)
	if s := v.String(ParamSort); sortKeys[s] {
		f.Sort = s
	}
	if p := v.Int(ParamPage); p > 1 && p <= domain.MaxPage {
		f.Page = p
	}
	return f
}

// FilterValues is the inverse of FilterFromQuery, used to mirror the state into a URL
func FilterValues(f domain.ProductFilter) querystate.Values {
	return querystate.Values{
		ParamSearch:    f.SearchTerm,
		ParamCategory:  f.Category,
		ParamBrand:     f.Brand,
		ParamMinPrice:  f.PriceRange.Min,
		ParamMaxPrice:  f.PriceRange.Max,
		ParamAvailable: f.OnlyAvailable,
		ParamSort:      f.Sort,
		ParamPage:      f.Page,
	}
}

// CanonicalQuery renders the filter as the shareable query string
func CanonicalQuery(f domain.ProductFilter) string {
	return querystate.Encode(FilterValues(f), Defaults)
}

// BuildQuery turns the filter into the backend query for role
func BuildQuery(f domain.ProductFilter, pageSize int, role string) domain.ProductQuery {
	q := f.Query(pageSize)
	if role == domain.RoleWholesale {
		q = q.WithPriceList(PriceListWholesale)
	}
	return q
}

// priceBound drops bounds that cannot be sent; zero means unbounded
func priceBound(v float64) float64 {
	if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
