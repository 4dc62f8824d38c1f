package domain

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

// Sort keys accepted by the product search
const (
	SortNewest    = "newest"
	SortCheapest  = "cheapest"
	SortExpensive = "expensive"
	SortPopular   = "popular"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// MaxPage keeps the backend offset of any page within an int32
const MaxPage = math.MaxInt32/MaxPageSize + 1

var validSortKeys = map[string]bool{
	SortNewest:    true,
	SortCheapest:  true,
	SortExpensive: true,
	SortPopular:   true,
}

// PriceRange bounds a search by final price. Zero means unbounded.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ProductFilter is the page-local filter and sort state of a product search
type ProductFilter struct {
	SearchTerm    string     `json:"searchTerm"`
	Category      string     `json:"selectedCategory"`
	Brand         string     `json:"selectedBrand"`
	PriceRange    PriceRange `json:"priceRange"`
	OnlyAvailable bool       `json:"onlyAvailable"`
	Sort          string     `json:"sortKey"`
	Page          int        `json:"page"`
}

// DefaultProductFilter is the state shown when no filter is applied
func DefaultProductFilter() ProductFilter {
	return ProductFilter{Sort: SortNewest, Page: 1}
}

// Clear resets every filter to its default
func (f ProductFilter) Clear() ProductFilter {
	return DefaultProductFilter()
}

// Query builds the typed backend query for this filter
func (f ProductFilter) Query(pageSize int) ProductQuery {
	q := NewProductQuery(f.Page, pageSize)
	if f.SearchTerm != "" {
		q = q.WithSearch(f.SearchTerm)
	}
	if f.Category != "" {
		q = q.WithCategory(f.Category)
	}
	if f.Brand != "" {
		q = q.WithBrand(f.Brand)
	}
	if f.PriceRange.Min > 0 {
		q = q.WithMinPrice(f.PriceRange.Min)
	}
	if f.PriceRange.Max > 0 {
		q = q.WithMaxPrice(f.PriceRange.Max)
	}
	if f.OnlyAvailable {
		q = q.OnlyAvailable()
	}
	if f.Sort != "" {
		q = q.SortBy(f.Sort)
	}
	return q
}

// ProductQuery is the typed form of the {skip, limit, filters...} parameters
// accepted by GET /products. Unset optional fields are omitted from the request.
type ProductQuery struct {
	Page       int
	Limit      int
	Search     *string
	CategoryID *string
	BrandID    *string
	MinPrice   *float64
	MaxPrice   *float64
	Available  *bool
	Sort       *string
	PriceList  *string
}

func NewProductQuery(page, limit int) ProductQuery {
	return ProductQuery{Page: page, Limit: limit}
}

func (q ProductQuery) WithSearch(term string) ProductQuery {
	q.Search = &term
	return q
}

func (q ProductQuery) WithCategory(id string) ProductQuery {
	q.CategoryID = &id
	return q
}

func (q ProductQuery) WithBrand(id string) ProductQuery {
	q.BrandID = &id
	return q
}

func (q ProductQuery) WithMinPrice(v float64) ProductQuery {
	q.MinPrice = &v
	return q
}

func (q ProductQuery) WithMaxPrice(v float64) ProductQuery {
	q.MaxPrice = &v
	return q
}

func (q ProductQuery) OnlyAvailable() ProductQuery {
	v := true
	q.Available = &v
	return q
}

func (q ProductQuery) SortBy(key string) ProductQuery {
	q.Sort = &key
	return q
}

func (q ProductQuery) WithPriceList(name string) ProductQuery {
	q.PriceList = &name
	return q
}

// Skip is the backend offset of the requested page
func (q ProductQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// Validate checks the query once before it is sent
func (q ProductQuery) Validate() error {
	if q.Page < 1 || q.Page > MaxPage {
		return fmt.Errorf("%w: page must be between 1 and %d", ErrInvalidProductFilter, MaxPage)
	}
	if q.Limit < 1 || q.Limit > MaxPageSize {
		return fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidProductFilter, MaxPageSize)
	}
	if q.Skip() < 0 {
		return fmt.Errorf("%w: offset out of range", ErrInvalidProductFilter)
	}
	if q.MinPrice != nil && *q.MinPrice < 0 {
		return fmt.Errorf("%w: minimum price cannot be negative", ErrInvalidProductFilter)
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return fmt.Errorf("%w: maximum price cannot be negative", ErrInvalidProductFilter)
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return fmt.Errorf("%w: minimum price exceeds maximum price", ErrInvalidProductFilter)
	}
	if q.Sort != nil && !validSortKeys[*q.Sort] {
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidProductFilter, *q.Sort)
	}
	return nil
}

// Values renders the query as backend query parameters
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	v.Set("skip", strconv.Itoa(q.Skip()))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != nil {
		v.Set("search", *q.Search)
	}
	if q.CategoryID != nil {
		v.Set("categoryId", *q.CategoryID)
	}
	if q.BrandID != nil {
		v.Set("brandId", *q.BrandID)
	}
	if q.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.Available != nil {
		v.Set("available", strconv.FormatBool(*q.Available))
	}
	if q.Sort != nil {
		v.Set("sort", *q.Sort)
	}
	if q.PriceList != nil {
		v.Set("priceList", *q.PriceList)
	}
	return v
}
