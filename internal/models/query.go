package models

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 12
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*pageSize far from int overflow.
	MaxPage = 10000
)

var categorySlug = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsCategorySlug reports whether s is a catalog category slug such as
// "mens-shirts". Anything else must not be spliced into a catalog path.
func IsCategorySlug(s string) bool {
	return len(s) <= 64 && categorySlug.MatchString(s)
}

const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

// ListQuery is the URL query surface of the product listing:
// page, pageSize, category and sort.
type ListQuery struct {
	Page     int    `json:"page"     validate:"gte=1,lte=10000"`
	PageSize int    `json:"pageSize" validate:"gte=1,lte=100"`
	Category string `json:"category" validate:"omitempty,max=64,slug"`
	Sort     string `json:"sort"     validate:"omitempty,max=32"`
}

// ParseListQuery reads a ListQuery from URL parameters. Missing or
// non-numeric page falls back to page 1; an explicit page size that does not
// parse is kept as 0 so validation can reject it.
func ParseListQuery(values url.Values, defaultPageSize int) ListQuery {
	q := ListQuery{
		Page:     DefaultPage,
		PageSize: defaultPageSize,
		Category: strings.TrimSpace(values.Get("category")),
		Sort:     strings.TrimSpace(values.Get("sort")),
	}

	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}

	if raw := values.Get("pageSize"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			size = 0
		}
		q.PageSize = size
	}

	return q
}

func (q ListQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = DefaultPage
	}

	return (page - 1) * q.PageSize
}

// WithCategory switches category and goes back to the first page.
func (q ListQuery) WithCategory(category string) ListQuery {
	q.Category = category
	q.Page = DefaultPage

	return q
}

func (q ListQuery) WithSort(sort string) ListQuery {
	q.Sort = sort

	return q
}

func (q ListQuery) WithPage(page int) ListQuery {
	q.Page = page

	return q
}

func (q ListQuery) Values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))

	if q.PageSize != DefaultPageSize {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Sort != "" {
		values.Set("sort", q.Sort)
	}

	return values
}

func (q ListQuery) Encode() string {
	return q.Values().Encode()
}
