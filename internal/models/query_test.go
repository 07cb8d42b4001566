package models_test

import (
	"net/url"
	"testing"

	"github.com/aaravmahajanofficial/storefront/internal/models"
	"github.com/aaravmahajanofficial/storefront/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected models.ListQuery
	}{
		{"defaults", "", models.ListQuery{Page: 1, PageSize: 12}},
		{"all params", "page=2&category=laptops&sort=price-asc", models.ListQuery{Page: 2, PageSize: 12, Category: "laptops", Sort: "price-asc"}},
		{"non numeric page", "page=abc", models.ListQuery{Page: 1, PageSize: 12}},
		{"negative page", "page=-3", models.ListQuery{Page: 1, PageSize: 12}},
		{"custom page size", "pageSize=30", models.ListQuery{Page: 1, PageSize: 30}},
		{"broken page size", "pageSize=x", models.ListQuery{Page: 1, PageSize: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, models.ParseListQuery(values, 12))
		})
	}
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, models.ListQuery{Page: 1, PageSize: 12}.Offset())
	assert.Equal(t, 12, models.ListQuery{Page: 2, PageSize: 12}.Offset())
	assert.Equal(t, 0, models.ListQuery{Page: 0, PageSize: 12}.Offset())
}

func TestListQuery_Transitions(t *testing.T) {
	q := models.ListQuery{Page: 4, PageSize: 12, Category: "laptops", Sort: "rating"}

	t.Run("category change resets page", func(t *testing.T) {
		next := q.WithCategory("smartphones")
		assert.Equal(t, 1, next.Page)
		assert.Equal(t, "smartphones", next.Category)
		assert.Equal(t, "rating", next.Sort)
	})

	t.Run("clearing category resets page", func(t *testing.T) {
		next := q.WithCategory("")
		assert.Equal(t, 1, next.Page)
		assert.Empty(t, next.Category)
		assert.NotContains(t, next.Encode(), "category")
	})

	t.Run("sort change keeps page", func(t *testing.T) {
		next := q.WithSort("price-desc")
		assert.Equal(t, 4, next.Page)
		assert.Equal(t, "price-desc", next.Sort)
	})

	t.Run("encode", func(t *testing.T) {
		assert.Equal(t, "category=laptops&page=5&sort=rating", q.WithPage(5).Encode())
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, models.TotalPages(0, 12))
	assert.Equal(t, 1, models.TotalPages(12, 12))
	assert.Equal(t, 2, models.TotalPages(13, 12))
	assert.Equal(t, 17, models.TotalPages(194, 12))
	assert.Equal(t, 0, models.TotalPages(10, 0))
}

func TestIsCategorySlug(t *testing.T) {
	for _, slug := range []string{"laptops", "mens-shirts", "home-decoration", "mobile-accessories", "top3"} {
		assert.True(t, models.IsCategorySlug(slug), slug)
	}
	for _, slug := range []string{"", ".", "..", "../x", "a/b", "-laptops", "laptops-", "mens--shirts", "Laptops", "a b", "a%2F"} {
		assert.False(t, models.IsCategorySlug(slug), slug)
	}
}

func TestListQuery_Validation(t *testing.T) {
	validate := utils.NewValidator()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"defaults", "", false},
		{"category slug", "category=mens-shirts", false},
		{"last page", "page=10000", false},
		{"page past the last", "page=10001", true},
		{"page that overflows the offset", "page=922337203685477581&pageSize=100", true},
		{"dot dot category", "category=..", true},
		{"traversal category", "category=../carts", true},
		{"encoded slash category", "category=a%2Fb", true},
		{"page size too large", "pageSize=101", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			assert.NoError(t, err)

			err = utils.ValidateStruct(validate, models.ParseListQuery(values, models.DefaultPageSize))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
