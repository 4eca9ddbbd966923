package catalog

import (
	"strings"
	"testing"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultProducts(t *testing.T) []domain.Product {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c.Products()
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply_SearchCoffeeWithDefaults(t *testing.T) {
	f := DefaultFilter()
	f.Search = "coffee"

	got := Apply(defaultProducts(t), f)
	require.Len(t, got, 1)
	assert.Equal(t, "Artisan Coffee Beans", got[0].Name)
}

func TestApply_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	products := defaultProducts(t)

	tests := []struct {
		search string
		want   []string
	}{
		{"HEADPHONES", []string{"1"}},
		{"bokeh", []string{"4"}},
		{"eco-friendly", []string{"6"}},
		{"audio", []string{"1", "7"}},
		{"does-not-exist", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			f := DefaultFilter()
			f.Search = tt.search
			got := Apply(products, f)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestApply_SearchResultsContainQuery(t *testing.T) {
	for _, q := range []string{"premium", "Leather", "o", "travel"} {
		f := DefaultFilter()
		f.Search = q
		for _, p := range Apply(defaultProducts(t), f) {
			hay := strings.ToLower(p.Name + "\x00" + p.Description + "\x00" + strings.Join(p.Tags, "\x00"))
			assert.Contains(t, hay, strings.ToLower(q), "product %s", p.ID)
		}
	}
}

func TestApply_Category(t *testing.T) {
	f := DefaultFilter()
	f.Category = "Fashion"

	assert.ElementsMatch(t, []string{"3", "5"}, ids(Apply(defaultProducts(t), f)))
}

func TestApply_PriceRangeInclusive(t *testing.T) {
	products := defaultProducts(t)
	ranges := []struct{ min, max domain.Cents }{
		{0, 100000},
		{2499, 7999},
		{1999, 1999},
		{50000, 100000},
		{0, 0},
	}
	for _, r := range ranges {
		f := DefaultFilter()
		f.MinPrice, f.MaxPrice = r.min, r.max
		for _, p := range Apply(products, f) {
			assert.GreaterOrEqual(t, p.Price, r.min)
			assert.LessOrEqual(t, p.Price, r.max)
		}
	}

	f := DefaultFilter()
	f.MinPrice, f.MaxPrice = 2499, 7999
	assert.ElementsMatch(t, []string{"5", "6", "7"}, ids(Apply(products, f)))
}

func TestApply_Sorts(t *testing.T) {
	products := defaultProducts(t)

	t.Run("featured first, stable", func(t *testing.T) {
		got := ids(Apply(products, DefaultFilter()))
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, got)
	})

	t.Run("price-low non-decreasing", func(t *testing.T) {
		f := DefaultFilter()
		f.Sort = SortPriceLow
		got := Apply(products, f)
		for i := 1; i < len(got); i++ {
			assert.LessOrEqual(t, got[i-1].Price, got[i].Price)
		}
		assert.Equal(t, "8", got[0].ID)
	})

	t.Run("price-high non-increasing", func(t *testing.T) {
		f := DefaultFilter()
		f.Sort = SortPriceHigh
		got := Apply(products, f)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Price, got[i].Price)
		}
		assert.Equal(t, "4", got[0].ID)
	})

	t.Run("rating descending", func(t *testing.T) {
		f := DefaultFilter()
		f.Sort = SortRating
		got := Apply(products, f)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, got[i-1].Rating, got[i].Rating)
		}
	})

	t.Run("newest compares ids numerically", func(t *testing.T) {
		extra := append([]domain.Product{}, products...)
		extra = append(extra, domain.Product{ID: "10", Name: "Tenth", Price: 100})
		f := DefaultFilter()
		f.Sort = SortNewest
		got := ids(Apply(extra, f))
		assert.Equal(t, []string{"10", "8", "7", "6", "5", "4", "3", "2", "1"}, got)
	})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := defaultProducts(t)
	before := ids(products)

	f := DefaultFilter()
	f.Sort = SortPriceHigh
	_ = Apply(products, f)

	assert.Equal(t, before, ids(products))
}

func TestFilter_Validate(t *testing.T) {
	assert.NoError(t, DefaultFilter().Validate())

	f := DefaultFilter()
	f.MinPrice, f.MaxPrice = 500, 100
	assert.ErrorIs(t, f.Validate(), domain.ErrValidation)

	f = DefaultFilter()
	f.Sort = "popularity"
	assert.ErrorIs(t, f.Validate(), domain.ErrValidation)
}
