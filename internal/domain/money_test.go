package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCents_String(t *testing.T) {
	assert.Equal(t, "$19.99", Cents(1999).String())
	assert.Equal(t, "$0.05", Cents(5).String())
	assert.Equal(t, "$1000.00", Cents(100000).String())
	assert.Equal(t, "-$9.99", Cents(-999).String())
}

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want Cents
	}{
		{"19.99", 1999},
		{"$5", 500},
		{" 1000 ", 100000},
		{"0.1", 10},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCents(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	for _, bad := range []string{"", "abc", "$", "NaN"} {
		_, err := ParseCents(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestCents_Percent(t *testing.T) {
	assert.Equal(t, Cents(160), Cents(1999).Percent(8))
	assert.Equal(t, Cents(0), Cents(0).Percent(8))
	assert.Equal(t, Cents(2400), Cents(29999).Percent(8))
}

func TestProduct_DiscountPct(t *testing.T) {
	orig := Cents(39999)
	p := Product{Price: 29999, OriginalPrice: &orig}
	assert.Equal(t, 25, p.DiscountPct())

	p.OriginalPrice = nil
	assert.Equal(t, 0, p.DiscountPct())

	lower := Cents(100)
	p.OriginalPrice = &lower
	assert.Equal(t, 0, p.DiscountPct(), "no discount when original price is lower")
}
