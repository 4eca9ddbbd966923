package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is an amount of money in hundredths of the currency unit.
type Cents int64

// Dollars returns the amount as a float, for display and ratios only.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// String formats the amount as "$19.99".
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, int64(c)/100, int64(c)%100)
}

// Mul multiplies the amount by a quantity.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

// Percent returns pct percent of c, rounded half away from zero to the cent.
func (c Cents) Percent(pct float64) Cents {
	return Cents(math.Round(float64(c) * pct / 100))
}

// ParseCents parses a dollar amount like "19.99", "$5" or "1000".
func ParseCents(s string) (Cents, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "$")
	if raw == "" {
		return 0, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return Cents(math.Round(f * 100)), nil
}
