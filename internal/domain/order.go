package domain

import (
	"fmt"
	"strings"
	"time"
)

type ShippingAddress struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	ZipCode  string
	Country  string
}

// Validate checks that every address field is filled in.
func (a ShippingAddress) Validate() error {
	required := []struct {
		name, value string
	}{
		{"full name", a.FullName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"zip code", a.ZipCode},
		{"country", a.Country},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: shipping %s required", ErrValidation, strings.Join(missing, ", "))
	}
	if !strings.Contains(a.Email, "@") {
		return fmt.Errorf("%w: shipping email %q is not an email address", ErrValidation, a.Email)
	}
	return nil
}

type OrderSummary struct {
	Subtotal Cents
	Shipping Cents
	Tax      Cents
	Total    Cents
}

type Order struct {
	ID              string
	UserID          string
	Items           []CartItem
	Summary         OrderSummary
	ShippingAddress ShippingAddress
	PaymentMethod   string
	Status          OrderStatus
	CreatedAt       time.Time
}

// ItemCount is the sum of quantities across the order's items.
func (o *Order) ItemCount() int {
	var n int
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// DisplayID truncates ID to 8 characters for display.
func (o *Order) DisplayID() string {
	if len(o.ID) >= 8 {
		return o.ID[:8]
	}
	return o.ID
}
