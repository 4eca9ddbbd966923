package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/repository"
	"github.com/google/uuid"
)

const (
	freeShippingOver domain.Cents = 5000
	flatShipping     domain.Cents = 999
	taxPercent                    = 8
)

// Payment methods accepted at checkout. No payment is processed.
const (
	PaymentCard   = "card"
	PaymentPayPal = "paypal"
)

// Summarize prices an order: shipping is free strictly above $50.00, tax is
// 8% of the subtotal rounded to the cent.
func Summarize(subtotal domain.Cents) domain.OrderSummary {
	s := domain.OrderSummary{Subtotal: subtotal, Shipping: flatShipping, Tax: subtotal.Percent(taxPercent)}
	if subtotal > freeShippingOver {
		s.Shipping = 0
	}
	s.Total = s.Subtotal + s.Shipping + s.Tax
	return s
}

// CheckoutInput is what the buyer fills in.
type CheckoutInput struct {
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
}

// Checkout turns the cart of the signed-in user into an order.
type Checkout struct {
	mu      sync.Mutex
	auth    *AuthStore
	cart    *CartStore
	orders  repository.OrderRepo
	notices *NotificationRelay
	opts    options
}

func NewCheckout(auth *AuthStore, cart *CartStore, orders repository.OrderRepo, notices *NotificationRelay, opts ...Option) *Checkout {
	return &Checkout{
		auth:    auth,
		cart:    cart,
		orders:  orders,
		notices: notices,
		opts:    buildOptions(DefaultCheckoutDelay, opts),
	}
}

// Quote prices the current cart without placing an order.
func (c *Checkout) Quote() domain.OrderSummary {
	return Summarize(c.cart.TotalPrice())
}

// PlaceOrder validates the input, waits for the simulated payment, then
// records the order and empties the cart in one write.
func (c *Checkout) PlaceOrder(ctx context.Context, in CheckoutInput) (order domain.Order, err error) {
	fields := map[string]any{"payment_method": in.PaymentMethod}
	done := observe(ctx, c.opts, "place-order", fields)
	defer func() { done(err) }()

	user := c.auth.Current()
	if user == nil {
		return domain.Order{}, domain.ErrUnauthenticated
	}
	if c.cart.TotalItems() == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}
	if err = in.ShippingAddress.Validate(); err != nil {
		return domain.Order{}, err
	}
	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	if method != PaymentCard && method != PaymentPayPal {
		return domain.Order{}, fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, in.PaymentMethod)
	}
	if err = wait(ctx, c.opts.delay); err != nil {
		return domain.Order{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.cart.drain(func(items []domain.CartItem) error {
		existing, err := c.orders.List(ctx)
		if err != nil {
			return err
		}
		order = domain.Order{
			ID:              uuid.New().String(),
			UserID:          user.ID,
			Items:           items,
			Summary:         Summarize(subtotal(items)),
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   method,
			Status:          domain.OrderProcessing,
			CreatedAt:       c.opts.now(),
		}
		return c.orders.SaveWithCart(ctx, append(existing, order), []domain.CartItem{})
	})
	if err != nil {
		return domain.Order{}, err
	}

	fields["order_id"] = order.ID
	fields["total_cents"] = int64(order.Summary.Total)
	if c.notices != nil {
		c.notices.Show(domain.NotifySuccess, "Order placed successfully!",
			"Thank you for your purchase. You will receive an email confirmation shortly.")
	}
	return order, nil
}

// Orders returns userID's orders, newest first.
func (c *Checkout) Orders(ctx context.Context, userID string) ([]domain.Order, error) {
	all, err := c.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []domain.Order
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].UserID == userID {
			out = append(out, all[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
