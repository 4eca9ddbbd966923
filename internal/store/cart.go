package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/repository"
)

// CartStore holds the cart, at most one entry per product. Quantities never
// exceed the product's stock.
type CartStore struct {
	mu    sync.Mutex
	repo  repository.CartRepo
	items []domain.CartItem
	opts  options
}

// OpenCartStore loads the persisted cart, or starts empty.
func OpenCartStore(ctx context.Context, repo repository.CartRepo, opts ...Option) (*CartStore, error) {
	items, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	return &CartStore{repo: repo, items: items, opts: buildOptions(0, opts)}, nil
}

// Items returns a copy of the cart in insertion order.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// TotalItems is the sum of quantities.
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of unit price times quantity.
func (s *CartStore) TotalPrice() domain.Cents {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.items)
}

// AddItem adds qty units of product, merging with an existing entry. The
// resulting quantity is clamped to the product's stock.
func (s *CartStore) AddItem(ctx context.Context, product domain.Product, qty int) error {
	fields := map[string]any{"product_id": product.ID, "quantity": qty}
	return s.mutate(ctx, "add-to-cart", fields, func(items []domain.CartItem) ([]domain.CartItem, error) {
		if qty <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
		}
		if !product.InStock() {
			return nil, fmt.Errorf("%s: %w", product.Name, domain.ErrOutOfStock)
		}
		if i := indexOf(items, product.ID); i >= 0 {
			items[i].Product = product.Clone()
			items[i].Quantity = min(items[i].Quantity+qty, product.Stock)
			fields["resulting_quantity"] = items[i].Quantity
			return items, nil
		}
		return append(items, domain.CartItem{Product: product.Clone(), Quantity: min(qty, product.Stock)}), nil
	})
}

// SetQuantity replaces an entry's quantity; qty <= 0 removes the entry.
func (s *CartStore) SetQuantity(ctx context.Context, productID string, qty int) error {
	fields := map[string]any{"product_id": productID, "quantity": qty}
	return s.mutate(ctx, "set-cart-quantity", fields, func(items []domain.CartItem) ([]domain.CartItem, error) {
		i := indexOf(items, productID)
		if i < 0 {
			return nil, fmt.Errorf("cart item %s: %w", productID, domain.ErrNotFound)
		}
		qty = min(qty, items[i].Product.Stock)
		if qty <= 0 {
			return append(items[:i], items[i+1:]...), nil
		}
		items[i].Quantity = qty
		return items, nil
	})
}

// RemoveItem deletes the entry for productID; absent products are a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) error {
	fields := map[string]any{"product_id": productID}
	return s.mutate(ctx, "remove-from-cart", fields, func(items []domain.CartItem) ([]domain.CartItem, error) {
		if i := indexOf(items, productID); i >= 0 {
			return append(items[:i], items[i+1:]...), nil
		}
		return items, nil
	})
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear-cart", nil, func([]domain.CartItem) ([]domain.CartItem, error) {
		return []domain.CartItem{}, nil
	})
}

// mutate applies fn to a copy of the items, persists the result, and commits
// it only when the save succeeds.
func (s *CartStore) mutate(ctx context.Context, name string, fields map[string]any, fn func([]domain.CartItem) ([]domain.CartItem, error)) (err error) {
	done := observe(ctx, s.opts, name, fields)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(cloneItems(s.items))
	if err != nil {
		return err
	}
	if err = s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.items = next
	return nil
}

// drain hands the current items to persist, which must durably record them
// together with an empty cart. The cart is emptied only when persist succeeds.
func (s *CartStore) drain(persist func(items []domain.CartItem) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) == 0 {
		return domain.ErrEmptyCart
	}
	if err := persist(cloneItems(s.items)); err != nil {
		return err
	}
	s.items = []domain.CartItem{}
	return nil
}

func indexOf(items []domain.CartItem, productID string) int {
	for i := range items {
		if items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func cloneItems(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

func subtotal(items []domain.CartItem) domain.Cents {
	var total domain.Cents
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
