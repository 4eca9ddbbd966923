package domain

type CartItem struct {
	Product  Product
	Quantity int
}

// Subtotal is the unit price times the quantity.
func (i CartItem) Subtotal() Cents {
	return i.Product.Price.Mul(i.Quantity)
}

func (i CartItem) Clone() CartItem {
	return CartItem{Product: i.Product.Clone(), Quantity: i.Quantity}
}
