package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopSignInAndWhoAmI(t *testing.T) {
	f := newShopFixture(t)

	out, err := f.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in. Run 'shophub signin'.")

	out, err = f.run(t, "signin", "--email", "ada@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as ada <ada@example.com>")

	out, err = f.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "user")

	out, err = f.run(t, "signout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")
	assert.Nil(t, f.session.Current())
}

func TestShopSignInRequiresFlagsWithoutTerminal(t *testing.T) {
	f := newShopFixture(t)

	_, err := f.run(t, "signin", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--email and --password are required")
}

func TestShopSignUp(t *testing.T) {
	f := newShopFixture(t)

	out, err := f.run(t, "signup", "--name", "Ada Lovelace", "--email", "ada@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Ada Lovelace <ada@example.com>")
}

func TestShopProducts(t *testing.T) {
	f := newShopFixture(t)

	out, err := f.run(t, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "PRODUCTS (8)")
	assert.Contains(t, out, "Premium Wireless Headphones")

	out, err = f.run(t, "products", "--category", "Fashion", "--sort", "price-low")
	require.NoError(t, err)
	assert.Contains(t, out, "PRODUCTS (2)")
	assert.Contains(t, out, "Organic Cotton T-Shirt")
	assert.NotContains(t, out, "Headphones")
	assert.Less(t, strings.Index(out, "Organic Cotton T-Shirt"), strings.Index(out, "Minimalist Leather Backpack"))

	_, err = f.run(t, "products", "--min", "abc")
	require.Error(t, err)
}

func TestShopProductAndCategories(t *testing.T) {
	f := newShopFixture(t)

	out, err := f.run(t, "product", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Minimalist Leather Backpack")
	assert.Contains(t, out, "-21%")

	_, err = f.run(t, "product", "99")
	require.ErrorIs(t, err, domain.ErrNotFound)

	out, err = f.run(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Electronics\nFashion\nLifestyle\nFood & Drink\n")
}

func TestShopCartLifecycle(t *testing.T) {
	f := newShopFixture(t)

	out, err := f.run(t, "cart")
	require.NoError(t, err)
	assert.Contains(t, out, "Your cart is empty.")

	out, err = f.run(t, "cart", "add", "8", "--qty", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart: 2 item(s), $39.98")
	assert.Contains(t, out, "Added to cart")
	assert.Contains(t, out, "2 x Artisan Coffee Beans added to your cart")

	out, err = f.run(t, "cart", "set", "8", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart: 3 item(s), $59.97")

	out, err = f.run(t, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Artisan Coffee Beans")
	assert.Contains(t, out, "$59.97")

	_, err = f.run(t, "cart", "remove", "1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	out, err = f.run(t, "cart", "rm", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "Artisan Coffee Beans removed from cart")
	assert.Equal(t, 0, f.cart.TotalItems())

	_, err = f.run(t, "cart", "set", "8", "many")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid quantity "many"`)
}

func TestShopCartClear(t *testing.T) {
	f := newShopFixture(t)
	_, err := f.run(t, "cart", "add", "1")
	require.NoError(t, err)

	out, err := f.run(t, "cart", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart cleared")
	assert.Empty(t, f.cart.Items())
}

func TestShopCheckout(t *testing.T) {
	f := newShopFixture(t)

	_, err := f.run(t, "checkout")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Contains(t, err.Error(), "run 'shophub signin' first")

	_, err = f.session.SignIn(context.Background(), "ada@example.com", "pw")
	require.NoError(t, err)

	_, err = f.run(t, "checkout")
	require.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = f.run(t, "cart", "add", "8")
	require.NoError(t, err)

	_, err = f.run(t, "checkout", "--phone", "555-0100")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 1, f.cart.TotalItems(), "a rejected order keeps the cart")

	out, err := f.run(t, "checkout",
		"--phone", "555-0100", "--address", "12 Analytical Way", "--city", "London",
		"--state", "LDN", "--zip", "N1 9GU", "--country", "UK", "--payment", "paypal")
	require.NoError(t, err)
	assert.Contains(t, out, "ORDER PLACED")
	assert.Contains(t, out, "1 x Artisan Coffee Beans")
	assert.Contains(t, out, "$31.58")
	assert.Contains(t, out, "Paid by paypal")
	assert.Contains(t, out, "Order placed successfully!")
	assert.Equal(t, 0, f.cart.TotalItems())

	out, err = f.run(t, "orders")
	require.NoError(t, err)
	assert.Contains(t, out, "$31.58")
}

func TestShopOrdersRequireSignIn(t *testing.T) {
	f := newShopFixture(t)

	_, err := f.run(t, "orders")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}
