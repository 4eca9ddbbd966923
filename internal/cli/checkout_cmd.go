package cli

import (
	"fmt"

	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/store"
	"github.com/spf13/cobra"
)

func newCheckoutCmd(app *ShopApp) *cobra.Command {
	var in store.CheckoutInput
	a := &in.ShippingAddress

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(app.Session, "shophub")
			if err != nil {
				return err
			}
			if app.Cart.TotalItems() == 0 {
				return domain.ErrEmptyCart
			}
			if a.Email == "" {
				a.Email = user.Email
			}
			if a.FullName == "" {
				a.FullName = user.Name
			}

			interactive := isInteractive(app.IsInteractive)
			if interactive && a.Validate() != nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCart(app.Cart.Items(), app.Checkout.Quote()))
				if err := checkoutForm(&in).Run(); err != nil {
					return formErr(cmd, err)
				}
			}

			var order domain.Order
			err = withSpinner(cmd, interactive, "Processing payment...", func() error {
				order, err = app.Checkout.PlaceOrder(cmd.Context(), in)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOrder(order))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&a.FullName, "name", "", "Recipient full name (default: account name)")
	f.StringVar(&a.Email, "email", "", "Contact email (default: account email)")
	f.StringVar(&a.Phone, "phone", "", "Contact phone")
	f.StringVar(&a.Address, "address", "", "Street address")
	f.StringVar(&a.City, "city", "", "City")
	f.StringVar(&a.State, "state", "", "State or region")
	f.StringVar(&a.ZipCode, "zip", "", "ZIP or postal code")
	f.StringVar(&a.Country, "country", "", "Country")
	f.StringVar(&in.PaymentMethod, "payment", store.PaymentCard, "Payment method: card or paypal")
	return cmd
}

func newOrdersCmd(app *ShopApp) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := requireUser(app.Session, "shophub")
			if err != nil {
				return err
			}
			orders, err := app.Checkout.Orders(cmd.Context(), user.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOrderList(orders))
			return nil
		},
	}
}
