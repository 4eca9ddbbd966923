package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/store"
	"github.com/spf13/cobra"
)

func newCartCmd(app *ShopApp) *cobra.Command {
	show := func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCart(app.Cart.Items(), store.Summarize(app.Cart.TotalPrice())))
		return nil
	}

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and change the shopping cart",
		Args:  cobra.NoArgs,
		RunE:  show,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart with its totals",
			Args:  cobra.NoArgs,
			RunE:  show,
		},
		newCartAddCmd(app),
		newCartSetCmd(app),
		newCartRemoveCmd(app),
		newCartClearCmd(app),
	)
	return cmd
}

func newCartAddCmd(app *ShopApp) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add PRODUCT_ID",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Catalog.Product(args[0])
			if err != nil {
				return fmt.Errorf("product %q: %w", args[0], err)
			}
			if err := app.Cart.AddItem(cmd.Context(), p, qty); err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Added to cart",
				fmt.Sprintf("%d x %s added to your cart", qty, p.Name))
			fmt.Fprintf(cmd.OutOrStdout(), "Cart: %d item(s), %s\n", app.Cart.TotalItems(), app.Cart.TotalPrice())
			return nil
		},
	}

	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "Quantity to add")
	return cmd
}

func newCartSetCmd(app *ShopApp) *cobra.Command {
	return &cobra.Command{
		Use:   "set PRODUCT_ID QTY",
		Short: "Set the quantity of a cart line; 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			if err := app.Cart.SetQuantity(cmd.Context(), args[0], qty); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cart: %d item(s), %s\n", app.Cart.TotalItems(), app.Cart.TotalPrice())
			return nil
		},
	}
}

func newCartRemoveCmd(app *ShopApp) *cobra.Command {
	return &cobra.Command{
		Use:     "remove PRODUCT_ID",
		Aliases: []string{"rm"},
		Short:   "Remove a product from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			for _, it := range app.Cart.Items() {
				if it.Product.ID == args[0] {
					name = it.Product.Name
				}
			}
			if name == "" {
				return fmt.Errorf("product %q is not in the cart: %w", args[0], domain.ErrNotFound)
			}
			if err := app.Cart.RemoveItem(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Item removed", name+" removed from cart")
			return nil
		},
	}
}

func newCartClearCmd(app *ShopApp) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Cart.Clear(cmd.Context()); err != nil {
				return err
			}
			app.Notices.Show(domain.NotifySuccess, "Cart cleared", "All items removed from cart")
			return nil
		},
	}
}
