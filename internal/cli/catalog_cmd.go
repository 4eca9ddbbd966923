package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/hubkit/internal/catalog"
	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/spf13/cobra"
)

func newProductsCmd(app *ShopApp) *cobra.Command {
	var search, category, minPrice, maxPrice, sortKey string

	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"ls"},
		Short:   "List products matching a search, category and price range",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := catalog.DefaultFilter()
			f.Search = search
			if category != "" {
				f.Category = category
			}
			f.Sort = catalog.SortKey(sortKey)

			var err error
			if f.MinPrice, err = parsePriceFlag("min", minPrice); err != nil {
				return err
			}
			if f.MaxPrice, err = parsePriceFlag("max", maxPrice); err != nil {
				return err
			}
			if err := f.Validate(); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProductList(catalog.Apply(app.Catalog.Products(), f)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Match name, description or tags")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category name")
	cmd.Flags().StringVar(&minPrice, "min", "0", "Minimum price in dollars")
	cmd.Flags().StringVar(&maxPrice, "max", "1000", "Maximum price in dollars")
	cmd.Flags().StringVar(&sortKey, "sort", string(catalog.SortFeatured), "Sort order: "+sortKeyList())
	return cmd
}

func sortKeyList() string {
	keys := make([]string, len(catalog.SortKeys))
	for i, k := range catalog.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

func parsePriceFlag(name, value string) (domain.Cents, error) {
	c, err := domain.ParseCents(value)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return c, nil
}

func newProductCmd(app *ShopApp) *cobra.Command {
	return &cobra.Command{
		Use:   "product ID",
		Short: "Show product details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Catalog.Product(args[0])
			if err != nil {
				return fmt.Errorf("product %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProduct(p))
			return nil
		},
	}
}

func newCategoriesCmd(app *ShopApp) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range app.Catalog.Categories() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
