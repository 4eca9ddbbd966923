package cli

import (
	"github.com/spf13/cobra"
)

// NewShopRootCmd creates the top-level "shophub" command and registers all
// storefront subcommands against app.
func NewShopRootCmd(app *ShopApp) *cobra.Command {
	cobra.EnableTraverseRunHooks = true

	root := &cobra.Command{
		Use:           "shophub",
		Short:         "Browse the catalog, fill a cart and check out from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return open(cmd, app.Open)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			printNotices(cmd, app.Notices)
		},
	}

	root.AddCommand(newSessionCmds(sessionDeps{
		binary:        "shophub",
		session:       app.session,
		isInteractive: app.IsInteractive,
	})...)
	root.AddCommand(
		newProductsCmd(app),
		newProductCmd(app),
		newCategoriesCmd(app),
		newCartCmd(app),
		newCheckoutCmd(app),
		newOrdersCmd(app),
	)
	return root
}
