package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/hubkit/internal/app"
	"github.com/alexanderramin/hubkit/internal/cli"
	"github.com/alexanderramin/hubkit/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rt *app.Runtime
	var shop *app.Shop
	a := &cli.ShopApp{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	// Storage is opened after flag parsing so --backend and --db apply.
	a.Open = func(ctx context.Context) error {
		if rt, err = app.Start(ctx, "shophub", cfg); err != nil {
			return err
		}
		if shop, err = rt.OpenShop(ctx); err != nil {
			return err
		}
		if err := shop.Notices.Start(); err != nil {
			return err
		}
		a.Session = shop.Session
		a.Cart = shop.Cart
		a.Checkout = shop.Checkout
		a.Catalog = shop.Catalog
		a.Notices = shop.Notices
		return nil
	}

	root := cli.NewShopRootCmd(a)
	cfg.BindFlags(root.PersistentFlags())

	err = root.ExecuteContext(ctx)
	if shop != nil {
		shop.Notices.Stop()
	}
	if rt != nil {
		if cerr := rt.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
