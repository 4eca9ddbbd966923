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
	var hub *app.ProjectHub
	a := &cli.ProjectApp{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	a.Open = func(ctx context.Context) error {
		if rt, err = app.Start(ctx, "projecthub", cfg); err != nil {
			return err
		}
		if hub, err = rt.OpenProjectHub(ctx); err != nil {
			return err
		}
		if err := hub.Notices.Start(); err != nil {
			return err
		}
		a.Session = hub.Session
		a.Projects = hub.Projects
		a.Tasks = hub.Projects
		a.Insights = hub.Projects
		a.Notices = hub.Notices
		return nil
	}

	root := cli.NewProjectRootCmd(a)
	cfg.BindFlags(root.PersistentFlags())

	err = root.ExecuteContext(ctx)
	if hub != nil {
		hub.Notices.Stop()
	}
	if rt != nil {
		if cerr := rt.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
