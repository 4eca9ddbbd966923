package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/hubkit/internal/app"
	"github.com/alexanderramin/hubkit/internal/cli/formatter"
	"github.com/alexanderramin/hubkit/internal/demo"
	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/spf13/cobra"
)

// ShopApp holds the use cases behind the shophub commands.
type ShopApp struct {
	Session  app.SessionUseCase
	Cart     app.CartUseCase
	Checkout app.CheckoutUseCase
	Catalog  app.CatalogUseCase
	Notices  app.NotifyUseCase

	// IsInteractive reports whether stdin is a terminal. Nil means never,
	// so missing input is an error instead of a form.
	IsInteractive func() bool
	// Open, when set, runs before every command once flags are parsed and
	// fills in the use cases.
	Open func(ctx context.Context) error
}

// ProjectApp holds the use cases behind the projecthub commands.
type ProjectApp struct {
	Session  app.SessionUseCase
	Projects app.ProjectUseCase
	Tasks    app.TaskUseCase
	Insights app.InsightsUseCase
	Notices  app.NotifyUseCase

	IsInteractive func() bool
	Open          func(ctx context.Context) error
	// Now defaults to time.Now.
	Now func() time.Time
	// Names resolves user ids for display. Defaults to the signed-in user
	// and the demo team.
	Names formatter.NameFunc
}

func (a *ShopApp) session() app.SessionUseCase { return a.Session }
func (a *ProjectApp) session() app.SessionUseCase { return a.Session }

func isInteractive(fn func() bool) bool {
	return fn != nil && fn()
}

func (a *ProjectApp) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *ProjectApp) nameOf(id string) string {
	if a.Names != nil {
		return a.Names(id)
	}
	if u := a.Session.Current(); u != nil && u.ID == id {
		return u.Name
	}
	return demo.UserName(id)
}

// importTarget joins the project and task use cases for importer.Import.
type importTarget struct {
	app.ProjectUseCase
	app.TaskUseCase
}

// requireUser returns the signed-in user or an error telling how to sign in.
func requireUser(session app.SessionUseCase, binary string) (*domain.User, error) {
	u := session.Current()
	if u == nil {
		return nil, fmt.Errorf("%w: run '%s signin' first", domain.ErrUnauthenticated, binary)
	}
	return u, nil
}

// withSpinner runs fn, animating msg on stderr while it blocks when the
// session is interactive.
func withSpinner(cmd *cobra.Command, interactive bool, msg string, fn func() error) error {
	if !interactive {
		return fn()
	}
	stop := formatter.StartSpinner(cmd.ErrOrStderr(), msg)
	err := fn()
	stop()
	return err
}

// open runs fn before a command; subcommand hooks run after it.
func open(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(cmd.Context())
}

// printNotices writes the notifications still queued after a command.
func printNotices(cmd *cobra.Command, notices app.NotifyUseCase) {
	if notices == nil {
		return
	}
	if active := notices.Active(); len(active) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNotifications(active))
	}
}

// isCancelled reports whether err means the user aborted a form or a wait.
func isCancelled(err error) bool {
	return errors.Is(err, errFormAborted)
}
