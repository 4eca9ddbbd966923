package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/hubkit/internal/catalog"
	"github.com/alexanderramin/hubkit/internal/demo"
	"github.com/alexanderramin/hubkit/internal/repository"
	"github.com/alexanderramin/hubkit/internal/storage"
	"github.com/alexanderramin/hubkit/internal/store"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// fixedNow is late enough that every demo deadline has passed.
var fixedNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

type shopFixture struct {
	app      *ShopApp
	session  *store.AuthStore
	cart     *store.CartStore
	checkout *store.Checkout
}

func newShopFixture(t *testing.T) *shopFixture {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	session, err := store.OpenAuthStore(ctx, repository.NewKVUserRepo(kv), store.ShopRoles, store.WithDelay(0))
	require.NoError(t, err)
	cart, err := store.OpenCartStore(ctx, repository.NewKVCartRepo(kv))
	require.NoError(t, err)
	notices := store.NewNotificationRelay()
	checkout := store.NewCheckout(session, cart, repository.NewKVOrderRepo(kv), notices, store.WithDelay(0))
	cat, err := catalog.Default()
	require.NoError(t, err)

	return &shopFixture{
		app: &ShopApp{
			Session:  session,
			Cart:     cart,
			Checkout: checkout,
			Catalog:  cat,
			Notices:  notices,
		},
		session:  session,
		cart:     cart,
		checkout: checkout,
	}
}

func (f *shopFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(NewShopRootCmd(f.app), args...)
}

type projectFixture struct {
	app      *ProjectApp
	session  *store.AuthStore
	projects *store.ProjectStore
}

func newProjectFixture(t *testing.T) *projectFixture {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemoryKV()

	policy := store.ProjectRoles
	policy.Directory = demo.Users()
	session, err := store.OpenAuthStore(ctx, repository.NewKVUserRepo(kv), policy, store.WithDelay(0))
	require.NoError(t, err)
	projects, err := store.OpenProjectStore(ctx, repository.NewKVProjectRepo(kv),
		store.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	return &projectFixture{
		app: &ProjectApp{
			Session:  session,
			Projects: projects,
			Tasks:    projects,
			Insights: projects,
			Notices:  store.NewNotificationRelay(),
			Now:      func() time.Time { return fixedNow },
		},
		session:  session,
		projects: projects,
	}
}

func (f *projectFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(NewProjectRootCmd(f.app), args...)
}

func (f *projectFixture) signIn(t *testing.T, email string) {
	t.Helper()
	_, err := f.session.SignIn(context.Background(), email, "secret")
	require.NoError(t, err)
}

func execute(root *cobra.Command, args ...string) (string, error) {
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}
