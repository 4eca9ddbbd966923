// Package repository persists store collections into a storage.KV as JSON
// records. Every save overwrites the whole collection under its key.
package repository

import (
	"context"

	"github.com/alexanderramin/hubkit/internal/domain"
)

// Keys, relative to an application's namespace.
const (
	KeyUser           = "user"
	KeyCart           = "cart"
	KeyOrders         = "orders"
	KeyProjects       = "projects"
	KeyCurrentProject = "current_project"
)

type UserRepo interface {
	// Load returns nil without error when nobody is signed in.
	Load(ctx context.Context) (*domain.User, error)
	Save(ctx context.Context, u *domain.User) error
	Clear(ctx context.Context) error
}

type CartRepo interface {
	Load(ctx context.Context) ([]domain.CartItem, error)
	Save(ctx context.Context, items []domain.CartItem) error
}

type OrderRepo interface {
	List(ctx context.Context) ([]domain.Order, error)
	// SaveWithCart writes the order list and the cart in one multi-key write.
	SaveWithCart(ctx context.Context, orders []domain.Order, cart []domain.CartItem) error
}

type ProjectRepo interface {
	// Load reports found=false when no collection has been persisted yet.
	Load(ctx context.Context) (projects []domain.Project, found bool, err error)
	Save(ctx context.Context, projects []domain.Project) error
	LoadCurrent(ctx context.Context) (string, error)
	// SaveCurrent persists the selected project id; "" clears the selection.
	SaveCurrent(ctx context.Context, projectID string) error
	// SaveWithCurrent writes the collection and the selection in one
	// multi-key write.
	SaveWithCurrent(ctx context.Context, projects []domain.Project, currentID string) error
}
