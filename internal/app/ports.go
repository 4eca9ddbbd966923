// Package app declares the use cases the command layer drives and wires
// them to concrete stores over the configured storage backend.
package app

import (
	"context"
	"time"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/store"
)

type SessionUseCase interface {
	Current() *domain.User
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
	SignUp(ctx context.Context, email, password, name string) (*domain.User, error)
	SignOut(ctx context.Context) error
}

type CartUseCase interface {
	Items() []domain.CartItem
	TotalItems() int
	TotalPrice() domain.Cents
	AddItem(ctx context.Context, product domain.Product, qty int) error
	SetQuantity(ctx context.Context, productID string, qty int) error
	RemoveItem(ctx context.Context, productID string) error
	Clear(ctx context.Context) error
}

type CheckoutUseCase interface {
	Quote() domain.OrderSummary
	PlaceOrder(ctx context.Context, in store.CheckoutInput) (domain.Order, error)
	Orders(ctx context.Context, userID string) ([]domain.Order, error)
}

type CatalogUseCase interface {
	Products() []domain.Product
	Product(id string) (domain.Product, error)
	Categories() []string
}

type NotifyUseCase interface {
	Show(kind domain.NotificationKind, title, message string) domain.Notification
	Active() []domain.Notification
}

type ProjectUseCase interface {
	Projects() []domain.Project
	Project(id string) (domain.Project, error)
	Current() *domain.Project
	SetCurrent(ctx context.Context, id string) error
	CreateProject(ctx context.Context, in store.ProjectInput) (domain.Project, error)
	UpdateProject(ctx context.Context, id string, patch store.ProjectPatch) (domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

type TaskUseCase interface {
	Task(id string) (domain.Task, error)
	Tasks() []domain.Task
	FilterTasks(f store.TaskFilter) []domain.Task
	Board(f store.TaskFilter) domain.Board
	CreateTask(ctx context.Context, in store.TaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, patch store.TaskPatch) (domain.Task, error)
	MoveTask(ctx context.Context, id string, status domain.TaskStatus) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type InsightsUseCase interface {
	Stats(now time.Time, userID string) store.Dashboard
	Workload(projectID string) ([]store.MemberLoad, error)
}

var (
	_ SessionUseCase  = (*store.AuthStore)(nil)
	_ CartUseCase     = (*store.CartStore)(nil)
	_ CheckoutUseCase = (*store.Checkout)(nil)
	_ NotifyUseCase   = (*store.NotificationRelay)(nil)
	_ ProjectUseCase  = (*store.ProjectStore)(nil)
	_ TaskUseCase     = (*store.ProjectStore)(nil)
	_ InsightsUseCase = (*store.ProjectStore)(nil)
)
