package repository

import (
	"fmt"

	"github.com/alexanderramin/hubkit/internal/domain"
)

// Stored shapes. Dates are strings so they survive any backend unchanged
// and are parsed back explicitly on load.

type userRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type productRecord struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         int64    `json:"priceCents"`
	OriginalPrice *int64   `json:"originalPriceCents,omitempty"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Stock         int      `json:"stock"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Tags          []string `json:"tags"`
	Featured      bool     `json:"featured,omitempty"`
}

type cartItemRecord struct {
	Product  productRecord `json:"product"`
	Quantity int           `json:"quantity"`
}

type addressRecord struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

type orderRecord struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	Items           []cartItemRecord `json:"items"`
	Subtotal        int64            `json:"subtotalCents"`
	Shipping        int64            `json:"shippingCents"`
	Tax             int64            `json:"taxCents"`
	Total           int64            `json:"totalCents"`
	ShippingAddress addressRecord    `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	Status          string           `json:"status"`
	CreatedAt       string           `json:"createdAt"`
}

type taskRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	AssigneeID     string   `json:"assigneeId,omitempty"`
	ProjectID      string   `json:"projectId"`
	DueDate        string   `json:"dueDate,omitempty"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
	ActualHours    *float64 `json:"actualHours,omitempty"`
	Tags           []string `json:"tags"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

type projectRecord struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	Progress    float64      `json:"progress"`
	OwnerID     string       `json:"ownerId"`
	TeamMembers []string     `json:"teamMembers"`
	Tasks       []taskRecord `json:"tasks"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

func userToRecord(u *domain.User) userRecord {
	return userRecord{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Avatar:    u.Avatar,
		CreatedAt: formatTimestamp(u.CreatedAt),
	}
}

func (r userRecord) toDomain() (*domain.User, error) {
	created, err := parseTimestamp("user createdAt", r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Role:      domain.Role(r.Role),
		Avatar:    r.Avatar,
		CreatedAt: created,
	}, nil
}

func productToRecord(p domain.Product) productRecord {
	rec := productRecord{
		ID:          p.ID,
		Name:        p.Name,
		Price:       int64(p.Price),
		Description: p.Description,
		Images:      domain.CloneStrings(p.Images),
		Category:    p.Category,
		Stock:       p.Stock,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Tags:        domain.CloneStrings(p.Tags),
		Featured:    p.Featured,
	}
	if p.OriginalPrice != nil {
		v := int64(*p.OriginalPrice)
		rec.OriginalPrice = &v
	}
	return rec
}

func (r productRecord) toDomain() domain.Product {
	p := domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       domain.Cents(r.Price),
		Description: r.Description,
		Images:      r.Images,
		Category:    r.Category,
		Stock:       r.Stock,
		Rating:      r.Rating,
		Reviews:     r.Reviews,
		Tags:        r.Tags,
		Featured:    r.Featured,
	}
	if r.OriginalPrice != nil {
		v := domain.Cents(*r.OriginalPrice)
		p.OriginalPrice = &v
	}
	return p
}

func cartToRecords(items []domain.CartItem) []cartItemRecord {
	out := make([]cartItemRecord, 0, len(items))
	for _, it := range items {
		out = append(out, cartItemRecord{Product: productToRecord(it.Product), Quantity: it.Quantity})
	}
	return out
}

func cartFromRecords(recs []cartItemRecord) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(recs))
	for _, r := range recs {
		out = append(out, domain.CartItem{Product: r.Product.toDomain(), Quantity: r.Quantity})
	}
	return out
}

func orderToRecord(o domain.Order) orderRecord {
	a := o.ShippingAddress
	return orderRecord{
		ID:       o.ID,
		UserID:   o.UserID,
		Items:    cartToRecords(o.Items),
		Subtotal: int64(o.Summary.Subtotal),
		Shipping: int64(o.Summary.Shipping),
		Tax:      int64(o.Summary.Tax),
		Total:    int64(o.Summary.Total),
		ShippingAddress: addressRecord{
			FullName: a.FullName, Email: a.Email, Phone: a.Phone, Address: a.Address,
			City: a.City, State: a.State, ZipCode: a.ZipCode, Country: a.Country,
		},
		PaymentMethod: o.PaymentMethod,
		Status:        string(o.Status),
		CreatedAt:     formatTimestamp(o.CreatedAt),
	}
}

func (r orderRecord) toDomain() (domain.Order, error) {
	created, err := parseTimestamp("order createdAt", r.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %s: %w", r.ID, err)
	}
	a := r.ShippingAddress
	return domain.Order{
		ID:     r.ID,
		UserID: r.UserID,
		Items:  cartFromRecords(r.Items),
		Summary: domain.OrderSummary{
			Subtotal: domain.Cents(r.Subtotal),
			Shipping: domain.Cents(r.Shipping),
			Tax:      domain.Cents(r.Tax),
			Total:    domain.Cents(r.Total),
		},
		ShippingAddress: domain.ShippingAddress{
			FullName: a.FullName, Email: a.Email, Phone: a.Phone, Address: a.Address,
			City: a.City, State: a.State, ZipCode: a.ZipCode, Country: a.Country,
		},
		PaymentMethod: r.PaymentMethod,
		Status:        domain.OrderStatus(r.Status),
		CreatedAt:     created,
	}, nil
}

func taskToRecord(t domain.Task) taskRecord {
	return taskRecord{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         string(t.Status),
		Priority:       string(t.Priority),
		AssigneeID:     t.AssigneeID,
		ProjectID:      t.ProjectID,
		DueDate:        optionalTimeToString(t.DueDate, dateLayout),
		EstimatedHours: domain.CloneFloatPtr(t.EstimatedHours),
		ActualHours:    domain.CloneFloatPtr(t.ActualHours),
		Tags:           domain.CloneStrings(t.Tags),
		CreatedAt:      formatTimestamp(t.CreatedAt),
		UpdatedAt:      formatTimestamp(t.UpdatedAt),
	}
}

func (r taskRecord) toDomain() (domain.Task, error) {
	t := domain.Task{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Status:         domain.TaskStatus(r.Status),
		Priority:       domain.Priority(r.Priority),
		AssigneeID:     r.AssigneeID,
		ProjectID:      r.ProjectID,
		EstimatedHours: r.EstimatedHours,
		ActualHours:    r.ActualHours,
		Tags:           r.Tags,
	}
	var err error
	if t.DueDate, err = parseOptionalTime(r.DueDate, dateLayout); err != nil {
		return domain.Task{}, fmt.Errorf("task %s: parsing dueDate: %w", r.ID, err)
	}
	if t.CreatedAt, err = parseTimestamp("createdAt", r.CreatedAt); err != nil {
		return domain.Task{}, fmt.Errorf("task %s: %w", r.ID, err)
	}
	if t.UpdatedAt, err = parseTimestamp("updatedAt", r.UpdatedAt); err != nil {
		return domain.Task{}, fmt.Errorf("task %s: %w", r.ID, err)
	}
	return t, nil
}

func projectToRecord(p domain.Project) projectRecord {
	tasks := make([]taskRecord, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, taskToRecord(t))
	}
	return projectRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		Priority:    string(p.Priority),
		StartDate:   p.StartDate.Format(dateLayout),
		EndDate:     p.EndDate.Format(dateLayout),
		Progress:    p.Progress,
		OwnerID:     p.OwnerID,
		TeamMembers: domain.CloneStrings(p.TeamMembers),
		Tasks:       tasks,
		CreatedAt:   formatTimestamp(p.CreatedAt),
		UpdatedAt:   formatTimestamp(p.UpdatedAt),
	}
}

// toDomain rehydrates a project. Stored progress is ignored and recomputed
// from the tasks.
func (r projectRecord) toDomain() (domain.Project, error) {
	p := domain.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Status:      domain.ProjectStatus(r.Status),
		Priority:    domain.Priority(r.Priority),
		OwnerID:     r.OwnerID,
		TeamMembers: r.TeamMembers,
	}
	var err error
	if p.StartDate, err = parseDate("startDate", r.StartDate); err != nil {
		return domain.Project{}, fmt.Errorf("project %s: %w", r.ID, err)
	}
	if p.EndDate, err = parseDate("endDate", r.EndDate); err != nil {
		return domain.Project{}, fmt.Errorf("project %s: %w", r.ID, err)
	}
	if p.CreatedAt, err = parseTimestamp("createdAt", r.CreatedAt); err != nil {
		return domain.Project{}, fmt.Errorf("project %s: %w", r.ID, err)
	}
	if p.UpdatedAt, err = parseTimestamp("updatedAt", r.UpdatedAt); err != nil {
		return domain.Project{}, fmt.Errorf("project %s: %w", r.ID, err)
	}
	p.Tasks = make([]domain.Task, 0, len(r.Tasks))
	for _, tr := range r.Tasks {
		t, err := tr.toDomain()
		if err != nil {
			return domain.Project{}, fmt.Errorf("project %s: %w", r.ID, err)
		}
		p.Tasks = append(p.Tasks, t)
	}
	p.RecomputeProgress()
	return p, nil
}
