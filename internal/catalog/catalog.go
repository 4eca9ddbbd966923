// Package catalog holds the storefront's static product list and the pure
// filter-and-sort pipeline over it.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/alexanderramin/hubkit/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is read-only reference data.
type Catalog struct {
	products   []domain.Product
	byID       map[string]int
	categories []string
}

type catalogFile struct {
	Categories []string      `yaml:"categories"`
	Products   []productYAML `yaml:"products"`
}

type productYAML struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Price         string   `yaml:"price"`
	OriginalPrice string   `yaml:"original_price"`
	Description   string   `yaml:"description"`
	Images        []string `yaml:"images"`
	Category      string   `yaml:"category"`
	Stock         int      `yaml:"stock"`
	Rating        float64  `yaml:"rating"`
	Reviews       int      `yaml:"reviews"`
	Tags          []string `yaml:"tags"`
	Featured      bool     `yaml:"featured"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(f.Products)), categories: f.Categories}
	for _, py := range f.Products {
		p, err := py.toDomain()
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", py.ID, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %s", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

func (py productYAML) toDomain() (domain.Product, error) {
	if py.ID == "" {
		return domain.Product{}, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	if py.Stock < 0 {
		return domain.Product{}, fmt.Errorf("%w: stock must not be negative", domain.ErrValidation)
	}
	if py.Rating < 0 || py.Rating > 5 {
		return domain.Product{}, fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrValidation)
	}
	price, err := domain.ParseCents(py.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price: %w", err)
	}
	p := domain.Product{
		ID:          py.ID,
		Name:        py.Name,
		Price:       price,
		Description: py.Description,
		Images:      py.Images,
		Category:    py.Category,
		Stock:       py.Stock,
		Rating:      py.Rating,
		Reviews:     py.Reviews,
		Tags:        py.Tags,
		Featured:    py.Featured,
	}
	if py.OriginalPrice != "" {
		orig, err := domain.ParseCents(py.OriginalPrice)
		if err != nil {
			return domain.Product{}, fmt.Errorf("original price: %w", err)
		}
		p.OriginalPrice = &orig
	}
	return p, nil
}

// Products returns copies of every product in catalog order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

// Product looks a product up by id.
func (c *Catalog) Product(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return c.products[i].Clone(), nil
}

// Categories returns the selectable categories, AllCategories first.
func (c *Catalog) Categories() []string {
	return append([]string{AllCategories}, c.categories...)
}
