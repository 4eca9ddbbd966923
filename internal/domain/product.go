package domain

import "math"

type Product struct {
	ID            string
	Name          string
	Price         Cents
	OriginalPrice *Cents
	Description   string
	Images        []string
	Category      string
	Stock         int
	Rating        float64
	Reviews       int
	Tags          []string
	Featured      bool
}

// DiscountPct returns the whole-number discount against OriginalPrice, or 0
// when there is no higher original price.
func (p *Product) DiscountPct() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price || *p.OriginalPrice <= 0 {
		return 0
	}
	orig := float64(*p.OriginalPrice)
	return int(math.Round((orig - float64(p.Price)) / orig * 100))
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	out := p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		out.OriginalPrice = &v
	}
	out.Images = CloneStrings(p.Images)
	out.Tags = CloneStrings(p.Tags)
	return out
}
