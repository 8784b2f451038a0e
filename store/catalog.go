package store

import (
	"fmt"

	"github.com/google/uuid"
)

func NewID() string {
	return uuid.NewString()
}

// UpsertCategory replaces the category with the same id, or appends it. An empty id is assigned.
func (d *Document) UpsertCategory(c Category) (Category, bool) {
	if c.ID == "" {
		c.ID = NewID()
	}
	for i := range d.Categories {
		if d.Categories[i].ID == c.ID {
			d.Categories[i] = c
			return c, false
		}
	}
	d.Categories = append(d.Categories, c)
	return c, true
}

// DeleteCategory removes the category only. Products keep pointing at the removed id.
func (d *Document) DeleteCategory(id string) bool {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			d.Categories = append(d.Categories[:i], d.Categories[i+1:]...)
			return true
		}
	}
	return false
}

func (d *Document) UpsertProduct(p Product) (Product, bool, error) {
	if p.Price.IsNegative() {
		return p, false, fmt.Errorf("%w: product price must not be negative", ErrInvalidDocument)
	}
	if p.ID == "" {
		p.ID = NewID()
	}
	for i := range d.Products {
		if d.Products[i].ID == p.ID {
			d.Products[i] = p
			return p, false, nil
		}
	}
	d.Products = append(d.Products, p)
	return p, true, nil
}

func (d *Document) DeleteProduct(id string) bool {
	for i := range d.Products {
		if d.Products[i].ID == id {
			d.Products = append(d.Products[:i], d.Products[i+1:]...)
			return true
		}
	}
	return false
}

func (d Document) FindProduct(id string) (Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ProductsInCategory includes unavailable products
func (d Document) ProductsInCategory(categoryID string) []Product {
	var found []Product
	for _, p := range d.Products {
		if p.Category == categoryID {
			found = append(found, p)
		}
	}
	return found
}

func (d *Document) AddBanner(url string) {
	d.Banners = append(d.Banners, url)
}

func (d *Document) RemoveBanner(index int) bool {
	if index < 0 || index >= len(d.Banners) {
		return false
	}
	d.Banners = append(d.Banners[:index], d.Banners[index+1:]...)
	return true
}

func (s StoreConfig) FindDeliveryFee(id string) (DeliveryFee, bool) {
	for _, f := range s.DeliveryFees {
		if f.ID == id {
			return f, true
		}
	}
	return DeliveryFee{}, false
}

// FindOrder returns the index of the order, or -1
func (d Document) FindOrder(id string) int {
	for i := range d.Orders {
		if d.Orders[i].ID == id {
			return i
		}
	}
	return -1
}
