package draft

import (
	"io"
	"strings"

	"scroll-and-bite/bite-svc/internal/domain"
)

// ProductDraft is the product form. Image is optional on edit.
type ProductDraft struct {
	ID          int64
	Name        string
	Price       *float64
	CategoryID  int64
	Ingredients string
	Allergens   string
	IsActive    bool
	Image       io.Reader
}

// ValidateForUpload checks a new product: name, price and category.
func (d ProductDraft) ValidateForUpload() error {
	fields := d.baseProblems()
	if d.CategoryID <= 0 {
		fields = append(fields, "category")
	}
	return newValidationError(fields)
}

// ValidateForEdit checks an existing product: name and price.
func (d ProductDraft) ValidateForEdit() error {
	fields := d.baseProblems()
	if d.ID <= 0 {
		fields = append(fields, "id")
	}
	return newValidationError(fields)
}

func (d ProductDraft) baseProblems() []string {
	var fields []string
	if strings.TrimSpace(d.Name) == "" {
		fields = append(fields, "name")
	}
	if d.Price == nil || *d.Price < 0 {
		fields = append(fields, "price")
	}
	return fields
}

// Product converts the draft. file keeps the existing image when no new one
// was uploaded.
func (d ProductDraft) Product(restaurantID int64, file string) domain.Product {
	product := domain.Product{
		ID:           d.ID,
		RestaurantID: restaurantID,
		CategoryID:   d.CategoryID,
		ProductName:  strings.TrimSpace(d.Name),
		Ingredients:  d.Ingredients,
		Allergens:    d.Allergens,
		IsActive:     d.IsActive,
		File:         file,
	}
	if d.Price != nil {
		product.Price = *d.Price
	}
	return product
}
