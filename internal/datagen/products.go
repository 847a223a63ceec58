//-------------------------------------------------------------------------
//
// martgen - Star Schema Data Mart Generator
//
// Copyright (c) 2025 - 2026, dmartlab
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"

	"github.com/dmartlab/martgen/internal/model"
)

// productCategory declares one branch of the catalog hierarchy. Subcategories
// are only ever drawn from their parent, and cost ranges are conditioned on
// the category.
type productCategory struct {
	name          string
	subcategories []string
	costMin       float64
	costMax       float64
}

var productCategories = []productCategory{
	{"Electronics", []string{"Smartphones", "Laptops", "Headphones"}, 50, 200},
	{"Clothing", []string{"Shirts", "Pants", "Shoes"}, 10, 80},
	{"Home", []string{"Furniture", "Appliances", "Decor"}, 20, 150},
	{"Books", []string{"Fiction", "Non-Fiction", "Educational"}, 10, 40},
	{"Sports", []string{"Equipment", "Apparel", "Accessories"}, 15, 120},
}

var brands = []string{"BrandA", "BrandB", "BrandC", "Generic"}

// CategoryNames returns the valid product category names.
func CategoryNames() []string {
	names := make([]string, len(productCategories))
	for i, c := range productCategories {
		names[i] = c.name
	}
	return names
}

// SubcategoriesOf returns the subcategories belonging to a category, or nil
// for an unknown category.
func SubcategoriesOf(category string) []string {
	for _, c := range productCategories {
		if c.name == category {
			return c.subcategories
		}
	}
	return nil
}

// GenerateProducts produces count product records with keys 1..count. Price
// is derived from cost with a markup of 1.5x-2.5x, so the catalog carries no
// negative-margin entries; a draw that still violates cost < price is
// resampled.
func GenerateProducts(count int, f *Faker) ([]model.Product, error) {
	if count < 1 {
		return nil, fmt.Errorf("product count must be positive, got %d", count)
	}

	products := make([]model.Product, 0, count)
	for i := 1; i <= count; i++ {
		p, err := sampleProduct(int64(i), f)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func sampleProduct(id int64, f *Faker) (model.Product, error) {
	for attempt := 0; attempt < maxResampleAttempts; attempt++ {
		cat := Choose(f, productCategories)
		subcat := Choose(f, cat.subcategories)
		brand := Choose(f, brands)

		cost := model.RoundCents(f.Float64(cat.costMin, cat.costMax))
		price := model.RoundCents(cost * f.Float64(1.5, 2.5))
		if cost >= price {
			continue
		}

		return model.Product{
			ID:          id,
			Name:        fmt.Sprintf("%s %s %d", brand, subcat, id),
			Category:    cat.name,
			Subcategory: subcat,
			Brand:       brand,
			Price:       price,
			Cost:        cost,
		}, nil
	}
	return model.Product{}, &InvariantError{Entity: "product", Attempts: maxResampleAttempts}
}
