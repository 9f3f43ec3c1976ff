package catalog

import "github.com/shopspring/decimal"

// ProductDTO is a catalog product joined with its category and brand names.
type ProductDTO struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	BrandID      int64           `json:"brand_id"`
	BrandName    string          `json:"brand_name"`
	ModelYear    int             `json:"model_year"`
	ListPrice    decimal.Decimal `json:"list_price"`
}

type CategoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BrandDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductFilter narrows ListProducts. Nil fields match everything.
type ProductFilter struct {
	CategoryID *int64
	BrandID    *int64
}

// ByCategory returns a filter for a single category.
func ByCategory(id int64) ProductFilter {
	return ProductFilter{CategoryID: &id}
}

// ByBrand returns a filter for a single brand.
func ByBrand(id int64) ProductFilter {
	return ProductFilter{BrandID: &id}
}
