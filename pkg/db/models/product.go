package models

import "github.com/shopspring/decimal"

// Product mirrors the externally managed catalog table. bikewish never writes it.
type Product struct {
	ID         int64           `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	Name       string          `gorm:"column:product_name;not null"`
	BrandID    int64           `gorm:"column:brand_id;not null"`
	CategoryID int64           `gorm:"column:category_id;not null"`
	ModelYear  int             `gorm:"column:model_year"`
	ListPrice  decimal.Decimal `gorm:"column:list_price;type:numeric(10,2);not null"`
}

func (Product) TableName() string { return "products" }

// Category is a read-only catalog category.
type Category struct {
	ID   int64  `gorm:"column:category_id;primaryKey;autoIncrement:false"`
	Name string `gorm:"column:category_name;not null"`
}

func (Category) TableName() string { return "categories" }

// Brand is a read-only catalog brand.
type Brand struct {
	ID   int64  `gorm:"column:brand_id;primaryKey;autoIncrement:false"`
	Name string `gorm:"column:brand_name;not null"`
}

func (Brand) TableName() string { return "brands" }
