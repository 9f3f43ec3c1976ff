// Package dbtest opens isolated in-memory sqlite databases carrying the
// bikewish schema plus a small BikeStores-style catalog.
package dbtest

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/angelmondragon/bikewish/pkg/db"
	"github.com/angelmondragon/bikewish/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

const (
	CategoryMountain int64 = 1
	CategoryRoad     int64 = 2
	CategoryComfort  int64 = 3
	CategoryEmpty    int64 = 4

	BrandTrek      int64 = 1
	BrandSurly     int64 = 2
	BrandElectra   int64 = 3
	ProductCount         = 15
	MissingProduct int64 = 999
)

// Open returns a client bound to a fresh database named after the test.
func Open(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", url.QueryEscape(t.Name()))
	conn, err := db.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, conn.AutoMigrate(
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.Wishlist{},
		&models.WishlistItem{},
	))

	return db.NewFromGorm(conn)
}

// OpenSeeded returns Open plus SeedCatalog.
func OpenSeeded(t *testing.T) *db.Client {
	t.Helper()
	client := Open(t)
	SeedCatalog(t, client)
	return client
}

// SeedCatalog inserts categories, brands and products 1..ProductCount.
// CategoryEmpty has no products.
func SeedCatalog(t *testing.T, client *db.Client) {
	t.Helper()
	conn := client.DB()

	categories := []models.Category{
		{ID: CategoryMountain, Name: "Mountain Bikes"},
		{ID: CategoryRoad, Name: "Road Bikes"},
		{ID: CategoryComfort, Name: "Comfort Bicycles"},
		{ID: CategoryEmpty, Name: "Electric Bikes"},
	}
	require.NoError(t, conn.Create(&categories).Error)

	brands := []models.Brand{
		{ID: BrandTrek, Name: "Trek"},
		{ID: BrandSurly, Name: "Surly"},
		{ID: BrandElectra, Name: "Electra"},
	}
	require.NoError(t, conn.Create(&brands).Error)

	products := make([]models.Product, 0, ProductCount)
	for i := 1; i <= ProductCount; i++ {
		category := []int64{CategoryMountain, CategoryRoad, CategoryComfort}[i%3]
		brand := []int64{BrandTrek, BrandSurly, BrandElectra}[i%3]
		products = append(products, models.Product{
			ID:         int64(i),
			Name:       fmt.Sprintf("Bike Model %02d", i),
			BrandID:    brand,
			CategoryID: category,
			ModelYear:  2016 + i%4,
			ListPrice:  decimal.NewFromInt(int64(100 * i)).Add(decimal.RequireFromString("0.99")),
		})
	}
	require.NoError(t, conn.Create(&products).Error)
}
