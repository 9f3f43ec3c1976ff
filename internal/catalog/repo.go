package catalog

import (
	"context"
	"strings"

	"github.com/angelmondragon/bikewish/pkg/db/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var productColumns = []string{
	"p.product_id",
	"p.product_name",
	"p.category_id",
	"c.category_name",
	"p.brand_id",
	"b.brand_name",
	"p.model_year",
	"p.list_price",
}

// Repository reads the external catalog tables. It never writes.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) productQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products p").
		Select(strings.Join(productColumns, ", ")).
		Joins("LEFT JOIN categories c ON c.category_id = p.category_id").
		Joins("LEFT JOIN brands b ON b.brand_id = p.brand_id")
}

// FindProduct loads a product with its category and brand names.
// gorm.ErrRecordNotFound is returned when the id is unknown.
func (r *Repository) FindProduct(ctx context.Context, id int64) (ProductDTO, error) {
	var records []productRecord
	if err := r.productQuery(ctx).Where("p.product_id = ?", id).Limit(1).Scan(&records).Error; err != nil {
		return ProductDTO{}, err
	}
	if len(records) == 0 {
		return ProductDTO{}, gorm.ErrRecordNotFound
	}
	return records[0].toDTO(), nil
}

// ProductExists reports whether the catalog holds the product.
func (r *Repository) ProductExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("product_id = ?", id).
		Count(&count).
		Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListProducts returns products matching the filter ordered by id.
func (r *Repository) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error) {
	query := r.productQuery(ctx)
	if filter.CategoryID != nil {
		query = query.Where("p.category_id = ?", *filter.CategoryID)
	}
	if filter.BrandID != nil {
		query = query.Where("p.brand_id = ?", *filter.BrandID)
	}

	var records []productRecord
	if err := query.Order("p.product_id ASC").Scan(&records).Error; err != nil {
		return nil, err
	}
	return toDTOs(records), nil
}

// SearchProducts matches a case-insensitive substring of the product name.
func (r *Repository) SearchProducts(ctx context.Context, term string) ([]ProductDTO, error) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	var records []productRecord
	if err := r.productQuery(ctx).
		Where(`LOWER(p.product_name) LIKE ? ESCAPE '\'`, pattern).
		Order("p.product_id ASC").
		Scan(&records).
		Error; err != nil {
		return nil, err
	}
	return toDTOs(records), nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("category_id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *Repository) FindCategory(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "category_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("brand_id ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *Repository) FindBrand(ctx context.Context, id int64) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.WithContext(ctx).First(&brand, "brand_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

type productRecord struct {
	ProductID    int64           `gorm:"column:product_id"`
	ProductName  string          `gorm:"column:product_name"`
	CategoryID   int64           `gorm:"column:category_id"`
	CategoryName *string         `gorm:"column:category_name"`
	BrandID      int64           `gorm:"column:brand_id"`
	BrandName    *string         `gorm:"column:brand_name"`
	ModelYear    int             `gorm:"column:model_year"`
	ListPrice    decimal.Decimal `gorm:"column:list_price"`
}

func (r productRecord) toDTO() ProductDTO {
	return ProductDTO{
		ID:           r.ProductID,
		Name:         r.ProductName,
		CategoryID:   r.CategoryID,
		CategoryName: derefString(r.CategoryName),
		BrandID:      r.BrandID,
		BrandName:    derefString(r.BrandName),
		ModelYear:    r.ModelYear,
		ListPrice:    r.ListPrice,
	}
}

func toDTOs(records []productRecord) []ProductDTO {
	out := make([]ProductDTO, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDTO())
	}
	return out
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
