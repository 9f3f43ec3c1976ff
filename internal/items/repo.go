package items

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/bikewish/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var itemColumns = []string{
	"i.id",
	"i.wishlist_id",
	"i.product_id",
	"i.quantity",
	"i.owned",
	"i.position",
	"i.created_at",
	"i.updated_at",
	"p.product_name",
	"c.category_name",
	"b.brand_name",
	"p.list_price",
}

// Repository encapsulates wishlist item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an item repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("wishlist_items i").
		Select(strings.Join(itemColumns, ", ")).
		Joins("LEFT JOIN products p ON p.product_id = i.product_id").
		Joins("LEFT JOIN categories c ON c.category_id = p.category_id").
		Joins("LEFT JOIN brands b ON b.brand_id = p.brand_id")
}

// Create inserts the item, assigning its id and timestamps.
func (r *Repository) Create(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID loads the raw item row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByProduct loads the wishlist's item for productID.
func (r *Repository) FindByProduct(ctx context.Context, wishlistID uuid.UUID, productID int64) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).
		First(&item, "wishlist_id = ? AND product_id = ?", wishlistID, productID).
		Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// NextPosition returns the ordering key for the next item on the wishlist.
func (r *Repository) NextPosition(ctx context.Context, wishlistID uuid.UUID) (int64, error) {
	var last int64
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Select("COALESCE(MAX(position), 0)").
		Where("wishlist_id = ?", wishlistID).
		Scan(&last).
		Error; err != nil {
		return 0, err
	}
	return last + 1, nil
}

// FindDetailed loads one item joined with its catalog product.
// gorm.ErrRecordNotFound is returned when the id is unknown.
func (r *Repository) FindDetailed(ctx context.Context, id uuid.UUID) (ItemDTO, error) {
	var records []itemRecord
	if err := r.detailQuery(ctx).Where("i.id = ?", id).Limit(1).Scan(&records).Error; err != nil {
		return ItemDTO{}, err
	}
	if len(records) == 0 {
		return ItemDTO{}, gorm.ErrRecordNotFound
	}
	return records[0].toDTO(), nil
}

// ListDetailed returns the wishlist's items in insertion order.
func (r *Repository) ListDetailed(ctx context.Context, wishlistID uuid.UUID) ([]ItemDTO, error) {
	var records []itemRecord
	if err := r.detailQuery(ctx).
		Where("i.wishlist_id = ?", wishlistID).
		Order("i.position ASC").
		Order("i.created_at ASC").
		Scan(&records).
		Error; err != nil {
		return nil, err
	}

	out := make([]ItemDTO, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDTO())
	}
	return out, nil
}

// UpdateQuantity sets the quantity. gorm.ErrRecordNotFound is returned when
// no row matched.
func (r *Repository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return r.update(ctx, id, "quantity", quantity)
}

// SetOwned sets the owned flag. gorm.ErrRecordNotFound is returned when no
// row matched.
func (r *Repository) SetOwned(ctx context.Context, id uuid.UUID, owned bool) error {
	return r.update(ctx, id, "owned", owned)
}

func (r *Repository) update(ctx context.Context, id uuid.UUID, column string, value any) error {
	res := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			column:       value,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a single item. gorm.ErrRecordNotFound is returned when no
// row matched.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type itemRecord struct {
	ID           uuid.UUID           `gorm:"column:id"`
	WishlistID   uuid.UUID           `gorm:"column:wishlist_id"`
	ProductID    int64               `gorm:"column:product_id"`
	Quantity     int                 `gorm:"column:quantity"`
	Owned        bool                `gorm:"column:owned"`
	Position     int64               `gorm:"column:position"`
	CreatedAt    time.Time           `gorm:"column:created_at"`
	UpdatedAt    time.Time           `gorm:"column:updated_at"`
	ProductName  *string             `gorm:"column:product_name"`
	CategoryName *string             `gorm:"column:category_name"`
	BrandName    *string             `gorm:"column:brand_name"`
	ListPrice    decimal.NullDecimal `gorm:"column:list_price"`
}

func (r itemRecord) toDTO() ItemDTO {
	return ItemDTO{
		ID:           r.ID,
		WishlistID:   r.WishlistID,
		ProductID:    r.ProductID,
		ProductName:  derefString(r.ProductName),
		CategoryName: derefString(r.CategoryName),
		BrandName:    derefString(r.BrandName),
		ListPrice:    r.ListPrice.Decimal,
		InCatalog:    r.ProductName != nil,
		Quantity:     r.Quantity,
		Owned:        r.Owned,
		Position:     r.Position,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
