package items

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemDTO is a wishlist line joined with its catalog product. InCatalog is
// false when the product was removed from the catalog after the item was
// added; the product fields are empty in that case.
type ItemDTO struct {
	ID           uuid.UUID       `json:"id"`
	WishlistID   uuid.UUID       `json:"wishlist_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	CategoryName string          `json:"category_name"`
	BrandName    string          `json:"brand_name"`
	ListPrice    decimal.Decimal `json:"list_price"`
	InCatalog    bool            `json:"in_catalog"`
	Quantity     int             `json:"quantity"`
	Owned        bool            `json:"owned"`
	Position     int64           `json:"position"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// LineTotal is the list price multiplied by the quantity.
func (i ItemDTO) LineTotal() decimal.Decimal {
	return i.ListPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type AddItemRequest struct {
	WishlistID uuid.UUID `json:"wishlist_id" validate:"required"`
	ProductID  int64     `json:"product_id" validate:"gt=0" errcode:"INVALID_PRODUCT"`
	Quantity   int       `json:"quantity" validate:"gte=1,lte=2147483647" errcode:"INVALID_QUANTITY"`
	Owned      bool      `json:"owned"`
}

type UpdateQuantityRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"gte=1,lte=2147483647" errcode:"INVALID_QUANTITY"`
}

type SetOwnedRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
	Owned  bool      `json:"owned"`
}

// Summary aggregates a wishlist for display. OutstandingValue only counts
// items that are not owned yet.
type Summary struct {
	WishlistID       uuid.UUID       `json:"wishlist_id"`
	ItemCount        int             `json:"item_count"`
	OwnedCount       int             `json:"owned_count"`
	TotalQuantity    int             `json:"total_quantity"`
	OutstandingValue decimal.Decimal `json:"outstanding_value"`
}
