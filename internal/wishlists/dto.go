package wishlists

import (
	"time"

	"github.com/google/uuid"
)

const maxNameLen = 100

// WishlistDTO is a wishlist header plus the number of items it holds.
type WishlistDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	ItemCount int64     `json:"item_count"`
}

type CreateWishlistRequest struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

type RenameWishlistRequest struct {
	ID   uuid.UUID `json:"id" validate:"required"`
	Name string    `json:"name" validate:"notblank,max=100"`
}

// DeleteResult reports what a cascading delete removed.
type DeleteResult struct {
	WishlistID   uuid.UUID `json:"wishlist_id"`
	Name         string    `json:"name"`
	ItemsRemoved int64     `json:"items_removed"`
}
