package wishlists

import (
	"context"
	"time"

	"github.com/angelmondragon/bikewish/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const itemCountColumn = "(SELECT COUNT(*) FROM wishlist_items i WHERE i.wishlist_id = w.id) AS item_count"

// Repository encapsulates wishlist header persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts the wishlist, assigning its id and creation time.
func (r *Repository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	return r.db.WithContext(ctx).Create(wishlist).Error
}

// FindByID loads the wishlist header.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.WithContext(ctx).First(&wishlist, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// FindByName loads the wishlist whose name matches exactly.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.WithContext(ctx).First(&wishlist, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// NameTaken reports whether another wishlist already uses name. excludeID is
// ignored when it is uuid.Nil.
func (r *Repository) NameTaken(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Wishlist{}).Where("name = ?", name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns every wishlist with its item count, oldest first.
func (r *Repository) List(ctx context.Context) ([]WishlistDTO, error) {
	var records []wishlistRecord
	if err := r.db.WithContext(ctx).
		Table("wishlists w").
		Select("w.id, w.name, w.created_at, " + itemCountColumn).
		Order("w.created_at ASC").
		Order("w.id ASC").
		Scan(&records).
		Error; err != nil {
		return nil, err
	}

	out := make([]WishlistDTO, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDTO())
	}
	return out, nil
}

// CountItems returns how many items the wishlist holds.
func (r *Repository) CountItems(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("wishlist_id = ?", id).
		Count(&count).
		Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListNames returns all wishlist names, oldest first.
func (r *Repository) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.Wishlist{}).
		Order("created_at ASC").
		Order("id ASC").
		Pluck("name", &names).
		Error; err != nil {
		return nil, err
	}
	return names, nil
}

// Rename updates the wishlist name. gorm.ErrRecordNotFound is returned when
// no row matched.
func (r *Repository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Wishlist{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the wishlist's items and then the wishlist itself. It must
// run inside a transaction so both deletes commit together.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	items := r.db.WithContext(ctx).
		Where("wishlist_id = ?", id).
		Delete(&models.WishlistItem{})
	if items.Error != nil {
		return 0, items.Error
	}

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Wishlist{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return items.RowsAffected, nil
}

type wishlistRecord struct {
	ID        uuid.UUID `gorm:"column:id"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	ItemCount int64     `gorm:"column:item_count"`
}

func (r wishlistRecord) toDTO() WishlistDTO {
	return WishlistDTO{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		ItemCount: r.ItemCount,
	}
}
