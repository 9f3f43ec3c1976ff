package items

import (
	"context"
	"fmt"
	"io"

	"github.com/angelmondragon/bikewish/internal/catalog"
	"github.com/angelmondragon/bikewish/internal/wishlists"
	"github.com/angelmondragon/bikewish/pkg/db"
	"github.com/angelmondragon/bikewish/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/angelmondragon/bikewish/pkg/logger"
	"github.com/angelmondragon/bikewish/pkg/validators"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the item service.
type ServiceParams struct {
	ItemRepo     *Repository
	WishlistRepo *wishlists.Repository
	CatalogRepo  *catalog.Repository
	Tx           db.TxRunner
	Logger       *logger.Logger
}

// Service exposes business rules for wishlist line items.
type Service interface {
	AddItem(ctx context.Context, req AddItemRequest) (ItemDTO, error)
	UpdateQuantity(ctx context.Context, req UpdateQuantityRequest) (ItemDTO, error)
	SetOwned(ctx context.Context, req SetOwnedRequest) (ItemDTO, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	ListItems(ctx context.Context, wishlistID uuid.UUID) ([]ItemDTO, error)
	FindByProduct(ctx context.Context, wishlistID uuid.UUID, productID int64) (ItemDTO, error)
	ItemsSummary(ctx context.Context, wishlistID uuid.UUID) (Summary, error)
}

type service struct {
	repo      *Repository
	wishlists *wishlists.Repository
	catalog   *catalog.Repository
	tx        db.TxRunner
	logg      *logger.Logger
}

// NewService builds an item service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ItemRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item repo is required")
	}
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.New(logger.Options{ServiceName: "items", Output: io.Discard})
	}
	return &service{
		repo:      params.ItemRepo,
		wishlists: params.WishlistRepo,
		catalog:   params.CatalogRepo,
		tx:        params.Tx,
		logg:      logg,
	}, nil
}

// AddItem puts a catalog product on a wishlist. The request shape is checked
// before the transaction opens; the wishlist, the product and the duplicate
// rule are re-checked inside it.
func (s *service) AddItem(ctx context.Context, req AddItemRequest) (ItemDTO, error) {
	if err := validators.Struct(req); err != nil {
		return ItemDTO{}, err
	}
	ctx = s.logg.WithWishlistID(s.logg.WithOperation(ctx, "item.add"), req.WishlistID.String())

	added, err := db.Transact(ctx, s.tx, func(tx *gorm.DB) (ItemDTO, error) {
		repo := s.repo.WithTx(tx)

		if _, err := s.wishlists.WithTx(tx).FindByID(ctx, req.WishlistID); err != nil {
			return ItemDTO{}, wishlistNotFoundOr(err)
		}

		exists, err := s.catalog.WithTx(tx).ProductExists(ctx, req.ProductID)
		if err != nil {
			return ItemDTO{}, db.Classify(err, "check product")
		}
		if !exists {
			return ItemDTO{}, pkgerrors.New(pkgerrors.CodeInvalidProduct, fmt.Sprintf("product %d is not in the catalog", req.ProductID))
		}

		if _, err := repo.FindByProduct(ctx, req.WishlistID, req.ProductID); err == nil {
			return ItemDTO{}, duplicateItem(nil, req.ProductID)
		} else if !db.IsNotFound(err) {
			return ItemDTO{}, db.Classify(err, "check duplicate item")
		}

		position, err := repo.NextPosition(ctx, req.WishlistID)
		if err != nil {
			return ItemDTO{}, db.Classify(err, "next item position")
		}

		item := models.WishlistItem{
			WishlistID: req.WishlistID,
			ProductID:  req.ProductID,
			Quantity:   req.Quantity,
			Owned:      req.Owned,
			Position:   position,
		}
		if err := repo.Create(ctx, &item); err != nil {
			if db.IsUniqueViolation(err, "") {
				return ItemDTO{}, duplicateItem(err, req.ProductID)
			}
			return ItemDTO{}, db.Classify(err, "create item")
		}

		detailed, err := repo.FindDetailed(ctx, item.ID)
		if err != nil {
			return ItemDTO{}, db.Classify(err, "load item")
		}
		return detailed, nil
	})
	if err != nil {
		return ItemDTO{}, err
	}

	s.logg.Info(s.logg.WithItemID(ctx, added.ID.String()), "item added")
	return added, nil
}

// UpdateQuantity replaces the item quantity. Repeating the call with the same
// quantity succeeds each time.
func (s *service) UpdateQuantity(ctx context.Context, req UpdateQuantityRequest) (ItemDTO, error) {
	if err := validators.Struct(req); err != nil {
		return ItemDTO{}, err
	}
	ctx = s.logg.WithItemID(s.logg.WithOperation(ctx, "item.update_quantity"), req.ItemID.String())

	updated, err := db.Transact(ctx, s.tx, func(tx *gorm.DB) (ItemDTO, error) {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateQuantity(ctx, req.ItemID, req.Quantity); err != nil {
			return ItemDTO{}, itemNotFoundOr(err, "update quantity")
		}
		return loadItem(ctx, repo, req.ItemID)
	})
	if err != nil {
		return ItemDTO{}, err
	}

	s.logg.Info(s.logg.WithField(ctx, "quantity", req.Quantity), "item quantity updated")
	return updated, nil
}

// SetOwned marks the item as owned or not owned.
func (s *service) SetOwned(ctx context.Context, req SetOwnedRequest) (ItemDTO, error) {
	if err := validators.Struct(req); err != nil {
		return ItemDTO{}, err
	}
	ctx = s.logg.WithItemID(s.logg.WithOperation(ctx, "item.set_owned"), req.ItemID.String())

	updated, err := db.Transact(ctx, s.tx, func(tx *gorm.DB) (ItemDTO, error) {
		repo := s.repo.WithTx(tx)
		if err := repo.SetOwned(ctx, req.ItemID, req.Owned); err != nil {
			return ItemDTO{}, itemNotFoundOr(err, "set owned")
		}
		return loadItem(ctx, repo, req.ItemID)
	})
	if err != nil {
		return ItemDTO{}, err
	}

	s.logg.Info(s.logg.WithField(ctx, "owned", req.Owned), "item ownership updated")
	return updated, nil
}

// RemoveItem deletes a single item.
func (s *service) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if itemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	ctx = s.logg.WithItemID(s.logg.WithOperation(ctx, "item.remove"), itemID.String())

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, itemID); err != nil {
			return itemNotFoundOr(err, "remove item")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logg.Info(ctx, "item removed")
	return nil
}

// ListItems returns the wishlist's items with catalog data in the order they
// were added.
func (s *service) ListItems(ctx context.Context, wishlistID uuid.UUID) ([]ItemDTO, error) {
	if wishlistID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	return db.Transact(ctx, s.tx, func(tx *gorm.DB) ([]ItemDTO, error) {
		if _, err := s.wishlists.WithTx(tx).FindByID(ctx, wishlistID); err != nil {
			return nil, wishlistNotFoundOr(err)
		}
		list, err := s.repo.WithTx(tx).ListDetailed(ctx, wishlistID)
		if err != nil {
			return nil, db.Classify(err, "list items")
		}
		return list, nil
	})
}

// FindByProduct returns the wishlist's item for a catalog product.
func (s *service) FindByProduct(ctx context.Context, wishlistID uuid.UUID, productID int64) (ItemDTO, error) {
	if wishlistID == uuid.Nil {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	if productID <= 0 {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeInvalidProduct, "product id must be positive")
	}
	item, err := s.repo.FindByProduct(ctx, wishlistID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("product %d is not on this wishlist", productID))
		}
		return ItemDTO{}, db.Classify(err, "find item by product")
	}
	return loadItem(ctx, s.repo, item.ID)
}

// ItemsSummary totals the wishlist. Items whose product left the catalog
// count towards the quantities but not the value.
func (s *service) ItemsSummary(ctx context.Context, wishlistID uuid.UUID) (Summary, error) {
	list, err := s.ListItems(ctx, wishlistID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(wishlistID, list), nil
}

// Summarize totals items already loaded with ListItems.
func Summarize(wishlistID uuid.UUID, list []ItemDTO) Summary {
	summary := Summary{WishlistID: wishlistID, OutstandingValue: decimal.Zero}
	for _, item := range list {
		summary.ItemCount++
		summary.TotalQuantity += item.Quantity
		if item.Owned {
			summary.OwnedCount++
			continue
		}
		summary.OutstandingValue = summary.OutstandingValue.Add(item.LineTotal())
	}
	return summary
}

func loadItem(ctx context.Context, repo *Repository, id uuid.UUID) (ItemDTO, error) {
	item, err := repo.FindDetailed(ctx, id)
	if err != nil {
		return ItemDTO{}, itemNotFoundOr(err, "load item")
	}
	return item, nil
}

func duplicateItem(cause error, productID int64) error {
	return pkgerrors.Wrap(pkgerrors.CodeDuplicateItem, cause, fmt.Sprintf("product %d is already on this wishlist", productID))
}

func wishlistNotFoundOr(err error) error {
	if db.IsNotFound(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist not found")
	}
	return db.Classify(err, "load wishlist")
}

func itemNotFoundOr(err error, message string) error {
	if db.IsNotFound(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
	}
	return db.Classify(err, message)
}
