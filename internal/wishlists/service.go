package wishlists

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/angelmondragon/bikewish/pkg/db"
	"github.com/angelmondragon/bikewish/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/angelmondragon/bikewish/pkg/logger"
	"github.com/angelmondragon/bikewish/pkg/validators"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	Tx           db.TxRunner
	Logger       *logger.Logger
}

// Service exposes business rules for wishlist management.
type Service interface {
	Create(ctx context.Context, req CreateWishlistRequest) (WishlistDTO, error)
	List(ctx context.Context) ([]WishlistDTO, error)
	Get(ctx context.Context, id uuid.UUID) (WishlistDTO, error)
	GetByName(ctx context.Context, name string) (WishlistDTO, error)
	Rename(ctx context.Context, req RenameWishlistRequest) (WishlistDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (DeleteResult, error)
}

type service struct {
	repo *Repository
	tx   db.TxRunner
	logg *logger.Logger
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.New(logger.Options{ServiceName: "wishlists", Output: io.Discard})
	}
	return &service{
		repo: params.WishlistRepo,
		tx:   params.Tx,
		logg: logg,
	}, nil
}

// Create adds a wishlist. The duplicate check and the insert share one
// transaction.
func (s *service) Create(ctx context.Context, req CreateWishlistRequest) (WishlistDTO, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validators.Struct(req); err != nil {
		return WishlistDTO{}, err
	}
	ctx = s.logg.WithOperation(ctx, "wishlist.create")

	created, err := db.Transact(ctx, s.tx, func(tx *gorm.DB) (models.Wishlist, error) {
		repo := s.repo.WithTx(tx)
		if err := ensureNameFree(ctx, repo, req.Name, uuid.Nil); err != nil {
			return models.Wishlist{}, err
		}
		wishlist := models.Wishlist{Name: req.Name}
		if err := repo.Create(ctx, &wishlist); err != nil {
			if db.IsUniqueViolation(err, "") {
				return models.Wishlist{}, duplicateName(err, req.Name)
			}
			return models.Wishlist{}, db.Classify(err, "create wishlist")
		}
		return wishlist, nil
	})
	if err != nil {
		return WishlistDTO{}, err
	}

	s.logg.Info(s.logg.WithWishlistID(ctx, created.ID.String()), "wishlist created")
	return WishlistDTO{ID: created.ID, Name: created.Name, CreatedAt: created.CreatedAt}, nil
}

// List returns all wishlists ordered by creation time.
func (s *service) List(ctx context.Context) ([]WishlistDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, db.Classify(err, "list wishlists")
	}
	return list, nil
}

// Get returns the wishlist or NOT_FOUND.
func (s *service) Get(ctx context.Context, id uuid.UUID) (WishlistDTO, error) {
	if id == uuid.Nil {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	wishlist, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return WishlistDTO{}, notFoundOr(err, "load wishlist")
	}
	return s.withCount(ctx, wishlist)
}

// GetByName looks a wishlist up by its exact name. The NOT_FOUND error carries
// similarly named wishlists, see Suggestions.
func (s *service) GetByName(ctx context.Context, name string) (WishlistDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "wishlist name is required")
	}

	wishlist, err := s.repo.FindByName(ctx, name)
	if err == nil {
		return s.withCount(ctx, wishlist)
	}
	if !db.IsNotFound(err) {
		return WishlistDTO{}, db.Classify(err, "load wishlist")
	}

	names, listErr := s.repo.ListNames(ctx)
	if listErr != nil {
		return WishlistDTO{}, db.Classify(listErr, "list wishlist names")
	}
	return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("wishlist %q does not exist", name)).
		WithDetails(map[string]any{suggestionsKey: similarNames(name, names)})
}

// Rename changes the wishlist name under the same uniqueness rule as Create.
func (s *service) Rename(ctx context.Context, req RenameWishlistRequest) (WishlistDTO, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validators.Struct(req); err != nil {
		return WishlistDTO{}, err
	}
	ctx = s.logg.WithWishlistID(s.logg.WithOperation(ctx, "wishlist.rename"), req.ID.String())

	renamed, err := db.Transact(ctx, s.tx, func(tx *gorm.DB) (WishlistDTO, error) {
		repo := s.repo.WithTx(tx)
		wishlist, err := repo.FindByID(ctx, req.ID)
		if err != nil {
			return WishlistDTO{}, notFoundOr(err, "load wishlist")
		}
		if wishlist.Name != req.Name {
			if err := ensureNameFree(ctx, repo, req.Name, req.ID); err != nil {
				return WishlistDTO{}, err
			}
			if err := repo.Rename(ctx, req.ID, req.Name); err != nil {
				if db.IsUniqueViolation(err, "") {
					return WishlistDTO{}, duplicateName(err, req.Name)
				}
				return WishlistDTO{}, notFoundOr(err, "rename wishlist")
			}
		}
		count, err := repo.CountItems(ctx, req.ID)
		if err != nil {
			return WishlistDTO{}, db.Classify(err, "count wishlist items")
		}
		return WishlistDTO{ID: wishlist.ID, Name: req.Name, CreatedAt: wishlist.CreatedAt, ItemCount: count}, nil
	})
	if err != nil {
		return WishlistDTO{}, err
	}

	s.logg.Info(ctx, "wishlist renamed")
	return renamed, nil
}

// Delete removes the wishlist and all of its items in one transaction.
func (s *service) Delete(ctx context.Context, id uuid.UUID) (DeleteResult, error) {
	if id == uuid.Nil {
		return DeleteResult{}, pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	ctx = s.logg.WithWishlistID(s.logg.WithOperation(ctx, "wishlist.delete"), id.String())

	result, err := db.Transact(ctx, s.tx, func(tx *gorm.DB) (DeleteResult, error) {
		repo := s.repo.WithTx(tx)
		wishlist, err := repo.FindByID(ctx, id)
		if err != nil {
			return DeleteResult{}, notFoundOr(err, "load wishlist")
		}
		removed, err := repo.Delete(ctx, id)
		if err != nil {
			return DeleteResult{}, notFoundOr(err, "delete wishlist")
		}
		return DeleteResult{WishlistID: id, Name: wishlist.Name, ItemsRemoved: removed}, nil
	})
	if err != nil {
		return DeleteResult{}, err
	}

	s.logg.Info(s.logg.WithField(ctx, "items_removed", result.ItemsRemoved), "wishlist deleted")
	return result, nil
}

func (s *service) withCount(ctx context.Context, wishlist *models.Wishlist) (WishlistDTO, error) {
	count, err := s.repo.CountItems(ctx, wishlist.ID)
	if err != nil {
		return WishlistDTO{}, db.Classify(err, "count wishlist items")
	}
	return WishlistDTO{
		ID:        wishlist.ID,
		Name:      wishlist.Name,
		CreatedAt: wishlist.CreatedAt,
		ItemCount: count,
	}, nil
}

func ensureNameFree(ctx context.Context, repo *Repository, name string, excludeID uuid.UUID) error {
	taken, err := repo.NameTaken(ctx, name, excludeID)
	if err != nil {
		return db.Classify(err, "check wishlist name")
	}
	if taken {
		return duplicateName(nil, name)
	}
	return nil
}

func duplicateName(cause error, name string) error {
	return pkgerrors.Wrap(pkgerrors.CodeDuplicateName, cause, fmt.Sprintf("wishlist %q already exists", name))
}

func notFoundOr(err error, message string) error {
	if db.IsNotFound(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist not found")
	}
	return db.Classify(err, message)
}
