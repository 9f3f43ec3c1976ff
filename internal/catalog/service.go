package catalog

import (
	"context"

	"github.com/angelmondragon/bikewish/pkg/db"
	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/angelmondragon/bikewish/pkg/validators"
)

const maxSearchTermLen = 100

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo *Repository
}

// Service exposes read-only catalog lookups.
type Service interface {
	FindProduct(ctx context.Context, productID int64) (ProductDTO, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error)
	SearchProducts(ctx context.Context, term string) ([]ProductDTO, error)
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListBrands(ctx context.Context) ([]BrandDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// FindProduct returns a single product or NOT_FOUND.
func (s *service) FindProduct(ctx context.Context, productID int64) (ProductDTO, error) {
	if productID <= 0 {
		return ProductDTO{}, pkgerrors.New(pkgerrors.CodeInvalidProduct, "product id must be positive")
	}
	product, err := s.repo.FindProduct(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return ProductDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDTO{}, db.Classify(err, "load product")
	}
	return product, nil
}

// ListProducts returns the products matching filter in id order. Filtering by
// an unknown category or brand is NOT_FOUND rather than an empty listing.
func (s *service) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error) {
	if filter.CategoryID != nil {
		if _, err := s.repo.FindCategory(ctx, *filter.CategoryID); err != nil {
			if db.IsNotFound(err) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
			}
			return nil, db.Classify(err, "load category")
		}
	}
	if filter.BrandID != nil {
		if _, err := s.repo.FindBrand(ctx, *filter.BrandID); err != nil {
			if db.IsNotFound(err) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "brand not found")
			}
			return nil, db.Classify(err, "load brand")
		}
	}

	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, db.Classify(err, "list products")
	}
	return products, nil
}

// SearchProducts finds products whose name contains term.
func (s *service) SearchProducts(ctx context.Context, term string) ([]ProductDTO, error) {
	term = validators.SanitizeString(term, maxSearchTermLen)
	if term == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search term is required")
	}
	products, err := s.repo.SearchProducts(ctx, term)
	if err != nil {
		return nil, db.Classify(err, "search products")
	}
	return products, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, db.Classify(err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryDTO{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func (s *service) ListBrands(ctx context.Context) ([]BrandDTO, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, db.Classify(err, "list brands")
	}
	out := make([]BrandDTO, 0, len(brands))
	for _, b := range brands {
		out = append(out, BrandDTO{ID: b.ID, Name: b.Name})
	}
	return out, nil
}
