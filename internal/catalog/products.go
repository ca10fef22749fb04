package catalog

import (
	"context"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/store"
	"gorm.io/gorm"
)

// ListProducts returns every product with its category and brand
func (s *Service) ListProducts(ctx context.Context) ([]models.ProductResponse, error) {
	var out []models.ProductResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		products, err := store.ListProductsWithCategoryAndBrand(tx)
		if err != nil {
			return err
		}
		out = make([]models.ProductResponse, 0, len(products))
		for i := range products {
			out = append(out, models.NewProductResponse(&products[i]))
		}
		return nil
	})
	return out, s.finish(productEntity, opList, err)
}

// GetProduct returns one product with its category and brand
func (s *Service) GetProduct(ctx context.Context, id uint) (models.ProductResponse, error) {
	var out models.ProductResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		p, err := store.ProductWithCategoryAndBrand(tx, id)
		if err != nil {
			return missing(productEntity, id, err)
		}
		out = models.NewProductResponse(p)
		return nil
	})
	return out, s.finish(productEntity, opGet, err)
}

// CreateProduct inserts a product. The price is rounded to two places and the
// category and brand must exist.
func (s *Service) CreateProduct(ctx context.Context, req models.ProductCreate) (models.ProductResponse, error) {
	var out models.ProductResponse
	if err := req.Validate(); err != nil {
		return out, s.finish(productEntity, opCreate, err)
	}
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var p models.Product
		req.Apply(&p)
		if err := store.Add(tx, &p); err != nil {
			return err
		}
		return s.reloadProduct(tx, p.ID, &out)
	})
	return out, s.finish(productEntity, opCreate, err)
}

// UpdateProduct replaces every field of a product. Fields left out of req take
// their create defaults.
func (s *Service) UpdateProduct(ctx context.Context, id uint, req models.ProductCreate) (models.ProductResponse, error) {
	var out models.ProductResponse
	if err := req.Validate(); err != nil {
		return out, s.finish(productEntity, opUpdate, err)
	}
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var p models.Product
		if err := store.GetByID(tx, &p, id); err != nil {
			return missing(productEntity, id, err)
		}
		req.Apply(&p)
		if err := store.Save(tx, &p); err != nil {
			return err
		}
		return s.reloadProduct(tx, id, &out)
	})
	return out, s.finish(productEntity, opUpdate, err)
}

// PatchProduct applies the fields present in patch
func (s *Service) PatchProduct(ctx context.Context, id uint, patch models.ProductPatch) (models.ProductResponse, error) {
	var out models.ProductResponse
	if err := patch.Validate(); err != nil {
		return out, s.finish(productEntity, opPatch, err)
	}
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var p models.Product
		if err := store.GetByID(tx, &p, id); err != nil {
			return missing(productEntity, id, err)
		}
		patch.Apply(&p)
		if err := store.Save(tx, &p); err != nil {
			return err
		}
		return s.reloadProduct(tx, id, &out)
	})
	return out, s.finish(productEntity, opPatch, err)
}

// DeleteProduct removes a product
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var p models.Product
		if err := store.GetByID(tx, &p, id); err != nil {
			return missing(productEntity, id, err)
		}
		return store.Remove(tx, &p)
	})
	return s.finish(productEntity, opDelete, err)
}

func (s *Service) reloadProduct(tx *gorm.DB, id uint, out *models.ProductResponse) error {
	p, err := store.ProductWithCategoryAndBrand(tx, id)
	if err != nil {
		return err
	}
	*out = models.NewProductResponse(p)
	return nil
}
