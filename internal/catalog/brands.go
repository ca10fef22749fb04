package catalog

import (
	"context"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/store"
	"gorm.io/gorm"
)

// ListBrands returns every brand with its products
func (s *Service) ListBrands(ctx context.Context) ([]models.BrandResponse, error) {
	var out []models.BrandResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		brands, err := store.ListBrandsWithProducts(tx)
		if err != nil {
			return err
		}
		out = make([]models.BrandResponse, 0, len(brands))
		for i := range brands {
			out = append(out, models.NewBrandResponse(&brands[i]))
		}
		return nil
	})
	return out, s.finish(brandEntity, opList, err)
}

// GetBrand returns one brand with its products
func (s *Service) GetBrand(ctx context.Context, id uint) (models.BrandResponse, error) {
	var out models.BrandResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		b, err := store.BrandWithProducts(tx, id)
		if err != nil {
			return missing(brandEntity, id, err)
		}
		out = models.NewBrandResponse(b)
		return nil
	})
	return out, s.finish(brandEntity, opGet, err)
}

// CreateBrand inserts a brand
func (s *Service) CreateBrand(ctx context.Context, req models.BrandCreate) (models.BrandResponse, error) {
	var out models.BrandResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var b models.Brand
		req.Apply(&b)
		if err := store.Add(tx, &b); err != nil {
			return err
		}
		created, err := store.BrandWithProducts(tx, b.ID)
		if err != nil {
			return err
		}
		out = models.NewBrandResponse(created)
		return nil
	})
	return out, s.finish(brandEntity, opCreate, err)
}

// PatchBrand applies the fields present in p
func (s *Service) PatchBrand(ctx context.Context, id uint, p models.BrandPatch) (models.BrandResponse, error) {
	var out models.BrandResponse
	if err := p.Validate(); err != nil {
		return out, s.finish(brandEntity, opPatch, err)
	}
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var b models.Brand
		if err := store.GetByID(tx, &b, id); err != nil {
			return missing(brandEntity, id, err)
		}
		p.Apply(&b)
		if err := store.Save(tx, &b); err != nil {
			return err
		}
		updated, err := store.BrandWithProducts(tx, id)
		if err != nil {
			return err
		}
		out = models.NewBrandResponse(updated)
		return nil
	})
	return out, s.finish(brandEntity, opPatch, err)
}

// DeleteBrand removes a brand
func (s *Service) DeleteBrand(ctx context.Context, id uint) error {
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var b models.Brand
		if err := store.GetByID(tx, &b, id); err != nil {
			return missing(brandEntity, id, err)
		}
		return store.Remove(tx, &b)
	})
	return s.finish(brandEntity, opDelete, err)
}
