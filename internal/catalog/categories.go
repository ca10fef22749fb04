package catalog

import (
	"context"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/store"
	"gorm.io/gorm"
)

// ListCategories returns every category with its products
func (s *Service) ListCategories(ctx context.Context) ([]models.CategoryResponse, error) {
	var out []models.CategoryResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		categories, err := store.ListCategoriesWithProducts(tx)
		if err != nil {
			return err
		}
		out = make([]models.CategoryResponse, 0, len(categories))
		for i := range categories {
			out = append(out, models.NewCategoryResponse(&categories[i]))
		}
		return nil
	})
	return out, s.finish(categoryEntity, opList, err)
}

// GetCategory returns one category with its products
func (s *Service) GetCategory(ctx context.Context, id uint) (models.CategoryResponse, error) {
	var out models.CategoryResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		c, err := store.CategoryWithProducts(tx, id)
		if err != nil {
			return missing(categoryEntity, id, err)
		}
		out = models.NewCategoryResponse(c)
		return nil
	})
	return out, s.finish(categoryEntity, opGet, err)
}

// CreateCategory inserts a category
func (s *Service) CreateCategory(ctx context.Context, req models.CategoryCreate) (models.CategoryResponse, error) {
	var out models.CategoryResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var c models.Category
		req.Apply(&c)
		if err := store.Add(tx, &c); err != nil {
			return err
		}
		created, err := store.CategoryWithProducts(tx, c.ID)
		if err != nil {
			return err
		}
		out = models.NewCategoryResponse(created)
		return nil
	})
	return out, s.finish(categoryEntity, opCreate, err)
}

// PatchCategory applies the fields present in p
func (s *Service) PatchCategory(ctx context.Context, id uint, p models.CategoryPatch) (models.CategoryResponse, error) {
	var out models.CategoryResponse
	if err := p.Validate(); err != nil {
		return out, s.finish(categoryEntity, opPatch, err)
	}
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var c models.Category
		if err := store.GetByID(tx, &c, id); err != nil {
			return missing(categoryEntity, id, err)
		}
		p.Apply(&c)
		if err := store.Save(tx, &c); err != nil {
			return err
		}
		updated, err := store.CategoryWithProducts(tx, id)
		if err != nil {
			return err
		}
		out = models.NewCategoryResponse(updated)
		return nil
	})
	return out, s.finish(categoryEntity, opPatch, err)
}

// DeleteCategory removes a category
func (s *Service) DeleteCategory(ctx context.Context, id uint) error {
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var c models.Category
		if err := store.GetByID(tx, &c, id); err != nil {
			return missing(categoryEntity, id, err)
		}
		return store.Remove(tx, &c)
	})
	return s.finish(categoryEntity, opDelete, err)
}
