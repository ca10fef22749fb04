package catalog

import (
	"context"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/store"
	"gorm.io/gorm"
)

// ListOrderItems returns every item with its order and product
func (s *Service) ListOrderItems(ctx context.Context) ([]models.OrderItemResponse, error) {
	var out []models.OrderItemResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		items, err := store.ListOrderItemsWithOrderAndProduct(tx)
		if err != nil {
			return err
		}
		out = make([]models.OrderItemResponse, 0, len(items))
		for i := range items {
			out = append(out, models.NewOrderItemResponse(&items[i]))
		}
		return nil
	})
	return out, s.finish(orderItemEntity, opList, err)
}

// GetOrderItem returns one item with its order and product
func (s *Service) GetOrderItem(ctx context.Context, id uint) (models.OrderItemResponse, error) {
	var out models.OrderItemResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		it, err := store.OrderItemWithOrderAndProduct(tx, id)
		if err != nil {
			return missing(orderItemEntity, id, err)
		}
		out = models.NewOrderItemResponse(it)
		return nil
	})
	return out, s.finish(orderItemEntity, opGet, err)
}

// CreateOrderItem adds a product to an order, copying the product's current
// price into the item. The order's total is left as it is.
func (s *Service) CreateOrderItem(ctx context.Context, req models.OrderItemCreate) (models.OrderItemResponse, error) {
	var out models.OrderItemResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var p models.Product
		if err := store.GetByID(tx, &p, req.ProductID); err != nil {
			return missing(productEntity, req.ProductID, err)
		}

		var it models.OrderItem
		req.Apply(&it, p.Price)
		if err := store.Add(tx, &it); err != nil {
			return err
		}
		return s.reloadOrderItem(tx, it.ID, &out)
	})
	return out, s.finish(orderItemEntity, opCreate, err)
}

// PatchOrderItem changes the quantity of an item. The unit price is fixed.
func (s *Service) PatchOrderItem(ctx context.Context, id uint, p models.OrderItemPatch) (models.OrderItemResponse, error) {
	var out models.OrderItemResponse
	if err := p.Validate(); err != nil {
		return out, s.finish(orderItemEntity, opPatch, err)
	}
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var it models.OrderItem
		if err := store.GetByID(tx, &it, id); err != nil {
			return missing(orderItemEntity, id, err)
		}
		p.Apply(&it)
		if err := store.Save(tx, &it); err != nil {
			return err
		}
		return s.reloadOrderItem(tx, id, &out)
	})
	return out, s.finish(orderItemEntity, opPatch, err)
}

// DeleteOrderItem removes an item from its order
func (s *Service) DeleteOrderItem(ctx context.Context, id uint) error {
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var it models.OrderItem
		if err := store.GetByID(tx, &it, id); err != nil {
			return missing(orderItemEntity, id, err)
		}
		return store.Remove(tx, &it)
	})
	return s.finish(orderItemEntity, opDelete, err)
}

func (s *Service) reloadOrderItem(tx *gorm.DB, id uint, out *models.OrderItemResponse) error {
	it, err := store.OrderItemWithOrderAndProduct(tx, id)
	if err != nil {
		return err
	}
	*out = models.NewOrderItemResponse(it)
	return nil
}
