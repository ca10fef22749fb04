package catalog

import (
	"context"

	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/store"
	"gorm.io/gorm"
)

// ListOrders returns every order with its user and items
func (s *Service) ListOrders(ctx context.Context) ([]models.OrderResponse, error) {
	var out []models.OrderResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		orders, err := store.ListOrdersWithUserAndItems(tx)
		if err != nil {
			return err
		}
		out = make([]models.OrderResponse, 0, len(orders))
		for i := range orders {
			out = append(out, models.NewOrderResponse(&orders[i]))
		}
		return nil
	})
	return out, s.finish(orderEntity, opList, err)
}

// GetOrder returns one order with its user and items
func (s *Service) GetOrder(ctx context.Context, id uint) (models.OrderResponse, error) {
	var out models.OrderResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		o, err := store.OrderWithUserAndItems(tx, id)
		if err != nil {
			return missing(orderEntity, id, err)
		}
		out = models.NewOrderResponse(o)
		return nil
	})
	return out, s.finish(orderEntity, opGet, err)
}

// CreateOrder opens an order for an existing user. The order date is set here
// and the total starts at zero.
func (s *Service) CreateOrder(ctx context.Context, req models.OrderCreate) (models.OrderResponse, error) {
	var out models.OrderResponse
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var o models.Order
		req.Apply(&o, s.orderDate())
		if err := store.Add(tx, &o); err != nil {
			return err
		}
		return s.reloadOrder(tx, o.ID, &out)
	})
	return out, s.finish(orderEntity, opCreate, err)
}

// PatchOrder applies the fields present in p. Order date and total are not
// writable.
func (s *Service) PatchOrder(ctx context.Context, id uint, p models.OrderPatch) (models.OrderResponse, error) {
	var out models.OrderResponse
	if err := p.Validate(); err != nil {
		return out, s.finish(orderEntity, opPatch, err)
	}
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var o models.Order
		if err := store.GetByID(tx, &o, id); err != nil {
			return missing(orderEntity, id, err)
		}
		p.Apply(&o)
		if err := store.Save(tx, &o); err != nil {
			return err
		}
		return s.reloadOrder(tx, id, &out)
	})
	return out, s.finish(orderEntity, opPatch, err)
}

// DeleteOrder removes an order
func (s *Service) DeleteOrder(ctx context.Context, id uint) error {
	err := s.store.Session(ctx, func(tx *gorm.DB) error {
		var o models.Order
		if err := store.GetByID(tx, &o, id); err != nil {
			return missing(orderEntity, id, err)
		}
		return store.Remove(tx, &o)
	})
	return s.finish(orderEntity, opDelete, err)
}

func (s *Service) reloadOrder(tx *gorm.DB, id uint, out *models.OrderResponse) error {
	o, err := store.OrderWithUserAndItems(tx, id)
	if err != nil {
		return err
	}
	*out = models.NewOrderResponse(o)
	return nil
}
