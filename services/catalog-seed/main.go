package main

import (
	"context"
	"time"

	"github.com/ashendes/catalog-service/internal/client"
	"github.com/ashendes/catalog-service/internal/config"
	"github.com/ashendes/catalog-service/internal/models"
	"github.com/ashendes/catalog-service/internal/patterns"
	log "github.com/sirupsen/logrus"
)

type sampleProduct struct {
	Name     string
	Category string
	Brand    string
	Price    float64
}

var (
	sampleCategories = []string{"Computers", "Accessories", "Audio"}
	sampleBrands     = []string{"Acme", "Globex"}
	sampleProducts   = []sampleProduct{
		{Name: "Laptop", Category: "Computers", Brand: "Acme", Price: 999.99},
		{Name: "Monitor", Category: "Computers", Brand: "Globex", Price: 299.99},
		{Name: "Mouse", Category: "Accessories", Brand: "Acme", Price: 29.99},
		{Name: "Keyboard", Category: "Accessories", Brand: "Globex", Price: 79.99},
		{Name: "Headphones", Category: "Audio", Brand: "Acme", Price: 149.99},
	}
)

func init() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	baseURL := config.GetEnv("CATALOG_URL", "http://localhost:8000")
	c := client.New(baseURL, patterns.DefaultTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	status, err := c.Health(ctx)
	if err != nil || status != "ok" {
		log.WithField("catalog_url", baseURL).Fatal("Catalog service is not healthy: ", err)
	}

	if err := seed(ctx, c); err != nil {
		log.Fatal("Seeding failed: ", err)
	}
	log.WithField("catalog_url", baseURL).Info("Sample data loaded")
}

func seed(ctx context.Context, c *client.Client) error {
	categoryIDs := make(map[string]uint)
	for _, name := range sampleCategories {
		cat, err := c.CreateCategory(ctx, models.CategoryCreate{Name: name})
		if err != nil {
			return err
		}
		categoryIDs[name] = cat.ID
	}

	brandIDs := make(map[string]uint)
	for _, name := range sampleBrands {
		b, err := c.CreateBrand(ctx, models.BrandCreate{Name: name})
		if err != nil {
			return err
		}
		brandIDs[name] = b.ID
	}

	productIDs := make([]uint, 0, len(sampleProducts))
	for _, sp := range sampleProducts {
		p, err := c.CreateProduct(ctx, models.ProductCreate{
			Name:       sp.Name,
			Price:      sp.Price,
			CategoryID: categoryIDs[sp.Category],
			BrandID:    brandIDs[sp.Brand],
		})
		if err != nil {
			return err
		}
		productIDs = append(productIDs, p.ID)
	}

	firstName := "Demo"
	user, err := c.CreateUser(ctx, models.UserCreate{
		Email:     "demo@example.com",
		Password:  "password123",
		FirstName: &firstName,
	})
	if err != nil {
		return err
	}

	address := "1 Sample Street"
	order, err := c.CreateOrder(ctx, models.OrderCreate{
		UserID:          user.ID,
		Status:          models.OrderStatusPending,
		ShippingAddress: &address,
	})
	if err != nil {
		return err
	}

	for i, pid := range productIDs[:2] {
		qty := i + 1
		item, err := c.CreateOrderItem(ctx, models.OrderItemCreate{OrderID: order.ID, ProductID: pid, Quantity: &qty})
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"order_id":   order.ID,
			"product_id": pid,
			"unit_price": item.UnitPrice,
		}).Info("Order item added")
	}

	log.WithFields(log.Fields{
		"categories": len(categoryIDs),
		"brands":     len(brandIDs),
		"products":   len(productIDs),
		"order_id":   order.ID,
	}).Info("Seed complete")
	return nil
}
