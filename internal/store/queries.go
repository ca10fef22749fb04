package store

import (
	"github.com/ashendes/catalog-service/internal/models"
	"gorm.io/gorm"
)

// Each query below names the relations it loads; handlers rely on exactly
// that set being populated.

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}

// BrandWithProducts loads a brand and its products
func BrandWithProducts(tx *gorm.DB, id uint) (*models.Brand, error) {
	var b models.Brand
	if err := tx.Preload("Products", byID).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// ListBrandsWithProducts loads every brand and its products
func ListBrandsWithProducts(tx *gorm.DB) ([]models.Brand, error) {
	var out []models.Brand
	err := tx.Preload("Products", byID).Order("id").Find(&out).Error
	return out, err
}

// CategoryWithProducts loads a category and its products
func CategoryWithProducts(tx *gorm.DB, id uint) (*models.Category, error) {
	var c models.Category
	if err := tx.Preload("Products", byID).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// ListCategoriesWithProducts loads every category and its products
func ListCategoriesWithProducts(tx *gorm.DB) ([]models.Category, error) {
	var out []models.Category
	err := tx.Preload("Products", byID).Order("id").Find(&out).Error
	return out, err
}

// UserWithOrders loads a user and their orders
func UserWithOrders(tx *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	if err := tx.Preload("Orders", byID).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// ListUsersWithOrders loads every user and their orders
func ListUsersWithOrders(tx *gorm.DB) ([]models.User, error) {
	var out []models.User
	err := tx.Preload("Orders", byID).Order("id").Find(&out).Error
	return out, err
}

// ProductWithCategoryAndBrand loads a product, its category and its brand
func ProductWithCategoryAndBrand(tx *gorm.DB, id uint) (*models.Product, error) {
	var p models.Product
	if err := tx.Preload("Category").Preload("Brand").First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// ListProductsWithCategoryAndBrand loads every product with category and brand
func ListProductsWithCategoryAndBrand(tx *gorm.DB) ([]models.Product, error) {
	var out []models.Product
	err := tx.Preload("Category").Preload("Brand").Order("id").Find(&out).Error
	return out, err
}

// OrderWithUserAndItems loads an order, its user and its items
func OrderWithUserAndItems(tx *gorm.DB, id uint) (*models.Order, error) {
	var o models.Order
	if err := tx.Preload("User").Preload("Items", byID).First(&o, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

// ListOrdersWithUserAndItems loads every order with user and items
func ListOrdersWithUserAndItems(tx *gorm.DB) ([]models.Order, error) {
	var out []models.Order
	err := tx.Preload("User").Preload("Items", byID).Order("id").Find(&out).Error
	return out, err
}

// OrderItemWithOrderAndProduct loads an item, its order and its product
func OrderItemWithOrderAndProduct(tx *gorm.DB, id uint) (*models.OrderItem, error) {
	var it models.OrderItem
	if err := tx.Preload("Order").Preload("Product").First(&it, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &it, nil
}

// ListOrderItemsWithOrderAndProduct loads every item with order and product
func ListOrderItemsWithOrderAndProduct(tx *gorm.DB) ([]models.OrderItem, error) {
	var out []models.OrderItem
	err := tx.Preload("Order").Preload("Product").Order("id").Find(&out).Error
	return out, err
}
