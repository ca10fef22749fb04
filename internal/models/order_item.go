package models

// OrderItem is one line of an order. UnitPrice is copied from the product when
// the item is created and never refreshed.
type OrderItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"`
	OrderID   uint `gorm:"not null;index"`
	Order     Order
	ProductID uint `gorm:"not null;index"`
	Product   Product
	Quantity  int     `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
}

// DefaultQuantity is used when an item is created without a quantity
const DefaultQuantity = 1

// OrderItemCreate is the payload for adding an item to an order
type OrderItemCreate struct {
	OrderID   uint `json:"order_id" binding:"required,gt=0"`
	ProductID uint `json:"product_id" binding:"required,gt=0"`
	Quantity  *int `json:"quantity" binding:"omitempty,gt=0"`
}

// Apply fills a new item and snapshots unitPrice
func (r OrderItemCreate) Apply(it *OrderItem, unitPrice float64) {
	it.OrderID = r.OrderID
	it.ProductID = r.ProductID
	it.Quantity = DefaultQuantity
	if r.Quantity != nil {
		it.Quantity = *r.Quantity
	}
	it.UnitPrice = unitPrice
}

// OrderItemPatch only allows the quantity to change
type OrderItemPatch struct {
	Quantity Optional[int] `json:"quantity"`
}

func (p OrderItemPatch) Validate() error {
	return result(checkField(nil, "quantity", p.Quantity, false, "gt=0"))
}

func (p OrderItemPatch) Apply(it *OrderItem) {
	if p.Quantity.Set {
		it.Quantity = p.Quantity.Value
	}
}

// ItemOrderRef is the order nested under an item
type ItemOrderRef struct {
	ID          uint    `json:"id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

// ItemProductRef is the product nested under an item
type ItemProductRef struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderItemResponse is the item as returned to clients
type OrderItemResponse struct {
	ID        uint           `json:"id"`
	OrderID   uint           `json:"order_id"`
	ProductID uint           `json:"product_id"`
	Quantity  int            `json:"quantity"`
	UnitPrice float64        `json:"unit_price"`
	Order     ItemOrderRef   `json:"order"`
	Product   ItemProductRef `json:"product"`
}

// NewOrderItemResponse expects it.Order and it.Product to be loaded
func NewOrderItemResponse(it *OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        it.ID,
		OrderID:   it.OrderID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		Order:     ItemOrderRef{ID: it.Order.ID, Status: it.Order.Status, TotalAmount: it.Order.TotalAmount},
		Product:   ItemProductRef{ID: it.Product.ID, Name: it.Product.Name, Price: it.Product.Price},
	}
}
