package models

import "time"

// Order represents a customer order. TotalAmount starts at zero and is not
// recomputed when items are added.
type Order struct {
	ID              uint `gorm:"primaryKey;autoIncrement"`
	UserID          uint `gorm:"not null;index"`
	User            User
	Status          string `gorm:"size:20;not null"`
	ShippingAddress *string
	OrderDate       time.Time   `gorm:"not null"`
	TotalAmount     float64     `gorm:"not null"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"`
}

// OrderStatus constants
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderCreate is the payload for creating an order
type OrderCreate struct {
	UserID          uint    `json:"user_id" binding:"required,gt=0"`
	Status          string  `json:"status" binding:"required,max=20"`
	ShippingAddress *string `json:"shipping_address"`
}

// Apply fills a new order. OrderDate and TotalAmount are server-owned.
func (r OrderCreate) Apply(o *Order, now time.Time) {
	o.UserID = r.UserID
	o.Status = r.Status
	o.ShippingAddress = r.ShippingAddress
	o.OrderDate = now
	o.TotalAmount = 0
}

// OrderPatch is the payload for a partial order update
type OrderPatch struct {
	Status          Optional[string] `json:"status"`
	ShippingAddress Optional[string] `json:"shipping_address"`
}

func (p OrderPatch) Validate() error {
	var errs FieldErrors
	errs = checkField(errs, "status", p.Status, false, "min=1,max=20")
	errs = checkField(errs, "shipping_address", p.ShippingAddress, true, "")
	return result(errs)
}

func (p OrderPatch) Apply(o *Order) {
	if p.Status.Set {
		o.Status = p.Status.Value
	}
	if p.ShippingAddress.Set {
		o.ShippingAddress = p.ShippingAddress.Ptr()
	}
}

// OrderUserRef is the user nested under an order
type OrderUserRef struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"first_name"`
}

// OrderLine is the item shape nested under an order
type OrderLine struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderResponse is the order as returned to clients
type OrderResponse struct {
	ID              uint         `json:"id"`
	UserID          uint         `json:"user_id"`
	Status          string       `json:"status"`
	ShippingAddress *string      `json:"shipping_address"`
	OrderDate       time.Time    `json:"order_date"`
	TotalAmount     float64      `json:"total_amount"`
	User            OrderUserRef `json:"user"`
	Items           []OrderLine  `json:"items"`
}

// NewOrderResponse expects o.User and o.Items to be loaded
func NewOrderResponse(o *Order) OrderResponse {
	items := make([]OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderLine{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		OrderDate:       o.OrderDate,
		TotalAmount:     o.TotalAmount,
		User:            OrderUserRef{ID: o.User.ID, Email: o.User.Email, FirstName: o.User.FirstName},
		Items:           items,
	}
}
