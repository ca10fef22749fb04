package models

import "time"

// User represents a customer account
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"`
	Email        string  `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string  `gorm:"column:password;size:255;not null"`
	FirstName    *string `gorm:"size:50"`
	LastName     *string `gorm:"size:50"`
	PhoneNumber  *string `gorm:"size:20"`
	Orders       []Order `gorm:"foreignKey:UserID"`
}

// UserCreate is the payload for registering or fully replacing a user
type UserCreate struct {
	Email       string  `json:"email" binding:"required,email,max=100"`
	Password    string  `json:"password" binding:"required,min=8,max=255"`
	FirstName   *string `json:"first_name" binding:"omitempty,max=50"`
	LastName    *string `json:"last_name" binding:"omitempty,max=50"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
}

// Apply overwrites every column of u. The caller hashes the password.
func (r UserCreate) Apply(u *User, passwordHash string) {
	u.Email = r.Email
	u.PasswordHash = passwordHash
	u.FirstName = r.FirstName
	u.LastName = r.LastName
	u.PhoneNumber = r.PhoneNumber
}

// UserPatch is the payload for a partial user update
type UserPatch struct {
	Email       Optional[string] `json:"email"`
	Password    Optional[string] `json:"password"`
	FirstName   Optional[string] `json:"first_name"`
	LastName    Optional[string] `json:"last_name"`
	PhoneNumber Optional[string] `json:"phone_number"`
}

func (p UserPatch) Validate() error {
	var errs FieldErrors
	errs = checkField(errs, "email", p.Email, false, "email,max=100")
	errs = checkField(errs, "password", p.Password, false, "min=8,max=255")
	errs = checkField(errs, "first_name", p.FirstName, true, "max=50")
	errs = checkField(errs, "last_name", p.LastName, true, "max=50")
	errs = checkField(errs, "phone_number", p.PhoneNumber, true, "max=20")
	return result(errs)
}

// Apply overwrites the profile fields that were sent. Password is handled by
// the caller since it has to be hashed first.
func (p UserPatch) Apply(u *User) {
	if p.Email.Set {
		u.Email = p.Email.Value
	}
	if p.FirstName.Set {
		u.FirstName = p.FirstName.Ptr()
	}
	if p.LastName.Set {
		u.LastName = p.LastName.Ptr()
	}
	if p.PhoneNumber.Set {
		u.PhoneNumber = p.PhoneNumber.Ptr()
	}
}

// UserOrderSummary is the order shape nested under a user
type UserOrderSummary struct {
	ID          uint      `json:"id"`
	OrderDate   time.Time `json:"order_date"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"total_amount"`
}

// UserResponse is the user as returned to clients. It has no password field.
type UserResponse struct {
	ID          uint               `json:"id"`
	Email       string             `json:"email"`
	FirstName   *string            `json:"first_name"`
	LastName    *string            `json:"last_name"`
	PhoneNumber *string            `json:"phone_number"`
	Orders      []UserOrderSummary `json:"orders"`
}

// NewUserResponse expects u.Orders to be loaded
func NewUserResponse(u *User) UserResponse {
	orders := make([]UserOrderSummary, 0, len(u.Orders))
	for _, o := range u.Orders {
		orders = append(orders, UserOrderSummary{
			ID:          o.ID,
			OrderDate:   o.OrderDate,
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
		})
	}
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Orders:      orders,
	}
}
