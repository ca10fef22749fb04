package models

// Product represents a catalog item
type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:100;uniqueIndex;not null"`
	Description *string `gorm:"size:255"`
	Price       float64 `gorm:"not null"`
	InStock     bool    `gorm:"not null"`
	CategoryID  uint    `gorm:"not null;index"`
	Category    Category
	BrandID     uint `gorm:"not null;index"`
	Brand       Brand
	OrderItems  []OrderItem `gorm:"foreignKey:ProductID"`
}

// ProductCreate is the payload for creating or fully replacing a product.
// InStock defaults to true when omitted.
type ProductCreate struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	CategoryID  uint    `json:"category_id" binding:"required,gt=0"`
	BrandID     uint    `json:"brand_id" binding:"required,gt=0"`
	InStock     *bool   `json:"in_stock"`
}

// Validate rejects a price that rounds down to zero. Binding tags have already
// checked the raw value.
func (r ProductCreate) Validate() error {
	return result(checkRoundedPrice(nil, Some(r.Price)))
}

// Apply overwrites every column of p, rounding the price
func (r ProductCreate) Apply(p *Product) {
	p.Name = r.Name
	p.Description = r.Description
	p.Price = RoundPrice(r.Price)
	p.CategoryID = r.CategoryID
	p.BrandID = r.BrandID
	p.InStock = true
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
}

// ProductPatch is the payload for a partial product update
type ProductPatch struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[string]  `json:"description"`
	Price       Optional[float64] `json:"price"`
	InStock     Optional[bool]    `json:"in_stock"`
	CategoryID  Optional[uint]    `json:"category_id"`
	BrandID     Optional[uint]    `json:"brand_id"`
}

func (p ProductPatch) Validate() error {
	var errs FieldErrors
	errs = checkField(errs, "name", p.Name, false, "min=1,max=100")
	errs = checkField(errs, "description", p.Description, true, "max=255")
	errs = checkField(errs, "price", p.Price, false, "gt=0")
	errs = checkRoundedPrice(errs, p.Price)
	errs = checkField(errs, "in_stock", p.InStock, false, "")
	errs = checkField(errs, "category_id", p.CategoryID, false, "gt=0")
	errs = checkField(errs, "brand_id", p.BrandID, false, "gt=0")
	return result(errs)
}

func (p ProductPatch) Apply(prod *Product) {
	if p.Name.Set {
		prod.Name = p.Name.Value
	}
	if p.Description.Set {
		prod.Description = p.Description.Ptr()
	}
	if p.Price.Set {
		prod.Price = RoundPrice(p.Price.Value)
	}
	if p.InStock.Set {
		prod.InStock = p.InStock.Value
	}
	if p.CategoryID.Set {
		prod.CategoryID = p.CategoryID.Value
	}
	if p.BrandID.Set {
		prod.BrandID = p.BrandID.Value
	}
}

func checkRoundedPrice(errs FieldErrors, price Optional[float64]) FieldErrors {
	if price.HasValue() && price.Value > 0 && RoundPrice(price.Value) <= 0 {
		errs = append(errs, FieldError{Field: "price", Message: "must be at least 0.01 after rounding"})
	}
	return errs
}

// CategoryRef is the category nested under a product
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// BrandRef is the brand nested under a product
type BrandRef struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ProductResponse is the product as returned to clients
type ProductResponse struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description"`
	Price       float64     `json:"price"`
	InStock     bool        `json:"in_stock"`
	CategoryID  uint        `json:"category_id"`
	BrandID     uint        `json:"brand_id"`
	Category    CategoryRef `json:"category"`
	Brand       BrandRef    `json:"brand"`
}

// NewProductResponse expects p.Category and p.Brand to be loaded
func NewProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		InStock:     p.InStock,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		Category:    CategoryRef{ID: p.Category.ID, Name: p.Category.Name},
		Brand:       BrandRef{ID: p.Brand.ID, Name: p.Brand.Name, Description: p.Brand.Description},
	}
}
