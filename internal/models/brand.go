package models

// Brand represents a product manufacturer
type Brand struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:50;uniqueIndex;not null"`
	Description *string
	Products    []Product `gorm:"foreignKey:BrandID"`
}

// BrandCreate is the payload for creating a brand
type BrandCreate struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Description *string `json:"description"`
}

// Apply copies the payload onto b
func (r BrandCreate) Apply(b *Brand) {
	b.Name = r.Name
	b.Description = r.Description
}

// BrandPatch is the payload for a partial brand update
type BrandPatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// Validate checks the fields that were sent
func (p BrandPatch) Validate() error {
	var errs FieldErrors
	errs = checkField(errs, "name", p.Name, false, "min=1,max=50")
	errs = checkField(errs, "description", p.Description, true, "")
	return result(errs)
}

// Apply overwrites the fields that were sent
func (p BrandPatch) Apply(b *Brand) {
	if p.Name.Set {
		b.Name = p.Name.Value
	}
	if p.Description.Set {
		b.Description = p.Description.Ptr()
	}
}

// ProductSummary is the product shape nested under brands and categories
type ProductSummary struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func summarizeProducts(products []Product) []ProductSummary {
	out := make([]ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	return out
}

// BrandResponse is the brand as returned to clients
type BrandResponse struct {
	ID          uint             `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Products    []ProductSummary `json:"products"`
}

// NewBrandResponse expects b.Products to be loaded
func NewBrandResponse(b *Brand) BrandResponse {
	return BrandResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Products:    summarizeProducts(b.Products),
	}
}
