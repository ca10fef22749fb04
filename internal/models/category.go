package models

// Category groups products
type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	Name     string    `gorm:"size:50;uniqueIndex;not null"`
	Products []Product `gorm:"foreignKey:CategoryID"`
}

// CategoryCreate is the payload for creating a category
type CategoryCreate struct {
	Name string `json:"name" binding:"required,max=50"`
}

func (r CategoryCreate) Apply(c *Category) {
	c.Name = r.Name
}

// CategoryPatch is the payload for a partial category update
type CategoryPatch struct {
	Name Optional[string] `json:"name"`
}

func (p CategoryPatch) Validate() error {
	return result(checkField(nil, "name", p.Name, false, "min=1,max=50"))
}

func (p CategoryPatch) Apply(c *Category) {
	if p.Name.Set {
		c.Name = p.Name.Value
	}
}

// CategoryResponse is the category as returned to clients
type CategoryResponse struct {
	ID       uint             `json:"id"`
	Name     string           `json:"name"`
	Products []ProductSummary `json:"products"`
}

func NewCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Products: summarizeProducts(c.Products),
	}
}
