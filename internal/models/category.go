package models

// Category is a listing category. Deleting a category removes its
// dependent listings (cascade handled by the store).
type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"type:varchar(100);not null" json:"name" binding:"required"`
	Listings []Listing `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}

// CategoryDTO is the transfer object for a category.
type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
