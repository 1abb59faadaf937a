package models

// AdType is a listing type (for sale, wanted, ...). Deletion cascades to
// dependent listings the same way Category does.
type AdType struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"type:varchar(100);not null" json:"name" binding:"required"`
	Listings []Listing `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for AdType
func (AdType) TableName() string {
	return "ad_types"
}

// TypeDTO is the transfer object for a listing type.
type TypeDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
