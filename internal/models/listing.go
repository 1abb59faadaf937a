package models

import "time"

// Listing is a classified-ad row. Version is the optimistic-concurrency
// token checked at save time; a stale save is rejected by the store.
type Listing struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string    `gorm:"type:varchar(128);not null;index" json:"user_id" binding:"required"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id" binding:"required"`
	TypeID      uint      `gorm:"not null;index" json:"type_id" binding:"required"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title" binding:"required"`
	Description string    `gorm:"type:text;not null" json:"description" binding:"required"`
	Price       *float64  `gorm:"type:decimal(12,2)" json:"price,omitempty"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
	Location    string    `gorm:"type:varchar(200);not null" json:"location" binding:"required"`
	ImagePath   string    `gorm:"type:varchar(500)" json:"image_path,omitempty"`
	Version     int64     `gorm:"not null;default:1" json:"-"`
}

// TableName specifies the table name for Listing
func (Listing) TableName() string {
	return "listings"
}

// ListingDTO is the flat transfer object returned by every read path.
// Category and Type carry the denormalized display names resolved from
// the referenced rows.
type ListingDTO struct {
	ID          uint      `json:"id"`
	UserID      string    `json:"user_id"`
	CategoryID  uint      `json:"category_id"`
	Category    string    `json:"category"`
	TypeID      uint      `json:"type_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       *float64  `json:"price,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Location    string    `json:"location"`
	ImagePath   string    `json:"image_path,omitempty"`
}
