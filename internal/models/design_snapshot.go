package models

import "time"

// DesignSnapshot is the frozen copy of a design taken when the order is
// created. It never changes afterwards, whatever happens to the live design.
type DesignSnapshot struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"uniqueIndex" json:"order_id"`

	Title       string `gorm:"size:100" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	ImageURL    string `gorm:"size:500" json:"image_url"`
	VideoURL    string `gorm:"size:500" json:"video_url"`
	Type        string `gorm:"size:50" json:"type"`
	Source      string `gorm:"size:50" json:"source"`
	Tags        string `gorm:"size:255" json:"tags"`
	Color       string `gorm:"size:30" json:"color"`

	OriginalDesignID *uint  `json:"original_design_id"`
	AuthorID         uint   `json:"author_id"`
	AuthorName       string `gorm:"size:100" json:"author_name"`

	CreatedAt time.Time `json:"created_at"`
}
