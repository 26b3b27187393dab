package models

import "time"

type Design struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	AuthorID uint `gorm:"index" json:"author_id"`
	Author   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	ImageURL    string `gorm:"size:500" json:"image_url"`
	VideoURL    string `gorm:"size:500" json:"video_url"`
	Type        string `gorm:"size:50" json:"type"`
	Source      string `gorm:"size:50" json:"source"`
	Tags        string `gorm:"size:255" json:"tags"`
	Color       string `gorm:"size:30" json:"color"`

	// Advertised surcharge; the lowest-precedence input to price resolution.
	Price *float64 `json:"price"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
