package models

import "time"

type MasterService struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	MasterID uint `gorm:"index" json:"master_id"`

	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	// Default surcharge applied when the client attaches a design and no
	// per-service option overrides it. Nil means no service-level default.
	DesignSurcharge *float64 `json:"design_surcharge"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
