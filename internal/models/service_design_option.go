package models

import "time"

// ServiceDesignOption pins a surcharge for a specific design offered with a
// specific service. It wins over the service default and the design price.
type ServiceDesignOption struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MasterServiceID uint `gorm:"uniqueIndex:idx_service_design" json:"master_service_id"`
	DesignID        uint `gorm:"uniqueIndex:idx_service_design" json:"design_id"`

	Surcharge float64 `json:"surcharge"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
