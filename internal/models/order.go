package models

import "time"

type Order struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ClientID uint `gorm:"index" json:"client_id"`
	Client   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	MasterID uint `gorm:"index" json:"master_id"`
	Master   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"master"`

	MasterServiceID uint          `json:"master_service_id"`
	MasterService   MasterService `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"master_service"`

	// Weak reference to the live design; the order owns Snapshot instead.
	DesignID *uint           `json:"design_id"`
	Snapshot *DesignSnapshot `gorm:"foreignKey:OrderID" json:"design_snapshot"`

	Status string `gorm:"size:30;default:'pending'" json:"status"`

	// Price and surcharge are frozen copies; live catalog edits never
	// reach back into them.
	Price           float64 `json:"price"`
	DesignSurcharge float64 `json:"design_surcharge"`
	DurationMin     int     `json:"duration_min"`

	RequestedTime time.Time  `json:"requested_time"`
	ProposedTime  *time.Time `json:"proposed_time"`
	ConfirmedTime *time.Time `json:"confirmed_time"`

	// Slot currently held or booked for this order.
	SlotID *uint `json:"slot_id"`

	ClientNotes string `gorm:"size:500" json:"client_notes"`
	MasterNotes string `gorm:"size:500" json:"master_notes"`

	RespondBy         time.Time  `json:"respond_by"`
	MasterRespondedAt *time.Time `json:"master_responded_at"`

	CompletedAt *time.Time `json:"completed_at"`
	CompletedBy string     `gorm:"size:20" json:"completed_by"`
	Rating      *int       `json:"rating"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CancelledBy string     `gorm:"size:20" json:"cancelled_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
