package dto

import "time"

type OrderListDTO struct {
	ID            uint       `json:"id"`
	Reference     string     `json:"reference"`
	Status        string     `json:"status"`
	Price         float64    `json:"price"`
	ServiceTitle  string     `json:"service_title"`
	DesignTitle   string     `json:"design_title"`
	RequestedTime time.Time  `json:"requested_time"`
	ProposedTime  *time.Time `json:"proposed_time"`
	ConfirmedTime *time.Time `json:"confirmed_time"`
}
