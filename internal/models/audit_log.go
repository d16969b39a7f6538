package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RestaurantID uint   `gorm:"index" json:"restaurant_id"`
	Actor        string `gorm:"size:100" json:"actor"`
	Action       string `gorm:"size:50;not null" json:"action"`

	Entity        string `gorm:"size:50" json:"entity"`
	EntityID      *uint  `json:"entity_id"`
	CorrelationID string `gorm:"size:36" json:"correlation_id"`
	Metadata      string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
