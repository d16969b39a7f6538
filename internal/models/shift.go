package models

import (
	"slices"
	"time"
)

// Shift é um período de atendimento recorrente (almoço, jantar...).
type Shift struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name      string `gorm:"size:50;not null" json:"name"`
	StartTime string `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	SlotIntervalMinutes  int `gorm:"default:15" json:"slot_interval_minutes"`
	DefaultDwellMinutes  int `gorm:"default:90" json:"default_dwell_minutes"`
	DefaultBufferMinutes int `json:"default_buffer_minutes"`

	MaxCapacity *int  `json:"max_capacity"`
	DaysOfWeek  []int `gorm:"serializer:json" json:"days_of_week"` // 0=domingo
	Active      bool  `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Shift) RunsOn(weekday int) bool {
	return slices.Contains(s.DaysOfWeek, weekday)
}
