package models

import "time"

const (
	TableStatusAvailable   = "AVAILABLE"
	TableStatusUnavailable = "UNAVAILABLE"
	TableStatusBlocked     = "BLOCKED"
)

// Environment é uma área do salão (varanda, salão principal...).
type Environment struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RestaurantID uint   `gorm:"index" json:"restaurant_id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Active       bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Table struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	RestaurantID  uint         `gorm:"index" json:"restaurant_id"`
	EnvironmentID *uint        `json:"environment_id"`
	Environment   *Environment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"environment,omitempty"`

	Name     string `gorm:"size:50" json:"name"`
	Seats    int    `gorm:"not null" json:"seats"`
	IsActive bool   `json:"is_active"`
	Status   string `gorm:"size:20;default:'AVAILABLE'" json:"status"`

	// Posição no mapa do salão; usada apenas pela interface.
	PosX float64 `json:"pos_x"`
	PosY float64 `json:"pos_y"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bookable indica se a mesa pode receber alocação.
func (t *Table) Bookable() bool {
	return t.IsActive && t.Status == TableStatusAvailable
}
