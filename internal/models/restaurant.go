package models

import "time"

type Restaurant struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	Slug       string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	OwnerEmail string `gorm:"size:100;not null" json:"owner_email"`
	Phone      string `gorm:"size:20" json:"phone"`
	Timezone   string `gorm:"size:64" json:"timezone"`

	MaxPartySize       int `json:"max_party_size"`
	MaxOnlinePartySize int `gorm:"default:8" json:"max_online_party_size"`

	// Horas de antecedência; aceitam fração (0.5 = 30 minutos).
	BookingCutoffHours      float64 `json:"booking_cutoff_hours"`
	CancellationCutoffHours float64 `json:"cancellation_cutoff_hours"`
	ModificationCutoffHours float64 `json:"modification_cutoff_hours"`

	EnableWaitlist     bool `gorm:"default:false" json:"enable_waitlist"`
	EnableTableJoining bool `json:"enable_table_joining"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
