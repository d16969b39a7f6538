package models

import "time"

const (
	ReservationPending   = "PENDING"
	ReservationConfirmed = "CONFIRMED"
	ReservationCancelled = "CANCELLED"
	ReservationCompleted = "COMPLETED"
	ReservationNoShow    = "NO_SHOW"
)

const (
	SourcePhone  = "PHONE"
	SourceOnline = "ONLINE"
)

type ModificationEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Change    string    `json:"change"`
	Actor     string    `json:"actor"`
}

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RestaurantID uint `gorm:"index:idx_reservation_day,priority:1" json:"restaurant_id"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ShiftID uint  `json:"shift_id"`
	Shift   Shift `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	TableID      uint   `json:"table_id"`
	LinkedTables []uint `gorm:"serializer:json" json:"linked_tables"`

	Date      string `gorm:"size:10;index:idx_reservation_day,priority:2" json:"date"` // YYYY-MM-DD
	SlotTime  string `gorm:"size:5" json:"slot_time"`                                  // HH:MM
	PartySize int    `json:"party_size"`

	// Sobrescrevem os padrões do turno quando preenchidos.
	DwellMinutes  *int `json:"dwell_minutes,omitempty"`
	BufferMinutes *int `json:"buffer_minutes,omitempty"`

	Status          string `gorm:"size:20;default:'PENDING'" json:"status"`
	Source          string `gorm:"size:10;default:'PHONE'" json:"source"`
	ReservationCode string `gorm:"size:8;uniqueIndex;not null" json:"reservation_code"`

	Notes           string              `gorm:"size:500" json:"notes"`
	ModificationLog []ModificationEntry `gorm:"serializer:json" json:"modification_log"`
	Tags            []string            `gorm:"serializer:json" json:"tags"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveTables devolve o conjunto de mesas ocupado pela reserva.
func (r *Reservation) EffectiveTables() []uint {
	if len(r.LinkedTables) > 0 {
		return r.LinkedTables
	}
	if r.TableID == 0 {
		return nil
	}
	return []uint{r.TableID}
}

// OccupiesTables indica se a reserva ainda bloqueia as mesas.
func (r *Reservation) OccupiesTables() bool {
	return r.Status != ReservationCancelled && r.Status != ReservationNoShow
}

// Counts indica se a reserva entra na lotação do turno.
func (r *Reservation) Counts() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}
