package reservation

import (
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending   Status = models.ReservationPending
	StatusConfirmed Status = models.ReservationConfirmed
	StatusCancelled Status = models.ReservationCancelled
	StatusCompleted Status = models.ReservationCompleted
	StatusNoShow    Status = models.ReservationNoShow
)

// Open indica se a reserva ainda pode mudar de estado.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if !current.Open() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if !current.Open() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !current.Open() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanModify vale para data, horário, pessoas e observações.
func CanModify(current Status) error {
	if !current.Open() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus: reservas online aguardam confirmação do restaurante,
// reservas por telefone já nascem confirmadas.
func InitialStatus(source string) Status {
	if source == models.SourceOnline {
		return StatusPending
	}
	return StatusConfirmed
}
