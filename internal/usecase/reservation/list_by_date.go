package reservation

import (
	"context"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/dto"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

type ListReservationsByDate struct {
	repo domain.Repository
}

func NewListReservationsByDate(
	repo domain.Repository,
) *ListReservationsByDate {
	return &ListReservationsByDate{
		repo: repo,
	}
}

// Execute lista todas as reservas do dia, inclusive canceladas, em ordem de horário.
func (uc *ListReservationsByDate) Execute(
	ctx context.Context,
	restaurantID uint,
	date string,
) ([]dto.ReservationListDTO, error) {

	if _, err := availability.DayOfWeek(date); err != nil {
		return nil, err
	}

	reservations, err := uc.repo.ListReservationsForDate(ctx, restaurantID, date)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReservationListDTO, 0, len(reservations))
	for i := range reservations {
		out = append(out, ToListDTO(&reservations[i]))
	}

	return out, nil
}

func ToListDTO(r *models.Reservation) dto.ReservationListDTO {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return dto.ReservationListDTO{
		ID:              r.ID,
		ReservationCode: r.ReservationCode,
		ShiftID:         r.ShiftID,
		SlotTime:        r.SlotTime,
		PartySize:       r.PartySize,
		Tables:          r.EffectiveTables(),
		Status:          r.Status,
		Source:          r.Source,
		CustomerName:    r.Customer.Name,
		CustomerPhone:   r.Customer.Phone,
		Notes:           r.Notes,
		Tags:            tags,
	}
}
