package reservation

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/dto"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
)

type GetReservationByCode struct {
	repo domain.Repository
}

func NewGetReservationByCode(repo domain.Repository) *GetReservationByCode {
	return &GetReservationByCode{repo: repo}
}

func (uc *GetReservationByCode) Execute(
	ctx context.Context,
	restaurantID uint,
	code string,
) (*dto.PublicReservationDTO, error) {

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, httperr.ErrBusiness("reservation_not_found")
	}

	r, err := loadReservation(ctx, uc.repo, restaurantID, 0, code)
	if err != nil {
		return nil, err
	}

	rest, err := uc.repo.GetRestaurantByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	return &dto.PublicReservationDTO{
		ReservationCode: r.ReservationCode,
		RestaurantName:  rest.Name,
		Date:            r.Date,
		SlotTime:        r.SlotTime,
		PartySize:       r.PartySize,
		Status:          r.Status,
		CustomerName:    r.Customer.Name,
		Notes:           r.Notes,
	}, nil
}
