package reservation

import (
	"context"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/mesa-scheduler/internal/metrics"
)

type GetAvailableSlotsInput struct {
	RestaurantID uint
	Date         string
	PartySize    int
}

type GetAvailableSlots struct {
	*Deps
}

func NewGetAvailableSlots(deps *Deps) *GetAvailableSlots {
	return &GetAvailableSlots{Deps: deps}
}

// Execute devolve, por turno aberto no dia, os horários com mesa livre.
// Turnos sem nenhum horário livre aparecem com a lista vazia.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in GetAvailableSlotsInput,
) ([]availability.ShiftSlots, error) {

	rest, err := uc.restaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	now := uc.now(rest)

	if in.PartySize <= 0 {
		return nil, &availability.Error{
			Kind:    availability.KindInvalidPartySize,
			Message: "Informe o número de pessoas da reserva.",
		}
	}
	if _, err := availability.ParseLocalDate(in.Date, now.Location()); err != nil {
		return nil, err
	}
	if err := availability.ValidatePartySize(rest, in.PartySize); err != nil {
		return nil, err
	}

	// A grade de hoje depende da hora atual (antecedência mínima), então não é cacheada.
	cacheable := uc.Cache != nil && in.Date != now.Format("2006-01-02")

	if cacheable {
		if cached, ok := uc.fromCache(ctx, in); ok {
			return cached, nil
		}
	}

	shifts, err := uc.Repo.ListShifts(ctx, rest.ID)
	if err != nil {
		return nil, err
	}

	open, err := availability.ValidateOpeningHours(in.Date, shifts)
	if err != nil {
		return nil, err
	}

	tables, err := uc.Repo.ListTables(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	existing, err := uc.Repo.ListReservationsForDate(ctx, rest.ID, in.Date)
	if err != nil {
		return nil, err
	}

	out := make([]availability.ShiftSlots, 0, len(open))
	for i := range open {
		shift := &open[i]
		slots := availability.GenerateAvailableSlots(availability.SlotQuery{
			Shift:              shift,
			Date:               in.Date,
			PartySize:          in.PartySize,
			Tables:             tables,
			Reservations:       existing,
			BookingCutoffHours: rest.BookingCutoffHours,
			AllowJoining:       rest.EnableTableJoining,
			Now:                now,
		})
		if slots == nil {
			slots = []availability.Slot{}
		}

		out = append(out, availability.ShiftSlots{
			ShiftID:   shift.ID,
			ShiftName: shift.Name,
			Slots:     slots,
		})
	}

	if cacheable {
		if err := uc.Cache.Set(ctx, rest.ID, in.Date, in.PartySize, out); err != nil {
			uc.Logger.Warn().Err(err).Msg("slot cache write failed")
		}
	}

	return out, nil
}

func (uc *GetAvailableSlots) fromCache(ctx context.Context, in GetAvailableSlotsInput) ([]availability.ShiftSlots, bool) {
	cached, ok, err := uc.Cache.Get(ctx, in.RestaurantID, in.Date, in.PartySize)
	switch {
	case err != nil:
		metrics.IncSlotCache("error")
		uc.Logger.Warn().Err(err).Msg("slot cache read failed")
		return nil, false
	case !ok:
		metrics.IncSlotCache("miss")
		return nil, false
	}

	metrics.IncSlotCache("hit")
	return cached, true
}
