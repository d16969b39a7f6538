package reservation

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateReservationInput: campos nil não mudam. A reserva é localizada pelo
// código quando Code vem preenchido.
type UpdateReservationInput struct {
	RestaurantID  uint
	ReservationID uint
	Code          string
	Actor         Actor

	Date      *string
	ShiftID   *uint
	SlotTime  *string
	PartySize *int
	Notes     *string
}

// ======================================================
// USE CASE
// ======================================================

type UpdateReservation struct {
	*Deps
}

func NewUpdateReservation(deps *Deps) *UpdateReservation {
	return &UpdateReservation{Deps: deps}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateReservation) Execute(
	ctx context.Context,
	in UpdateReservationInput,
) (*models.Reservation, error) {

	rest, err := uc.restaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	current, err := loadReservation(ctx, uc.Repo, rest.ID, in.ReservationID, in.Code)
	if err != nil {
		return nil, err
	}

	if err := domain.CanModify(domain.Status(current.Status)); err != nil {
		return nil, err
	}

	now := uc.now(rest)
	if in.Actor.Customer {
		if err := domain.CheckModificationCutoff(rest, current, now); err != nil {
			return nil, err
		}
	}

	targetDate := current.Date
	if in.Date != nil {
		targetDate = *in.Date
	}

	var (
		updated *models.Reservation
		change  string
	)

	err = uc.Repo.WithinBookingLock(ctx, rest.ID, targetDate, func(tx domain.Repository) error {
		// relê dentro da trava: a reserva pode ter mudado desde a primeira leitura
		r, err := tx.GetReservation(ctx, rest.ID, current.ID)
		if err != nil {
			return err
		}
		if err := domain.CanModify(domain.Status(r.Status)); err != nil {
			return err
		}

		before := *r
		before.LinkedTables = slices.Clone(r.LinkedTables)

		shifts, err := tx.ListShifts(ctx, rest.ID)
		if err != nil {
			return err
		}
		tables, err := tx.ListTables(ctx, rest.ID)
		if err != nil {
			return err
		}
		existing, err := tx.ListReservationsForDate(ctx, rest.ID, targetDate)
		if err != nil {
			return err
		}

		if movesInTime(r, in) {
			if err := uc.move(rest, r, in, shifts, tables, existing, now); err != nil {
				return err
			}
		} else if in.PartySize != nil && *in.PartySize != r.PartySize {
			if err := uc.resize(rest, r, *in.PartySize, shifts, tables, existing); err != nil {
				return err
			}
		}

		if in.Notes != nil {
			r.Notes = strings.TrimSpace(*in.Notes)
		}

		change = domain.GenerateChangeLog(&before, r)
		if change == "" {
			updated = r
			return nil
		}
		domain.AddModification(r, change, in.Actor.String(), now)

		if err := tx.UpdateReservation(ctx, r); err != nil {
			return err
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if change == "" {
		return updated, nil
	}

	uc.invalidate(ctx, rest.ID, current.Date, updated.Date)
	uc.dispatch(ctx, rest.ID, in.Actor, "reservation_updated", updated, map[string]any{
		"code":   updated.ReservationCode,
		"change": change,
	})

	return updated, nil
}

func movesInTime(r *models.Reservation, in UpdateReservationInput) bool {
	return (in.Date != nil && *in.Date != r.Date) ||
		(in.SlotTime != nil && *in.SlotTime != r.SlotTime) ||
		(in.ShiftID != nil && *in.ShiftID != r.ShiftID)
}

// move revalida a reserva inteira no novo dia/horário, ignorando ela mesma.
func (uc *UpdateReservation) move(
	rest *models.Restaurant,
	r *models.Reservation,
	in UpdateReservationInput,
	shifts []models.Shift,
	tables []models.Table,
	existing []models.Reservation,
	now time.Time,
) error {

	req := availability.BookingRequest{
		Restaurant:           rest,
		Date:                 r.Date,
		ShiftID:              r.ShiftID,
		SlotTime:             r.SlotTime,
		PartySize:            r.PartySize,
		Source:               r.Source,
		Shifts:               shifts,
		Tables:               tables,
		Reservations:         existing,
		ExcludeReservationID: r.ID,
		Now:                  now,
	}
	if in.Date != nil {
		req.Date = *in.Date
	}
	if in.ShiftID != nil {
		req.ShiftID = *in.ShiftID
	}
	if in.SlotTime != nil {
		req.SlotTime = *in.SlotTime
	}
	if in.PartySize != nil {
		req.PartySize = *in.PartySize
	}

	alloc, err := availability.ValidateReservation(req)
	if err != nil {
		metrics.IncAllocationFailure(string(availability.KindOf(err)))
		return err
	}

	r.Date = req.Date
	r.ShiftID = alloc.Shift.ID
	r.SlotTime = req.SlotTime
	r.PartySize = req.PartySize
	domain.AssignTables(r, alloc.TableIDs())
	return nil
}

// resize troca só o número de pessoas, mantendo data e horário.
func (uc *UpdateReservation) resize(
	rest *models.Restaurant,
	r *models.Reservation,
	partySize int,
	shifts []models.Shift,
	tables []models.Table,
	existing []models.Reservation,
) error {

	idx := slices.IndexFunc(shifts, func(s models.Shift) bool { return s.ID == r.ShiftID })
	if idx < 0 {
		return httperr.ErrBusiness("shift_not_found")
	}
	shift := shifts[idx]

	if err := availability.ValidatePartySize(rest, partySize); err != nil {
		metrics.IncAllocationFailure(string(availability.KindOf(err)))
		return err
	}

	others := slices.DeleteFunc(slices.Clone(existing), func(o models.Reservation) bool {
		return o.ID == r.ID
	})
	if err := availability.ValidateShiftCapacity(&shift, r.Date, partySize, others); err != nil {
		metrics.IncAllocationFailure(string(availability.KindOf(err)))
		return err
	}

	plan, err := availability.ValidateAndReallocateTables(availability.ReallocationInput{
		Reservation:  r,
		NewPartySize: partySize,
		Tables:       tables,
		Reservations: existing,
		Shift:        &shift,
		AllowJoining: rest.EnableTableJoining,
	})
	if err != nil {
		metrics.IncReallocation("failed")
		metrics.IncAllocationFailure(string(availability.KindOf(err)))
		return err
	}

	r.PartySize = partySize
	if plan.NeedsReallocation {
		domain.AssignTables(r, plan.TableIDs())
		metrics.IncReallocation("moved")
	} else {
		metrics.IncReallocation("kept")
	}

	uc.Logger.Debug().
		Uint("reservation_id", r.ID).
		Bool("reallocated", plan.NeedsReallocation).
		Uints("freed_tables", plan.FreedTableIDs).
		Msg(plan.Message)
	return nil
}
