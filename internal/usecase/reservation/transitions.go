package reservation

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// ChangeStatusInput localiza a reserva por Code (rotas públicas) ou por ID.
type ChangeStatusInput struct {
	RestaurantID  uint
	ReservationID uint
	Code          string
	Actor         Actor
}

// transition relê a reserva sob a trava da data, aplica apply e grava só as
// colunas de status, com uma entrada no histórico. Mesa, data e horário vêm
// sempre do banco, mesmo que uma alteração concorrente tenha movido a reserva.
func (d *Deps) transition(
	ctx context.Context,
	in ChangeStatusInput,
	action string,
	apply func(rest *models.Restaurant, r *models.Reservation, now time.Time) error,
) (*models.Reservation, error) {

	rest, err := d.restaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	found, err := loadReservation(ctx, d.Repo, rest.ID, in.ReservationID, in.Code)
	if err != nil {
		return nil, err
	}

	var (
		r    *models.Reservation
		from string
	)
	err = d.Repo.WithinBookingLock(ctx, rest.ID, found.Date, func(tx domain.Repository) error {
		current, err := loadReservation(ctx, tx, rest.ID, found.ID, "")
		if err != nil {
			return err
		}

		now := d.now(rest)
		from = current.Status

		if err := apply(rest, current, now); err != nil {
			return err
		}

		domain.LogEntry(current, fmt.Sprintf("Status alterado de %s para %s.", from, current.Status), in.Actor.String(), now)

		if err := tx.UpdateReservationStatus(ctx, current); err != nil {
			return err
		}

		r = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.invalidate(ctx, rest.ID, found.Date, r.Date)
	d.dispatch(ctx, rest.ID, in.Actor, action, r, map[string]any{
		"code": r.ReservationCode,
		"from": from,
		"to":   r.Status,
	})

	return r, nil
}

// ======================================================
// CANCEL
// ======================================================

type CancelReservation struct {
	*Deps
}

func NewCancelReservation(deps *Deps) *CancelReservation {
	return &CancelReservation{Deps: deps}
}

func (uc *CancelReservation) Execute(ctx context.Context, in ChangeStatusInput) (*models.Reservation, error) {
	return uc.transition(ctx, in, "reservation_cancelled",
		func(rest *models.Restaurant, r *models.Reservation, now time.Time) error {
			if err := domain.CanCancel(domain.Status(r.Status)); err != nil {
				return err
			}
			if in.Actor.Customer {
				if err := domain.CheckCancellationCutoff(rest, r, now); err != nil {
					return err
				}
			}
			return domain.Cancel(r, now)
		})
}

// ======================================================
// CONFIRM
// ======================================================

type ConfirmReservation struct {
	*Deps
}

func NewConfirmReservation(deps *Deps) *ConfirmReservation {
	return &ConfirmReservation{Deps: deps}
}

func (uc *ConfirmReservation) Execute(ctx context.Context, in ChangeStatusInput) (*models.Reservation, error) {
	return uc.transition(ctx, in, "reservation_confirmed",
		func(_ *models.Restaurant, r *models.Reservation, _ time.Time) error {
			return domain.Confirm(r)
		})
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteReservation struct {
	*Deps
}

func NewCompleteReservation(deps *Deps) *CompleteReservation {
	return &CompleteReservation{Deps: deps}
}

func (uc *CompleteReservation) Execute(ctx context.Context, in ChangeStatusInput) (*models.Reservation, error) {
	return uc.transition(ctx, in, "reservation_completed",
		func(_ *models.Restaurant, r *models.Reservation, now time.Time) error {
			return domain.Complete(r, now)
		})
}

// ======================================================
// NO-SHOW
// ======================================================

type MarkNoShow struct {
	*Deps
}

func NewMarkNoShow(deps *Deps) *MarkNoShow {
	return &MarkNoShow{Deps: deps}
}

func (uc *MarkNoShow) Execute(ctx context.Context, in ChangeStatusInput) (*models.Reservation, error) {
	return uc.transition(ctx, in, "reservation_no_show",
		func(_ *models.Restaurant, r *models.Reservation, _ time.Time) error {
			return domain.MarkNoShow(r)
		})
}
