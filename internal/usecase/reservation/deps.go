package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/mesa-scheduler/internal/audit"
	"github.com/BruksfildServices01/mesa-scheduler/internal/clock"
	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/logging"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
	"github.com/BruksfildServices01/mesa-scheduler/internal/timezone"
)

// ======================================================
// COLLABORATORS
// ======================================================

type Auditor interface {
	Dispatch(ev audit.Event)
}

type SlotCache interface {
	Get(ctx context.Context, restaurantID uint, date string, partySize int) ([]availability.ShiftSlots, bool, error)
	Set(ctx context.Context, restaurantID uint, date string, partySize int, value []availability.ShiftSlots) error
	Invalidate(ctx context.Context, restaurantID uint, date string) error
}

type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// Deps reúne o que todos os casos de uso compartilham.
type Deps struct {
	Repo   domain.Repository
	Audit  Auditor
	Cache  SlotCache // opcional
	Clock  clock.Clock
	Logger zerolog.Logger
}

// ======================================================
// ACTOR
// ======================================================

// Actor identifica quem pediu a operação. Clientes (rotas públicas) ficam
// sujeitos às antecedências de cancelamento e alteração.
type Actor struct {
	UserID   uint
	Customer bool
}

func StaffActor(userID uint) Actor {
	return Actor{UserID: userID}
}

func CustomerActor() Actor {
	return Actor{Customer: true}
}

func (a Actor) String() string {
	if a.Customer {
		return "cliente"
	}
	return fmt.Sprintf("user:%d", a.UserID)
}

// ======================================================
// HELPERS
// ======================================================

func (d *Deps) restaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	rest, err := d.Repo.GetRestaurantByID(ctx, id)
	if err != nil {
		if errs.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("restaurant_not_found")
		}
		return nil, err
	}
	return rest, nil
}

// now devolve o instante atual no fuso do restaurante.
func (d *Deps) now(rest *models.Restaurant) time.Time {
	return timezone.In(d.Clock.Now(), rest.Timezone)
}

// loadReservation busca pelo código quando informado, senão pelo id.
func loadReservation(
	ctx context.Context,
	repo domain.Repository,
	restaurantID uint,
	id uint,
	code string,
) (*models.Reservation, error) {

	var (
		r   *models.Reservation
		err error
	)
	if code != "" {
		r, err = repo.GetReservationByCode(ctx, restaurantID, code)
	} else {
		r, err = repo.GetReservation(ctx, restaurantID, id)
	}

	if err != nil {
		if errs.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("reservation_not_found")
		}
		return nil, err
	}
	return r, nil
}

func (d *Deps) invalidate(ctx context.Context, restaurantID uint, dates ...string) {
	if d.Cache == nil {
		return
	}

	seen := make(map[string]bool, len(dates))
	for _, date := range dates {
		if seen[date] {
			continue
		}
		seen[date] = true

		if err := d.Cache.Invalidate(ctx, restaurantID, date); err != nil {
			d.Logger.Warn().
				Err(err).
				Uint("restaurant_id", restaurantID).
				Str("date", date).
				Msg("slot cache invalidation failed")
		}
	}
}

func (d *Deps) dispatch(
	ctx context.Context,
	restaurantID uint,
	actor Actor,
	action string,
	r *models.Reservation,
	meta map[string]any,
) {
	if d.Audit == nil {
		return
	}

	id := r.ID
	d.Audit.Dispatch(audit.Event{
		RestaurantID:  restaurantID,
		Actor:         actor.String(),
		Action:        action,
		Entity:        "reservation",
		EntityID:      &id,
		CorrelationID: logging.RequestID(ctx),
		Metadata:      meta,
		OccurredAt:    d.Clock.Now(),
	})
}
