package reservation

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/metrics"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
	"github.com/BruksfildServices01/mesa-scheduler/internal/validators"
)

const maxCodeAttempts = 5

// ======================================================
// INPUT
// ======================================================

type CreateReservationInput struct {
	RestaurantID uint
	Actor        Actor

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Date      string
	ShiftID   uint
	SlotTime  string
	PartySize int
	Source    string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReservation struct {
	*Deps
	generateCode func() (string, error)
}

func NewCreateReservation(deps *Deps) *CreateReservation {
	return &CreateReservation{
		Deps:         deps,
		generateCode: domain.GenerateCode,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateReservation) Execute(
	ctx context.Context,
	in CreateReservationInput,
) (*models.Reservation, error) {

	// --------------------------------------------------
	// 1️⃣ Restaurante e origem
	// --------------------------------------------------
	rest, err := uc.restaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	source := strings.ToUpper(strings.TrimSpace(in.Source))
	switch source {
	case "":
		source = models.SourcePhone
	case models.SourcePhone, models.SourceOnline:
	default:
		return nil, httperr.ErrBusiness("invalid_source")
	}

	if strings.TrimSpace(in.CustomerName) == "" || strings.TrimSpace(in.CustomerPhone) == "" {
		return nil, httperr.ErrBusiness("customer_required")
	}
	if in.CustomerEmail != "" && !validators.IsEmail(in.CustomerEmail) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	now := uc.now(rest)

	// --------------------------------------------------
	// 2️⃣ Validação + gravação sob a trava da data
	// --------------------------------------------------
	var created *models.Reservation

	err = uc.Repo.WithinBookingLock(ctx, rest.ID, in.Date, func(tx domain.Repository) error {
		shifts, err := tx.ListShifts(ctx, rest.ID)
		if err != nil {
			return err
		}
		tables, err := tx.ListTables(ctx, rest.ID)
		if err != nil {
			return err
		}
		existing, err := tx.ListReservationsForDate(ctx, rest.ID, in.Date)
		if err != nil {
			return err
		}

		alloc, err := availability.ValidateReservation(availability.BookingRequest{
			Restaurant:   rest,
			Date:         in.Date,
			ShiftID:      in.ShiftID,
			SlotTime:     in.SlotTime,
			PartySize:    in.PartySize,
			Source:       source,
			Shifts:       shifts,
			Tables:       tables,
			Reservations: existing,
			Now:          now,
		})
		if err != nil {
			metrics.IncAllocationFailure(string(availability.KindOf(err)))
			return err
		}

		customer, err := tx.GetOrCreateCustomer(
			ctx,
			rest.ID,
			strings.TrimSpace(in.CustomerName),
			strings.TrimSpace(in.CustomerPhone),
			strings.TrimSpace(in.CustomerEmail),
		)
		if err != nil {
			return err
		}

		code, err := uc.uniqueCode(ctx, tx)
		if err != nil {
			return err
		}

		r := &models.Reservation{
			RestaurantID:    rest.ID,
			CustomerID:      customer.ID,
			ShiftID:         alloc.Shift.ID,
			Date:            in.Date,
			SlotTime:        in.SlotTime,
			PartySize:       in.PartySize,
			Status:          string(domain.InitialStatus(source)),
			Source:          source,
			ReservationCode: code,
			Notes:           strings.TrimSpace(in.Notes),
		}
		domain.AssignTables(r, alloc.TableIDs())

		if err := tx.CreateReservation(ctx, r); err != nil {
			return err
		}

		r.Customer = *customer
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Efeitos pós-commit
	// --------------------------------------------------
	uc.invalidate(ctx, rest.ID, created.Date)
	metrics.IncReservationCreated(source)

	uc.dispatch(ctx, rest.ID, in.Actor, "reservation_created", created, map[string]any{
		"code":       created.ReservationCode,
		"date":       created.Date,
		"slot_time":  created.SlotTime,
		"party_size": created.PartySize,
		"tables":     created.EffectiveTables(),
		"source":     source,
	})

	return created, nil
}

// uniqueCode tenta alguns códigos aleatórios até achar um livre.
func (uc *CreateReservation) uniqueCode(ctx context.Context, tx domain.Repository) (string, error) {
	for range maxCodeAttempts {
		code, err := uc.generateCode()
		if err != nil {
			return "", err
		}

		exists, err := tx.ReservationCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", httperr.ErrBusiness("code_generation_failed")
}
