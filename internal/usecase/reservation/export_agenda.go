package reservation

import (
	"context"

	"github.com/BruksfildServices01/mesa-scheduler/internal/audit"
	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
	"github.com/BruksfildServices01/mesa-scheduler/internal/export"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/logging"
)

type ExportAgendaInput struct {
	RestaurantID uint
	Date         string
	Actor        Actor
}

type ExportAgendaOutput struct {
	Key  string `json:"key"`
	Rows int    `json:"rows"`
}

// ExportAgenda gera a planilha do dia e envia para o bucket.
type ExportAgenda struct {
	*Deps
	storage ObjectStorage
}

func NewExportAgenda(deps *Deps, storage ObjectStorage) *ExportAgenda {
	return &ExportAgenda{Deps: deps, storage: storage}
}

func (uc *ExportAgenda) Execute(ctx context.Context, in ExportAgendaInput) (*ExportAgendaOutput, error) {
	if uc.storage == nil {
		return nil, httperr.ErrBusiness("export_disabled")
	}

	if _, err := availability.DayOfWeek(in.Date); err != nil {
		return nil, err
	}

	rest, err := uc.restaurant(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}

	shifts, err := uc.Repo.ListShifts(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	tables, err := uc.Repo.ListTables(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	reservations, err := uc.Repo.ListReservationsForDate(ctx, rest.ID, in.Date)
	if err != nil {
		return nil, err
	}

	body, err := export.AgendaWorkbook(export.Agenda{
		Restaurant:   rest,
		Date:         in.Date,
		Shifts:       shifts,
		Tables:       tables,
		Reservations: reservations,
	})
	if err != nil {
		return nil, errs.Wrap(err, "build agenda workbook")
	}

	key := export.AgendaKey(rest.Slug, in.Date)
	if err := uc.storage.Put(ctx, key, body, export.ContentTypeXLSX); err != nil {
		return nil, errs.Wrapf(err, "upload agenda %s", key)
	}

	if uc.Audit != nil {
		uc.Audit.Dispatch(audit.Event{
			RestaurantID:  rest.ID,
			Actor:         in.Actor.String(),
			Action:        "agenda_exported",
			Entity:        "agenda",
			CorrelationID: logging.RequestID(ctx),
			Metadata: map[string]any{
				"date": in.Date,
				"key":  key,
			},
			OccurredAt: uc.Clock.Now(),
		})
	}

	return &ExportAgendaOutput{Key: key, Rows: len(reservations)}, nil
}
