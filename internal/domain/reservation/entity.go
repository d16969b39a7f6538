package reservation

import (
	"slices"
	"time"

	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

const (
	TagModified  = "alterada"
	TagCancelled = "cancelada"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(r *models.Reservation) error {
	if err := CanConfirm(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusConfirmed)
	return nil
}

func Cancel(r *models.Reservation, now time.Time) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCancelled)
	r.CancelledAt = &now
	AddTag(r, TagCancelled)
	return nil
}

func Complete(r *models.Reservation, now time.Time) error {
	if err := CanComplete(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCompleted)
	r.CompletedAt = &now
	return nil
}

func MarkNoShow(r *models.Reservation) error {
	if err := CanMarkNoShow(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusNoShow)
	return nil
}

func AddTag(r *models.Reservation, tag string) {
	if !slices.Contains(r.Tags, tag) {
		r.Tags = append(r.Tags, tag)
	}
}

// AssignTables grava as mesas na forma persistida: uma mesa vai só em
// TableID, várias vão em LinkedTables com a primeira repetida em TableID.
func AssignTables(r *models.Reservation, tableIDs []uint) {
	if len(tableIDs) == 0 {
		return
	}
	r.TableID = tableIDs[0]
	if len(tableIDs) == 1 {
		r.LinkedTables = nil
		return
	}
	r.LinkedTables = slices.Clone(tableIDs)
}
