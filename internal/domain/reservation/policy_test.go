package reservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

func TestCutoffs(t *testing.T) {
	rest := &models.Restaurant{CancellationCutoffHours: 2, ModificationCutoffHours: 0.5}
	r := newReservation(models.ReservationConfirmed) // 2026-10-20 20:00

	at := func(hm string) time.Time {
		ts, _ := time.ParseInLocation("2006-01-02 15:04", "2026-10-20 "+hm, brt)
		return ts
	}

	assert.NoError(t, reservation.CheckCancellationCutoff(rest, r, at("18:00")))
	assert.True(t, httperr.IsBusiness(
		reservation.CheckCancellationCutoff(rest, r, at("18:01")), "cancellation_cutoff"))

	assert.NoError(t, reservation.CheckModificationCutoff(rest, r, at("19:30")))
	assert.True(t, httperr.IsBusiness(
		reservation.CheckModificationCutoff(rest, r, at("19:31")), "modification_cutoff"))

	// véspera
	assert.NoError(t, reservation.CheckCancellationCutoff(rest, r, at("18:30").AddDate(0, 0, -1)))
}

func TestCutoffRejectsUnreadableSlot(t *testing.T) {
	r := newReservation(models.ReservationConfirmed)
	r.SlotTime = "8h"
	err := reservation.CheckCancellationCutoff(&models.Restaurant{}, r, time.Now())
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}
