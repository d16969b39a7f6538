package availability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

func TestValidateOpeningHours(t *testing.T) {
	inactive := dinnerShift()
	inactive.Active = false

	t.Run("returns shifts running on the weekday", func(t *testing.T) {
		open, err := availability.ValidateOpeningHours(tuesday, []models.Shift{lunchShift(), dinnerShift()})
		require.NoError(t, err)
		require.Len(t, open, 2)
		assert.Equal(t, "Almoço", open[0].Name)
		assert.Equal(t, "Jantar", open[1].Name)
	})

	t.Run("monday only has lunch", func(t *testing.T) {
		open, err := availability.ValidateOpeningHours("2026-10-19", []models.Shift{lunchShift(), dinnerShift()})
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, uint(1), open[0].ID)
	})

	t.Run("inactive shifts are ignored", func(t *testing.T) {
		open, err := availability.ValidateOpeningHours(tuesday, []models.Shift{inactive})
		assert.Nil(t, open)
		assert.Equal(t, availability.KindClosedOnThisDay, availability.KindOf(err))
	})

	t.Run("closed on sunday names the weekday", func(t *testing.T) {
		_, err := availability.ValidateOpeningHours("2026-10-18", []models.Shift{lunchShift()})
		require.Error(t, err)
		assert.Equal(t, availability.KindClosedOnThisDay, availability.KindOf(err))
		assert.Contains(t, availability.MessageOf(err), "domingo")
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := availability.ValidateOpeningHours("x", []models.Shift{lunchShift()})
		assert.Equal(t, availability.KindInvalidDateFormat, availability.KindOf(err))
	})
}

func TestValidateShiftAvailability(t *testing.T) {
	shift := dinnerShift() // termina às 22:00

	tests := []struct {
		name    string
		now     string
		date    string
		wantErr bool
	}{
		{name: "before cutoff", now: "19:59:59", date: tuesday},
		{name: "exactly at cutoff", now: "20:00:00", date: tuesday},
		{name: "after cutoff", now: "20:00:01", date: tuesday, wantErr: true},
		{name: "late night same day", now: "23:30:00", date: tuesday, wantErr: true},
		{name: "future date always passes", now: "21:59:00", date: "2026-10-21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := availability.ValidateShiftAvailability(&shift, tt.date, 2, at(tuesday, tt.now))
			if tt.wantErr {
				assert.Equal(t, availability.KindPastBookingCutoff, availability.KindOf(err))
				assert.Contains(t, availability.MessageOf(err), "Jantar")
				assert.Contains(t, availability.MessageOf(err), "2 horas")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFormatLeadTime(t *testing.T) {
	assert.Equal(t, "30 minutos", availability.FormatLeadTime(0.5))
	assert.Equal(t, "0 minutos", availability.FormatLeadTime(0))
	assert.Equal(t, "1 hora", availability.FormatLeadTime(1))
	assert.Equal(t, "2 horas", availability.FormatLeadTime(2))
	assert.Equal(t, "1.5 horas", availability.FormatLeadTime(1.5))
}

func TestValidateShiftCapacity(t *testing.T) {
	shift := lunchShift()
	shift.MaxCapacity = intPtr(10)

	existing := []models.Reservation{
		reservation(1, 1, "12:00", 5),
		reservation(2, 2, "12:30", 3),
	}
	existing[0].Status = models.ReservationPending
	existing[1].Status = models.ReservationPending

	cancelled := reservation(3, 3, "13:00", 6)
	cancelled.Status = models.ReservationCancelled
	otherShift := reservation(4, 4, "19:00", 6)
	otherShift.ShiftID = 2
	otherDay := reservation(5, 5, "12:00", 6)
	otherDay.Date = "2026-10-21"
	existing = append(existing, cancelled, otherShift, otherDay)

	t.Run("over the cap", func(t *testing.T) {
		err := availability.ValidateShiftCapacity(&shift, tuesday, 3, existing)
		assert.Equal(t, availability.KindShiftCapacityExceeded, availability.KindOf(err))
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		assert.NoError(t, availability.ValidateShiftCapacity(&shift, tuesday, 2, existing))
	})

	t.Run("no cap configured", func(t *testing.T) {
		uncapped := lunchShift()
		assert.NoError(t, availability.ValidateShiftCapacity(&uncapped, tuesday, 500, existing))
	})
}

func bookingRequest() availability.BookingRequest {
	return availability.BookingRequest{
		Restaurant: restaurant(),
		Date:       tuesday,
		ShiftID:    1,
		SlotTime:   "12:30",
		PartySize:  4,
		Source:     models.SourceOnline,
		Shifts:     []models.Shift{lunchShift()},
		Tables:     []models.Table{table(1, 4)},
		Now:        at("2026-10-15", "10:00:00"),
	}
}

func TestValidateReservation(t *testing.T) {
	t.Run("past date is refused", func(t *testing.T) {
		req := bookingRequest()
		req.Now = at("2026-10-21", "09:00:00")

		_, err := availability.ValidateReservation(req)
		assert.Equal(t, availability.KindPastBookingCutoff, availability.KindOf(err))
		assert.Contains(t, availability.MessageOf(err), tuesday)
	})

	t.Run("single table for a free slot", func(t *testing.T) {
		alloc, err := availability.ValidateReservation(bookingRequest())
		require.NoError(t, err)

		assert.Equal(t, uint(1), alloc.Shift.ID)
		assert.Equal(t, []uint{1}, alloc.TableIDs())
		assert.Equal(t, 4, alloc.TotalSeats)
		assert.Equal(t, availability.Period{Start: 740, End: 850}, alloc.Period)
	})

	t.Run("second booking sees the first one", func(t *testing.T) {
		req := bookingRequest()
		req.PartySize = 2
		req.Reservations = []models.Reservation{reservation(1, 1, "12:30", 4)}

		_, err := availability.ValidateReservation(req)
		assert.Equal(t, availability.KindNoTablesAvailable, availability.KindOf(err))
	})

	t.Run("editing excludes the reservation itself", func(t *testing.T) {
		req := bookingRequest()
		req.Reservations = []models.Reservation{reservation(7, 1, "12:30", 4)}
		req.SlotTime = "12:45"
		req.ExcludeReservationID = 7

		alloc, err := availability.ValidateReservation(req)
		require.NoError(t, err)
		assert.Equal(t, []uint{1}, alloc.TableIDs())
	})

	t.Run("shift capacity", func(t *testing.T) {
		shift := lunchShift()
		shift.MaxCapacity = intPtr(10)

		base := bookingRequest()
		base.Shifts = []models.Shift{shift}
		base.Tables = []models.Table{table(1, 4), table(2, 4), table(3, 4)}
		r1 := reservation(1, 1, "12:00", 4)
		r1.Status = models.ReservationPending
		r2 := reservation(2, 2, "13:00", 4)
		r2.Status = models.ReservationPending
		base.Reservations = []models.Reservation{r1, r2}

		over := base
		over.PartySize = 3
		_, err := availability.ValidateReservation(over)
		assert.Equal(t, availability.KindShiftCapacityExceeded, availability.KindOf(err))

		fits := base
		fits.PartySize = 2
		_, err = availability.ValidateReservation(fits)
		assert.NoError(t, err)
	})

	t.Run("first failing check wins", func(t *testing.T) {
		req := bookingRequest()
		req.Date = "2026-10-18" // domingo
		req.PartySize = 99
		_, err := availability.ValidateReservation(req)
		assert.Equal(t, availability.KindClosedOnThisDay, availability.KindOf(err))
	})

	cases := []struct {
		name   string
		mutate func(r *availability.BookingRequest)
		kind   availability.Kind
	}{
		{"zero party", func(r *availability.BookingRequest) { r.PartySize = 0 }, availability.KindInvalidPartySize},
		{"bad date", func(r *availability.BookingRequest) { r.Date = "20-10-2026" }, availability.KindInvalidDateFormat},
		{"unknown shift", func(r *availability.BookingRequest) { r.ShiftID = 42 }, availability.KindShiftInactiveOrUnknown},
		{"shift not on weekday", func(r *availability.BookingRequest) {
			r.Shifts = append(r.Shifts, dinnerShift())
			r.Date = "2026-10-19"
			r.ShiftID = 2
		}, availability.KindShiftInactiveOrUnknown},
		{"bad slot", func(r *availability.BookingRequest) { r.SlotTime = "meio-dia" }, availability.KindInvalidTimeFormat},
		{"slot before shift", func(r *availability.BookingRequest) { r.SlotTime = "11:45" }, availability.KindOutsideShiftHours},
		{"slot at shift end", func(r *availability.BookingRequest) { r.SlotTime = "15:00" }, availability.KindOutsideShiftHours},
		{"same day past cutoff", func(r *availability.BookingRequest) { r.Now = at(tuesday, "13:30:00") }, availability.KindPastBookingCutoff},
		{"party above restaurant limit", func(r *availability.BookingRequest) { r.PartySize = 13 }, availability.KindPartySizeExceedsLimit},
		{"party too big for tables", func(r *availability.BookingRequest) { r.PartySize = 6 }, availability.KindInsufficientCapacity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := bookingRequest()
			tc.mutate(&req)
			alloc, err := availability.ValidateReservation(req)
			assert.Nil(t, alloc)
			assert.Equal(t, tc.kind, availability.KindOf(err))
			assert.NotEmpty(t, availability.MessageOf(err))
		})
	}

	t.Run("online cap is not applied", func(t *testing.T) {
		req := bookingRequest()
		req.Tables = []models.Table{table(1, 10)}
		req.PartySize = 8 // acima de MaxOnlinePartySize, abaixo de MaxPartySize
		_, err := availability.ValidateReservation(req)
		assert.NoError(t, err)
	})
}
