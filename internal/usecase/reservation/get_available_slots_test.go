package reservation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

func TestGetAvailableSlots(t *testing.T) {
	ctx := t.Context()

	setup := func() (*fixture, *GetAvailableSlots) {
		f := newFixture()
		f.repo.On("GetRestaurantByID", mock.Anything, uint(1)).Return(testRestaurant(), nil)
		return f, NewGetAvailableSlots(f.deps)
	}
	in := GetAvailableSlotsInput{RestaurantID: 1, Date: tuesday, PartySize: 2}

	t.Run("lists slots per open shift", func(t *testing.T) {
		f, uc := setup()
		f.snapshot()

		got, err := uc.Execute(ctx, in)
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.Equal(t, uint(2), got[0].ShiftID)
		assert.Equal(t, "Jantar", got[0].ShiftName)
		require.Len(t, got[0].Slots, 6)
		assert.Equal(t, "19:00", got[0].Slots[0].Time)
		assert.Equal(t, "21:30", got[0].Slots[5].Time)
	})

	t.Run("booked tables block overlapping slots", func(t *testing.T) {
		f, uc := setup()
		var existing []models.Reservation
		for i, id := range []uint{1, 2, 3} {
			r := testReservation(uint(20+i), id, models.ReservationConfirmed)
			r.SlotTime = "19:00"
			existing = append(existing, *r)
		}
		f.snapshot(existing...)

		got, err := uc.Execute(ctx, GetAvailableSlotsInput{RestaurantID: 1, Date: tuesday, PartySize: 2})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Len(t, got[0].Slots, 1)
		assert.Equal(t, "21:30", got[0].Slots[0].Time)
	})

	t.Run("closed day", func(t *testing.T) {
		f, uc := setup()
		f.repo.On("ListShifts", mock.Anything, uint(1)).Return([]models.Shift{testDinner()}, nil)

		// 2026-10-19 é segunda; o jantar não abre.
		_, err := uc.Execute(ctx, GetAvailableSlotsInput{RestaurantID: 1, Date: "2026-10-19", PartySize: 2})
		assert.True(t, availability.Is(err, availability.KindClosedOnThisDay))
	})

	t.Run("party above the restaurant limit", func(t *testing.T) {
		_, uc := setup()

		_, err := uc.Execute(ctx, GetAvailableSlotsInput{RestaurantID: 1, Date: tuesday, PartySize: 30})
		assert.True(t, availability.Is(err, availability.KindPartySizeExceedsLimit))
	})

	t.Run("invalid input", func(t *testing.T) {
		_, uc := setup()

		_, err := uc.Execute(ctx, GetAvailableSlotsInput{RestaurantID: 1, Date: tuesday, PartySize: 0})
		assert.True(t, availability.Is(err, availability.KindInvalidPartySize))

		_, err = uc.Execute(ctx, GetAvailableSlotsInput{RestaurantID: 1, Date: "20/10/2026", PartySize: 2})
		assert.True(t, availability.Is(err, availability.KindInvalidDateFormat))
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f, uc := setup()
		cached := []availability.ShiftSlots{{ShiftID: 2, ShiftName: "Jantar", Slots: []availability.Slot{{Time: "19:00", Available: true, TablesCount: 1}}}}
		cache := new(mockCache)
		cache.On("Get", mock.Anything, uint(1), tuesday, 2).Return(cached, true, nil)
		f.deps.Cache = cache

		got, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, cached, got)
		f.repo.AssertNotCalled(t, "ListShifts", mock.Anything, mock.Anything)
	})

	t.Run("cache miss stores the result", func(t *testing.T) {
		f, uc := setup()
		f.snapshot()
		cache := new(mockCache)
		cache.On("Get", mock.Anything, uint(1), tuesday, 2).Return(nil, false, nil)
		cache.On("Set", mock.Anything, uint(1), tuesday, 2, mock.AnythingOfType("[]availability.ShiftSlots")).Return(nil)
		f.deps.Cache = cache

		_, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("cache failure falls back to the engine", func(t *testing.T) {
		f, uc := setup()
		f.snapshot()
		cache := new(mockCache)
		cache.On("Get", mock.Anything, uint(1), tuesday, 2).Return(nil, false, errors.New("redis down"))
		cache.On("Set", mock.Anything, uint(1), tuesday, 2, mock.Anything).Return(errors.New("redis down"))
		f.deps.Cache = cache

		got, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("today is never served from the cache", func(t *testing.T) {
		f, uc := setup()
		cache := new(mockCache)
		f.deps.Cache = cache

		f.clock.Set(mondayNoon.AddDate(0, 0, 1).Add(6 * time.Hour))
		f.snapshot()

		got, err := uc.Execute(ctx, in)
		require.NoError(t, err)

		// 18:00 + 2h de antecedência: só sobram 20:00 em diante.
		require.Len(t, got, 1)
		require.NotEmpty(t, got[0].Slots)
		assert.Equal(t, "20:00", got[0].Slots[0].Time)
		cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
