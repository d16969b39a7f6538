package availability_test

import (
	"time"

	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// 2026-10-20 é uma terça-feira.
const tuesday = "2026-10-20"

var brt = time.FixedZone("BRT", -3*60*60)

func at(date, hm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+hm, brt)
	if err != nil {
		panic(err)
	}
	return t
}

func intPtr(v int) *int { return &v }

func lunchShift() models.Shift {
	return models.Shift{
		ID:                   1,
		RestaurantID:         1,
		Name:                 "Almoço",
		StartTime:            "12:00",
		EndTime:              "15:00",
		SlotIntervalMinutes:  15,
		DefaultDwellMinutes:  90,
		DefaultBufferMinutes: 10,
		DaysOfWeek:           []int{1, 2, 3, 4, 5, 6},
		Active:               true,
	}
}

func dinnerShift() models.Shift {
	return models.Shift{
		ID:                   2,
		RestaurantID:         1,
		Name:                 "Jantar",
		StartTime:            "19:00",
		EndTime:              "22:00",
		SlotIntervalMinutes:  30,
		DefaultDwellMinutes:  120,
		DefaultBufferMinutes: 15,
		DaysOfWeek:           []int{2, 3, 4, 5, 6},
		Active:               true,
	}
}

func restaurant() *models.Restaurant {
	return &models.Restaurant{
		ID:                 1,
		Name:               "Cantina",
		Slug:               "cantina",
		MaxPartySize:       12,
		MaxOnlinePartySize: 6,
		BookingCutoffHours: 2,
		EnableTableJoining: true,
	}
}

func table(id uint, seats int) models.Table {
	return models.Table{
		ID:           id,
		RestaurantID: 1,
		Name:         "Mesa",
		Seats:        seats,
		IsActive:     true,
		Status:       models.TableStatusAvailable,
	}
}

func reservation(id uint, tableID uint, slot string, party int) models.Reservation {
	return models.Reservation{
		ID:           id,
		RestaurantID: 1,
		ShiftID:      1,
		TableID:      tableID,
		Date:         tuesday,
		SlotTime:     slot,
		PartySize:    party,
		Status:       models.ReservationConfirmed,
	}
}
