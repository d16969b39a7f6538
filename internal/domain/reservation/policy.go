package reservation

import (
	"time"

	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// StartsAt devolve o início da reserva no fuso de loc.
func StartsAt(r *models.Reservation, loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", r.Date+" "+r.SlotTime, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return start, nil
}

// CheckCancellationCutoff recusa cancelamentos feitos com menos de
// CancellationCutoffHours de antecedência. now deve estar no fuso do restaurante.
func CheckCancellationCutoff(rest *models.Restaurant, r *models.Reservation, now time.Time) error {
	return checkCutoff(r, rest.CancellationCutoffHours, now, "cancellation_cutoff")
}

func CheckModificationCutoff(rest *models.Restaurant, r *models.Reservation, now time.Time) error {
	return checkCutoff(r, rest.ModificationCutoffHours, now, "modification_cutoff")
}

func checkCutoff(r *models.Reservation, hours float64, now time.Time, code string) error {
	start, err := StartsAt(r, now.Location())
	if err != nil {
		return err
	}

	limit := start.Add(-time.Duration(hours * float64(time.Hour)))
	if now.After(limit) {
		return httperr.ErrBusiness(code)
	}
	return nil
}
