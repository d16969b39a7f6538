package availability

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// BookingRequest reúne o retrato do restaurante que o chamador já carregou.
// O motor nunca relê estado durante a validação.
type BookingRequest struct {
	Restaurant *models.Restaurant

	Date      string // YYYY-MM-DD, horário local do restaurante
	ShiftID   uint
	SlotTime  string // HH:MM
	PartySize int
	Source    string

	Shifts       []models.Shift
	Tables       []models.Table
	Reservations []models.Reservation

	// Reserva ignorada na checagem (edição de data/horário de uma reserva existente).
	ExcludeReservationID uint

	// Instante atual no fuso do restaurante.
	Now time.Time
}

type Allocation struct {
	Shift      models.Shift   `json:"shift"`
	Tables     []models.Table `json:"tables"`
	TotalSeats int            `json:"total_seats"`
	Period     Period         `json:"period"`
}

// TableIDs devolve os ids na ordem em que foram alocados.
func (a *Allocation) TableIDs() []uint {
	ids := make([]uint, len(a.Tables))
	for i, t := range a.Tables {
		ids[i] = t.ID
	}
	return ids
}

// ======================================================
// VALIDATIONS
// ======================================================

// ValidateOpeningHours devolve os turnos ativos que funcionam no dia da semana de date.
func ValidateOpeningHours(date string, shifts []models.Shift) ([]models.Shift, error) {
	weekday, err := DayOfWeek(date)
	if err != nil {
		return nil, err
	}

	var open []models.Shift
	for _, s := range shifts {
		if s.Active && s.RunsOn(weekday) {
			open = append(open, s)
		}
	}

	if len(open) == 0 {
		return nil, fail(KindClosedOnThisDay, "O restaurante está fechado neste dia da semana (%s).", WeekdayName(weekday))
	}
	return open, nil
}

// ValidateShiftAvailability só restringe reservas para o próprio dia: depois de
// (fim do turno - antecedência) o turno não aceita novas reservas.
func ValidateShiftAvailability(shift *models.Shift, date string, bookingCutoffHours float64, now time.Time) error {
	if !sameDay(now, date) {
		return nil
	}

	end, err := ParseSlotTime(shift.EndTime)
	if err != nil {
		return err
	}

	shiftEnd := time.Date(now.Year(), now.Month(), now.Day(), end/60, end%60, 0, 0, now.Location())
	cutoff := shiftEnd.Add(-time.Duration(bookingCutoffHours * float64(time.Hour)))

	if now.After(cutoff) {
		return fail(KindPastBookingCutoff,
			"O turno %s não aceita mais reservas para hoje. Reservas devem ser feitas com pelo menos %s de antecedência do encerramento do turno.",
			shift.Name, FormatLeadTime(bookingCutoffHours))
	}
	return nil
}

// ValidateShiftCapacity soma as pessoas das reservas pendentes e confirmadas do turno no dia.
func ValidateShiftCapacity(shift *models.Shift, date string, partySize int, existing []models.Reservation) error {
	if shift.MaxCapacity == nil {
		return nil
	}

	booked := 0
	for i := range existing {
		r := &existing[i]
		if r.Date == date && r.ShiftID == shift.ID && r.Counts() {
			booked += r.PartySize
		}
	}

	if booked+partySize > *shift.MaxCapacity {
		return fail(KindShiftCapacityExceeded,
			"O turno %s atingiu a capacidade máxima: %d de %d lugares já reservados, não há espaço para %d pessoas.",
			shift.Name, booked, *shift.MaxCapacity, partySize)
	}
	return nil
}

// ValidatePartySize aplica max_party_size; zero desliga o limite.
// O limite de reservas online não é aplicado.
func ValidatePartySize(rest *models.Restaurant, partySize int) error {
	if limit := rest.MaxPartySize; limit > 0 && partySize > limit {
		return fail(KindPartySizeExceedsLimit,
			"O número máximo de pessoas por reserva é %d.", limit)
	}
	return nil
}

// ValidateReservation encadeia as validações; a primeira falha interrompe a cadeia.
func ValidateReservation(req BookingRequest) (*Allocation, error) {
	if req.PartySize <= 0 {
		return nil, fail(KindInvalidPartySize, "Informe o número de pessoas da reserva.")
	}

	loc := req.Now.Location()
	if _, err := ParseLocalDate(req.Date, loc); err != nil {
		return nil, err
	}
	if req.Date < req.Now.Format(dateLayout) {
		return nil, fail(KindPastBookingCutoff, "Não é possível reservar para uma data que já passou (%s).", req.Date)
	}

	open, err := ValidateOpeningHours(req.Date, req.Shifts)
	if err != nil {
		return nil, err
	}

	shift := findShift(open, req.ShiftID)
	if shift == nil {
		return nil, fail(KindShiftInactiveOrUnknown, "Turno não encontrado ou inativo para esta data.")
	}

	slot, err := ParseSlotTime(req.SlotTime)
	if err != nil {
		return nil, err
	}
	if err := withinShift(shift, slot); err != nil {
		return nil, err
	}

	if err := ValidateShiftAvailability(shift, req.Date, req.Restaurant.BookingCutoffHours, req.Now); err != nil {
		return nil, err
	}

	reservations := excludeReservation(req.Reservations, req.ExcludeReservationID)

	if err := ValidateShiftCapacity(shift, req.Date, req.PartySize, reservations); err != nil {
		return nil, err
	}

	if err := ValidatePartySize(req.Restaurant, req.PartySize); err != nil {
		return nil, err
	}

	period, err := OccupationPeriod(req.SlotTime, shift.DefaultDwellMinutes, shift.DefaultBufferMinutes)
	if err != nil {
		return nil, err
	}

	sel, err := FindAvailableTables(TableSearch{
		PartySize:     req.PartySize,
		Tables:        req.Tables,
		Date:          req.Date,
		Period:        period,
		Reservations:  reservations,
		DwellMinutes:  shift.DefaultDwellMinutes,
		BufferMinutes: shift.DefaultBufferMinutes,
		AllowJoining:  req.Restaurant.EnableTableJoining,
	})
	if err != nil {
		return nil, err
	}

	return &Allocation{
		Shift:      *shift,
		Tables:     sel.Tables,
		TotalSeats: sel.TotalSeats,
		Period:     period,
	}, nil
}

// FormatLeadTime escreve a antecedência exigida: minutos abaixo de uma hora,
// "1 hora" ou "N horas".
func FormatLeadTime(hours float64) string {
	switch {
	case hours < 1:
		return fmt.Sprintf("%d minutos", int(math.Round(hours*60)))
	case hours == 1:
		return "1 hora"
	default:
		return strconv.FormatFloat(hours, 'f', -1, 64) + " horas"
	}
}

// ======================================================
// HELPERS
// ======================================================

func findShift(shifts []models.Shift, id uint) *models.Shift {
	for i := range shifts {
		if shifts[i].ID == id {
			return &shifts[i]
		}
	}
	return nil
}

func withinShift(shift *models.Shift, slot int) error {
	start, err := ParseSlotTime(shift.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseSlotTime(shift.EndTime)
	if err != nil {
		return err
	}
	if slot < start || slot >= end {
		return fail(KindOutsideShiftHours,
			"O horário %s está fora do turno %s (%s às %s).",
			FormatSlotTime(slot), shift.Name, shift.StartTime, shift.EndTime)
	}
	return nil
}

func excludeReservation(all []models.Reservation, id uint) []models.Reservation {
	if id == 0 {
		return all
	}
	out := make([]models.Reservation, 0, len(all))
	for _, r := range all {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
