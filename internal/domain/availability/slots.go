package availability

import (
	"iter"
	"slices"
	"time"

	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

const defaultSlotInterval = 15

type SlotQuery struct {
	Shift        *models.Shift
	Date         string
	PartySize    int
	Tables       []models.Table
	Reservations []models.Reservation

	BookingCutoffHours float64
	AllowJoining       bool

	Now time.Time
}

type Slot struct {
	Time        string `json:"time"`
	Available   bool   `json:"available"`
	TablesCount int    `json:"tables_count"`
}

// Slots percorre os horários do turno e produz apenas os que têm mesa livre.
// A sequência pode ser percorrida mais de uma vez.
//
// Para hoje, descarta horários anteriores a agora + antecedência. Essa regra é
// diferente da usada em ValidateShiftAvailability (fim do turno - antecedência).
func Slots(q SlotQuery) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if q.Shift == nil || q.PartySize <= 0 {
			return
		}
		if _, err := ParseLocalDate(q.Date, q.Now.Location()); err != nil {
			return
		}
		today := q.Now.Format(dateLayout)
		if q.Date < today {
			return
		}

		start, err := ParseSlotTime(q.Shift.StartTime)
		if err != nil {
			return
		}
		end, err := ParseSlotTime(q.Shift.EndTime)
		if err != nil {
			return
		}

		interval := q.Shift.SlotIntervalMinutes
		if interval <= 0 {
			interval = defaultSlotInterval
		}

		earliest := start
		if q.Date == today {
			earliest = minutesOfDay(q.Now) + int(q.BookingCutoffHours*60)
		}

		dwell := q.Shift.DefaultDwellMinutes
		buffer := q.Shift.DefaultBufferMinutes

		for cur := start; cur < end; cur += interval {
			if cur < earliest {
				continue
			}

			slotTime := FormatSlotTime(cur)
			period, err := OccupationPeriod(slotTime, dwell, buffer)
			if err != nil {
				continue
			}

			sel, err := FindAvailableTables(TableSearch{
				PartySize:     q.PartySize,
				Tables:        q.Tables,
				Date:          q.Date,
				Period:        period,
				Reservations:  q.Reservations,
				DwellMinutes:  dwell,
				BufferMinutes: buffer,
				AllowJoining:  q.AllowJoining,
			})
			if err != nil {
				continue
			}

			if !yield(Slot{Time: slotTime, Available: true, TablesCount: len(sel.Tables)}) {
				return
			}
		}
	}
}

func GenerateAvailableSlots(q SlotQuery) []Slot {
	return slices.Collect(Slots(q))
}

// ShiftSlots agrupa os horários livres de um turno no dia.
type ShiftSlots struct {
	ShiftID   uint   `json:"shift_id"`
	ShiftName string `json:"shift_name"`
	Slots     []Slot `json:"slots"`
}
