package availability

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var weekdayNames = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

// Period é um intervalo semiaberto [Start, End) em minutos desde a meia-noite.
// Start pode ser negativo e End pode passar de 1440; não há tratamento de virada de dia.
type Period struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps usa intervalos semiabertos: encostar nas pontas não conflita.
func (p Period) Overlaps(o Period) bool {
	return p.Start < o.End && p.End > o.Start
}

func PeriodsOverlap(a, b Period) bool {
	return a.Overlaps(b)
}

// ParseLocalDate fixa a data ao meio-dia local para que conversões de fuso
// não empurrem o dia para trás ou para frente.
func ParseLocalDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fail(KindInvalidDateFormat, "Data inválida: %q. Use o formato AAAA-MM-DD.", date)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc), nil
}

// DayOfWeek devolve 0 para domingo até 6 para sábado.
func DayOfWeek(date string) (int, error) {
	d, err := ParseLocalDate(date, time.UTC)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}

func WeekdayName(weekday int) string {
	if weekday < 0 || weekday >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[weekday]
}

// ParseSlotTime converte "HH:MM" em minutos desde a meia-noite.
func ParseSlotTime(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fail(KindInvalidTimeFormat, "Horário inválido: %q. Use o formato HH:MM.", hm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatSlotTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// OccupationPeriod = [slot - buffer, slot + dwell + buffer).
func OccupationPeriod(slotTime string, dwellMinutes, bufferMinutes int) (Period, error) {
	slot, err := ParseSlotTime(slotTime)
	if err != nil {
		return Period{}, err
	}
	return Period{
		Start: slot - bufferMinutes,
		End:   slot + dwellMinutes + bufferMinutes,
	}, nil
}

func sameDay(now time.Time, date string) bool {
	return now.Format(dateLayout) == date
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
