package export

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var agendaColumns = []string{
	"Horário", "Turno", "Código", "Cliente", "Telefone",
	"Pessoas", "Mesas", "Status", "Origem", "Observações",
}

type Agenda struct {
	Restaurant   *models.Restaurant
	Date         string
	Shifts       []models.Shift
	Tables       []models.Table
	Reservations []models.Reservation
}

// AgendaKey é o caminho do arquivo no bucket.
func AgendaKey(restaurantSlug, date string) string {
	return fmt.Sprintf("agendas/%s/%s.xlsx", restaurantSlug, date)
}

// AgendaWorkbook gera a planilha do dia: uma aba com as reservas por horário
// e uma aba de resumo por turno. Reservas canceladas aparecem com seu status.
func AgendaWorkbook(a Agenda) ([]byte, error) {
	w := newSheetWriter()
	defer w.Close()

	shiftNames := make(map[uint]string, len(a.Shifts))
	for _, s := range a.Shifts {
		shiftNames[s.ID] = s.Name
	}
	tableNames := make(map[uint]string, len(a.Tables))
	for _, t := range a.Tables {
		tableNames[t.ID] = t.Name
	}

	rows := slices.Clone(a.Reservations)
	slices.SortStableFunc(rows, func(x, y models.Reservation) int {
		return cmp.Compare(x.SlotTime, y.SlotTime)
	})

	if err := w.AddSheet("Agenda " + a.Date); err != nil {
		return nil, err
	}
	if err := w.WriteHeader(agendaColumns); err != nil {
		return nil, err
	}

	type summary struct{ reservations, guests int }
	perShift := make(map[uint]*summary)

	for _, r := range rows {
		if err := w.WriteRow([]any{
			r.SlotTime,
			shiftNames[r.ShiftID],
			r.ReservationCode,
			r.Customer.Name,
			r.Customer.Phone,
			r.PartySize,
			tableLabel(r.EffectiveTables(), tableNames),
			r.Status,
			r.Source,
			r.Notes,
		}); err != nil {
			return nil, err
		}

		if r.Counts() {
			s := perShift[r.ShiftID]
			if s == nil {
				s = &summary{}
				perShift[r.ShiftID] = s
			}
			s.reservations++
			s.guests += r.PartySize
		}
	}

	if err := w.AddSheet("Resumo"); err != nil {
		return nil, err
	}
	if err := w.WriteHeader([]string{"Turno", "Reservas", "Pessoas", "Lotação"}); err != nil {
		return nil, err
	}
	for _, s := range a.Shifts {
		sum := perShift[s.ID]
		if sum == nil {
			sum = &summary{}
		}
		capacity := "-"
		if s.MaxCapacity != nil {
			capacity = fmt.Sprintf("%d", *s.MaxCapacity)
		}
		if err := w.WriteRow([]any{s.Name, sum.reservations, sum.guests, capacity}); err != nil {
			return nil, err
		}
	}

	return w.Bytes()
}

func tableLabel(ids []uint, names map[uint]string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if name := names[id]; name != "" {
			parts = append(parts, name)
		} else {
			parts = append(parts, fmt.Sprintf("#%d", id))
		}
	}
	return strings.Join(parts, " + ")
}
