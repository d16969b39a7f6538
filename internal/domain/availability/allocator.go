package availability

import (
	"slices"
	"sort"

	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

type TableSearch struct {
	PartySize    int
	Tables       []models.Table
	Date         string
	Period       Period
	Reservations []models.Reservation

	// Padrões do turno para reservas sem permanência/folga próprias.
	DwellMinutes  int
	BufferMinutes int

	AllowJoining bool
}

type TableSelection struct {
	Tables     []models.Table `json:"tables"`
	TotalSeats int            `json:"total_seats"`
}

type CombinationOptions struct {
	// PreferExact tenta primeiro uma mesa com exatamente o número de pessoas.
	PreferExact  bool
	AllowJoining bool
}

// IsTableAvailable verifica se nenhuma reserva ativa do dia ocupa a mesa durante period.
func IsTableAvailable(
	tableID uint,
	date string,
	period Period,
	reservations []models.Reservation,
	dwellMinutes int,
	bufferMinutes int,
) bool {
	for i := range reservations {
		r := &reservations[i]
		if r.Date != date || !r.OccupiesTables() {
			continue
		}
		if !slices.Contains(r.EffectiveTables(), tableID) {
			continue
		}

		dwell, buffer := dwellMinutes, bufferMinutes
		if r.DwellMinutes != nil {
			dwell = *r.DwellMinutes
		}
		if r.BufferMinutes != nil {
			buffer = *r.BufferMinutes
		}

		occupied, err := OccupationPeriod(r.SlotTime, dwell, buffer)
		if err != nil {
			// horário gravado ilegível: a mesa fica bloqueada
			return false
		}
		if occupied.Overlaps(period) {
			return false
		}
	}
	return true
}

// FreeTables filtra as mesas alocáveis e livres durante period.
func FreeTables(
	tables []models.Table,
	date string,
	period Period,
	reservations []models.Reservation,
	dwellMinutes int,
	bufferMinutes int,
) []models.Table {
	var free []models.Table
	for _, t := range tables {
		if !t.Bookable() {
			continue
		}
		if IsTableAvailable(t.ID, date, period, reservations, dwellMinutes, bufferMinutes) {
			free = append(free, t)
		}
	}
	return free
}

func FindAvailableTables(s TableSearch) (*TableSelection, error) {
	free := FreeTables(s.Tables, s.Date, s.Period, s.Reservations, s.DwellMinutes, s.BufferMinutes)
	if len(free) == 0 {
		return nil, fail(KindNoTablesAvailable,
			"Não há mesas disponíveis para este horário. Tente outro horário ou entre na lista de espera.")
	}

	return FindBestTableCombination(s.PartySize, free, CombinationOptions{
		AllowJoining: s.AllowJoining,
	})
}

// FindBestTableCombination escolhe, nesta ordem: a mesa exata (se PreferExact),
// a menor mesa que comporta o grupo, ou mesas acumuladas em ordem crescente de
// lugares até cobrir o grupo. A acumulação é gulosa e não garante o menor número de mesas.
func FindBestTableCombination(partySize int, candidates []models.Table, opts CombinationOptions) (*TableSelection, error) {
	sorted := sortBySeatsAsc(candidates)

	if opts.PreferExact {
		for _, t := range sorted {
			if t.Seats == partySize {
				return single(t), nil
			}
		}
	}

	for _, t := range sorted {
		if t.Seats >= partySize {
			return single(t), nil
		}
	}

	if !opts.AllowJoining {
		return nil, fail(KindInsufficientCapacity,
			"Nenhuma mesa livre comporta %d pessoas e a junção de mesas está desativada.", partySize)
	}

	remaining := partySize
	sel := &TableSelection{}
	for _, t := range sorted {
		sel.Tables = append(sel.Tables, t)
		sel.TotalSeats += t.Seats
		remaining -= t.Seats
		if remaining <= 0 {
			return sel, nil
		}
	}

	return nil, fail(KindInsufficientCapacity,
		"Capacidade insuficiente: há %d lugares livres para %d pessoas.", sel.TotalSeats, partySize)
}

func single(t models.Table) *TableSelection {
	return &TableSelection{Tables: []models.Table{t}, TotalSeats: t.Seats}
}

// sortBySeatsAsc preserva a ordem original entre mesas com o mesmo número de lugares.
func sortBySeatsAsc(tables []models.Table) []models.Table {
	out := slices.Clone(tables)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Seats < out[j].Seats
	})
	return out
}

func sortBySeatsDesc(tables []models.Table) []models.Table {
	out := slices.Clone(tables)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Seats > out[j].Seats
	})
	return out
}

func totalSeats(tables []models.Table) int {
	total := 0
	for _, t := range tables {
		total += t.Seats
	}
	return total
}
