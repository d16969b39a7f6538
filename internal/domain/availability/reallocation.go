package availability

import (
	"slices"

	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

type ReallocationInput struct {
	Reservation  *models.Reservation
	NewPartySize int

	// Todas as mesas do restaurante e as reservas da data.
	Tables       []models.Table
	Reservations []models.Reservation

	Shift        *models.Shift
	AllowJoining bool
}

// ReallocationPlan descreve o novo conjunto de mesas; quem persiste é o chamador.
type ReallocationPlan struct {
	NeedsReallocation bool           `json:"needs_reallocation"`
	Tables            []models.Table `json:"tables"`
	TotalSeats        int            `json:"total_seats"`
	FreedTableIDs     []uint         `json:"freed_table_ids"`
	Message           string         `json:"message"`
}

func (p *ReallocationPlan) TableIDs() []uint {
	ids := make([]uint, len(p.Tables))
	for i, t := range p.Tables {
		ids[i] = t.ID
	}
	return ids
}

// ValidateAndReallocateTables decide se a reserva mantém, reduz ou amplia suas
// mesas quando o número de pessoas muda. Não altera nenhum dos argumentos.
func ValidateAndReallocateTables(in ReallocationInput) (*ReallocationPlan, error) {
	if in.NewPartySize <= 0 {
		return nil, fail(KindInvalidPartySize, "Informe o número de pessoas da reserva.")
	}

	held := heldTables(in.Reservation, in.Tables)
	current := in.Reservation.PartySize

	switch {
	case in.NewPartySize == current:
		return keep(held, "O número de pessoas não mudou; as mesas foram mantidas."), nil

	case in.NewPartySize < current:
		return shrink(held, in.NewPartySize), nil

	case totalSeats(held) >= in.NewPartySize:
		return keep(held, "As mesas atuais comportam o novo número de pessoas."), nil
	}

	return grow(in, held)
}

// ======================================================
// SHRINK
// ======================================================

// shrink nunca procura mesas fora das que a reserva já ocupa.
func shrink(held []models.Table, partySize int) *ReallocationPlan {
	desc := sortBySeatsDesc(held)

	for _, t := range desc {
		if t.Seats >= partySize {
			chosen := []models.Table{t}
			if len(held) == 1 {
				return keep(held, "A mesa atual comporta o novo número de pessoas.")
			}
			return &ReallocationPlan{
				NeedsReallocation: true,
				Tables:            chosen,
				TotalSeats:        t.Seats,
				FreedTableIDs:     freed(held, chosen),
				Message:           "A reserva foi concentrada em uma única mesa.",
			}
		}
	}

	var chosen []models.Table
	seats := 0
	for _, t := range desc {
		chosen = append(chosen, t)
		seats += t.Seats
		if seats >= partySize {
			break
		}
	}

	if len(chosen) == len(held) {
		return keep(held, "As mesas atuais foram mantidas.")
	}

	return &ReallocationPlan{
		NeedsReallocation: true,
		Tables:            chosen,
		TotalSeats:        seats,
		FreedTableIDs:     freed(held, chosen),
		Message:           "Mesas excedentes foram liberadas.",
	}
}

// ======================================================
// GROW
// ======================================================

func grow(in ReallocationInput, held []models.Table) (*ReallocationPlan, error) {
	r := in.Reservation
	dwell := in.Shift.DefaultDwellMinutes
	buffer := in.Shift.DefaultBufferMinutes

	period, err := OccupationPeriod(r.SlotTime, dwell, buffer)
	if err != nil {
		return nil, err
	}

	var others []models.Reservation
	for _, o := range in.Reservations {
		if o.ID != r.ID && o.Date == r.Date && o.Counts() {
			others = append(others, o)
		}
	}

	candidates := FreeTables(in.Tables, r.Date, period, others, dwell, buffer)
	if len(candidates) == 0 {
		return nil, fail(KindNoAvailability,
			"Não há mesas livres para acomodar %d pessoas neste horário.", in.NewPartySize)
	}

	sel, err := FindBestTableCombination(in.NewPartySize, candidates, CombinationOptions{
		PreferExact:  true,
		AllowJoining: in.AllowJoining,
	})
	if err != nil {
		return nil, err
	}

	return &ReallocationPlan{
		NeedsReallocation: true,
		Tables:            sel.Tables,
		TotalSeats:        sel.TotalSeats,
		FreedTableIDs:     freed(held, sel.Tables),
		Message:           "A reserva foi realocada para acomodar o novo número de pessoas.",
	}, nil
}

// ======================================================
// HELPERS
// ======================================================

// heldTables resolve as mesas efetivas da reserva na ordem gravada;
// ids que não existem mais no restaurante são ignorados.
func heldTables(r *models.Reservation, tables []models.Table) []models.Table {
	var held []models.Table
	for _, id := range r.EffectiveTables() {
		idx := slices.IndexFunc(tables, func(t models.Table) bool { return t.ID == id })
		if idx >= 0 {
			held = append(held, tables[idx])
		}
	}
	return held
}

func keep(held []models.Table, msg string) *ReallocationPlan {
	return &ReallocationPlan{
		NeedsReallocation: false,
		Tables:            held,
		TotalSeats:        totalSeats(held),
		Message:           msg,
	}
}

func freed(before, after []models.Table) []uint {
	var ids []uint
	for _, b := range before {
		if !slices.ContainsFunc(after, func(a models.Table) bool { return a.ID == b.ID }) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
