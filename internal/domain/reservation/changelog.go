package reservation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// GenerateChangeLog descreve em português o que mudou entre before e after.
// Devolve "" quando nada relevante mudou.
func GenerateChangeLog(before, after *models.Reservation) string {
	var changes []string

	if before.Date != after.Date {
		changes = append(changes, fmt.Sprintf("data de %s para %s", before.Date, after.Date))
	}
	if before.SlotTime != after.SlotTime {
		changes = append(changes, fmt.Sprintf("horário de %s para %s", before.SlotTime, after.SlotTime))
	}
	if before.PartySize != after.PartySize {
		changes = append(changes, fmt.Sprintf("pessoas de %d para %d", before.PartySize, after.PartySize))
	}
	if b, a := before.EffectiveTables(), after.EffectiveTables(); !slices.Equal(b, a) {
		changes = append(changes, fmt.Sprintf("mesas de %s para %s", formatTables(b), formatTables(a)))
	}
	if before.Notes != after.Notes {
		changes = append(changes, "observações atualizadas")
	}
	if before.Status != after.Status {
		changes = append(changes, fmt.Sprintf("status de %s para %s", before.Status, after.Status))
	}

	if len(changes) == 0 {
		return ""
	}
	return "Alterado: " + strings.Join(changes, "; ") + "."
}

// AddModification registra a mudança no histórico e marca a reserva como alterada.
func AddModification(r *models.Reservation, change, actor string, at time.Time) {
	if change == "" {
		return
	}
	LogEntry(r, change, actor, at)
	AddTag(r, TagModified)
}

// LogEntry só acrescenta ao histórico; usado nas mudanças de status.
func LogEntry(r *models.Reservation, change, actor string, at time.Time) {
	r.ModificationLog = append(r.ModificationLog, models.ModificationEntry{
		Timestamp: at,
		Change:    change,
		Actor:     actor,
	})
}

func formatTables(ids []uint) string {
	if len(ids) == 0 {
		return "nenhuma"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, "+")
}
