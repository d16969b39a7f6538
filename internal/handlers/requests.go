package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
)

// ======================================================
// REQUESTS
// ======================================================

// CreateReservationRequest: date em YYYY-MM-DD e slot_time em HH:MM, no fuso do restaurante.
type CreateReservationRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	Date          string `json:"date" binding:"required"`
	ShiftID       uint   `json:"shift_id" binding:"required"`
	SlotTime      string `json:"slot_time" binding:"required"`
	PartySize     int    `json:"party_size" binding:"required"`
	Source        string `json:"source"`
	Notes         string `json:"notes"`
}

// UpdateReservationRequest: só os campos enviados são alterados.
type UpdateReservationRequest struct {
	Date      *string `json:"date"`
	ShiftID   *uint   `json:"shift_id"`
	SlotTime  *string `json:"slot_time"`
	PartySize *int    `json:"party_size"`
	Notes     *string `json:"notes"`
}

func (r UpdateReservationRequest) empty() bool {
	return r.Date == nil && r.ShiftID == nil && r.SlotTime == nil && r.PartySize == nil && r.Notes == nil
}

// ======================================================
// HELPERS
// ======================================================

// availabilityQuery lê ?date=&party_size= e responde 400 quando faltam.
func availabilityQuery(c *gin.Context) (string, int, bool) {
	date := c.Query("date")
	partyStr := c.Query("party_size")
	if date == "" || partyStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e número de pessoas são obrigatórios.")
		return "", 0, false
	}

	party, err := strconv.Atoi(partyStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_party_size", "Número de pessoas inválido.")
		return "", 0, false
	}
	return date, party, true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// normalizeCode: códigos são gravados em maiúsculas; vazio vira um código
// impossível para não cair na busca por id.
func normalizeCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "-"
	}
	return code
}
