package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mesa-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/logging"
)

// ======================================================
// ENGINE
// ======================================================

var kindStatus = map[availability.Kind]int{
	availability.KindInvalidDateFormat: http.StatusBadRequest,
	availability.KindInvalidTimeFormat: http.StatusBadRequest,
	availability.KindInvalidPartySize:  http.StatusBadRequest,

	availability.KindClosedOnThisDay:        http.StatusUnprocessableEntity,
	availability.KindShiftInactiveOrUnknown: http.StatusUnprocessableEntity,
	availability.KindOutsideShiftHours:      http.StatusUnprocessableEntity,
	availability.KindPastBookingCutoff:      http.StatusUnprocessableEntity,
	availability.KindPartySizeExceedsLimit:  http.StatusUnprocessableEntity,

	availability.KindShiftCapacityExceeded: http.StatusConflict,
	availability.KindNoTablesAvailable:     http.StatusConflict,
	availability.KindInsufficientCapacity:  http.StatusConflict,
	availability.KindNoAvailability:        http.StatusConflict,
}

// ======================================================
// BUSINESS
// ======================================================

type businessResponse struct {
	status  int
	message string
}

var businessErrors = map[string]businessResponse{
	"restaurant_not_found":  {http.StatusNotFound, "Restaurante não encontrado."},
	"reservation_not_found": {http.StatusNotFound, "Reserva não encontrada."},
	"shift_not_found":       {http.StatusNotFound, "Turno não encontrado."},

	"invalid_state": {http.StatusConflict, "A reserva não permite esta operação no status atual."},

	"cancellation_cutoff": {http.StatusUnprocessableEntity, "O prazo para cancelar esta reserva já passou."},
	"modification_cutoff": {http.StatusUnprocessableEntity, "O prazo para alterar esta reserva já passou."},

	"invalid_source":       {http.StatusBadRequest, "Origem da reserva inválida."},
	"customer_required":    {http.StatusBadRequest, "Nome e telefone do cliente são obrigatórios."},
	"invalid_email":        {http.StatusBadRequest, "E-mail inválido."},
	"invalid_date_or_time": {http.StatusBadRequest, "Data ou hora inválida."},

	"export_disabled":        {http.StatusServiceUnavailable, "Exportação de agenda não configurada."},
	"code_generation_failed": {http.StatusInternalServerError, "Não foi possível gerar o código da reserva."},
}

// respondError traduz erros dos casos de uso para a resposta HTTP.
func respondError(c *gin.Context, err error) {
	if kind := availability.KindOf(err); kind != "" {
		status, ok := kindStatus[kind]
		if !ok {
			status = http.StatusUnprocessableEntity
		}
		httperr.Write(c, status, string(kind), availability.MessageOf(err))
		return
	}

	if code, ok := httperr.BusinessCode(err); ok {
		if resp, known := businessErrors[code]; known {
			httperr.Write(c, resp.status, code, resp.message)
			return
		}
		httperr.BadRequest(c, code, "Operação inválida.")
		return
	}

	if errs.Is(err, domain.ErrConflict) {
		httperr.Conflict(c, "booking_conflict", "Outra reserva foi feita ao mesmo tempo. Tente novamente.")
		return
	}

	logging.Ctx(c.Request.Context()).Error().
		Err(err).
		Strs("stack", errs.StackLines(err, 8)).
		Str("path", c.FullPath()).
		Msg("request failed")

	httperr.Internal(c, "internal_error", "Erro interno. Tente novamente mais tarde.")
}
