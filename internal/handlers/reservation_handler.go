package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/mesa-scheduler/internal/middleware"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
	"github.com/BruksfildServices01/mesa-scheduler/internal/usecase/reservation"
)

// ReservationUseCases agrupa os casos de uso usados pelos handlers de reserva.
type ReservationUseCases struct {
	FindRestaurant *reservation.FindRestaurantBySlug
	Create         *reservation.CreateReservation
	Update         *reservation.UpdateReservation
	Confirm        *reservation.ConfirmReservation
	Cancel         *reservation.CancelReservation
	Complete       *reservation.CompleteReservation
	NoShow         *reservation.MarkNoShow
	Slots          *reservation.GetAvailableSlots
	ListByDate     *reservation.ListReservationsByDate
	GetByCode      *reservation.GetReservationByCode
	Export         *reservation.ExportAgenda
}

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	uc ReservationUseCases
}

func NewReservationHandler(uc ReservationUseCases) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

func staff(c *gin.Context) (uint, reservation.Actor) {
	restaurantID := c.MustGet(middleware.ContextRestaurantID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)
	return restaurantID, reservation.StaffActor(userID)
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	restaurantID, actor := staff(c)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	r, err := h.uc.Create.Execute(c.Request.Context(), reservation.CreateReservationInput{
		RestaurantID:  restaurantID,
		Actor:         actor,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Date:          req.Date,
		ShiftID:       req.ShiftID,
		SlotTime:      req.SlotTime,
		PartySize:     req.PartySize,
		Source:        req.Source,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, r)
}

// ======================================================
// LIST
// ======================================================

func (h *ReservationHandler) ListByDate(c *gin.Context) {
	restaurantID, _ := staff(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	out, err := h.uc.ListByDate.Execute(c.Request.Context(), restaurantID, date)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// UPDATE
// ======================================================

func (h *ReservationHandler) Update(c *gin.Context) {
	restaurantID, actor := staff(c)
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.empty() {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	r, err := h.uc.Update.Execute(c.Request.Context(), reservation.UpdateReservationInput{
		RestaurantID:  restaurantID,
		ReservationID: id,
		Actor:         actor,
		Date:          req.Date,
		ShiftID:       req.ShiftID,
		SlotTime:      req.SlotTime,
		PartySize:     req.PartySize,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, r)
}

// ======================================================
// STATUS
// ======================================================

type statusUseCase interface {
	Execute(ctx context.Context, in reservation.ChangeStatusInput) (*models.Reservation, error)
}

func (h *ReservationHandler) changeStatus(uc statusUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurantID, actor := staff(c)
		id, ok := idParam(c)
		if !ok {
			return
		}

		r, err := uc.Execute(c.Request.Context(), reservation.ChangeStatusInput{
			RestaurantID:  restaurantID,
			ReservationID: id,
			Actor:         actor,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		httpresp.OK(c, r)
	}
}

func (h *ReservationHandler) Confirm() gin.HandlerFunc  { return h.changeStatus(h.uc.Confirm) }
func (h *ReservationHandler) Cancel() gin.HandlerFunc   { return h.changeStatus(h.uc.Cancel) }
func (h *ReservationHandler) Complete() gin.HandlerFunc { return h.changeStatus(h.uc.Complete) }
func (h *ReservationHandler) NoShow() gin.HandlerFunc   { return h.changeStatus(h.uc.NoShow) }

// ======================================================
// AVAILABILITY
// ======================================================

func (h *ReservationHandler) Availability(c *gin.Context) {
	restaurantID, _ := staff(c)

	date, party, ok := availabilityQuery(c)
	if !ok {
		return
	}

	shifts, err := h.uc.Slots.Execute(c.Request.Context(), reservation.GetAvailableSlotsInput{
		RestaurantID: restaurantID,
		Date:         date,
		PartySize:    party,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       date,
		"party_size": party,
		"shifts":     shifts,
	})
}

// ======================================================
// EXPORT
// ======================================================

func (h *ReservationHandler) Export(c *gin.Context) {
	restaurantID, actor := staff(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	out, err := h.uc.Export.Execute(c.Request.Context(), reservation.ExportAgendaInput{
		RestaurantID: restaurantID,
		Date:         date,
		Actor:        actor,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, out)
}
