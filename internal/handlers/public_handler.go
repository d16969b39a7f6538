package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/mesa-scheduler/internal/dto"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httperr"
	"github.com/BruksfildServices01/mesa-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
	"github.com/BruksfildServices01/mesa-scheduler/internal/usecase/reservation"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler atende o cliente final, identificado só pelo código da reserva.
type PublicHandler struct {
	uc ReservationUseCases
}

func NewPublicHandler(uc ReservationUseCases) *PublicHandler {
	return &PublicHandler{uc: uc}
}

func (h *PublicHandler) restaurant(c *gin.Context) (*models.Restaurant, bool) {
	rest, err := h.uc.FindRestaurant.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return rest, true
}

func publicView(rest *models.Restaurant, r *models.Reservation) dto.PublicReservationDTO {
	return dto.PublicReservationDTO{
		ReservationCode: r.ReservationCode,
		RestaurantName:  rest.Name,
		Date:            r.Date,
		SlotTime:        r.SlotTime,
		PartySize:       r.PartySize,
		Status:          r.Status,
		CustomerName:    r.Customer.Name,
		Notes:           r.Notes,
	}
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	date, party, ok := availabilityQuery(c)
	if !ok {
		return
	}

	rest, ok := h.restaurant(c)
	if !ok {
		return
	}

	shifts, err := h.uc.Slots.Execute(c.Request.Context(), reservation.GetAvailableSlotsInput{
		RestaurantID: rest.ID,
		Date:         date,
		PartySize:    party,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": rest.Name,
		"date":       date,
		"party_size": party,
		"shifts":     shifts,
	})
}

////////////////////////////////////////////////////////
// CREATE (sempre ONLINE)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateReservation(c *gin.Context) {
	rest, ok := h.restaurant(c)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	r, err := h.uc.Create.Execute(c.Request.Context(), reservation.CreateReservationInput{
		RestaurantID:  rest.ID,
		Actor:         reservation.CustomerActor(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Date:          req.Date,
		ShiftID:       req.ShiftID,
		SlotTime:      req.SlotTime,
		PartySize:     req.PartySize,
		Source:        models.SourceOnline,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, publicView(rest, r))
}

////////////////////////////////////////////////////////
// GET BY CODE
////////////////////////////////////////////////////////

func (h *PublicHandler) GetReservation(c *gin.Context) {
	rest, ok := h.restaurant(c)
	if !ok {
		return
	}

	out, err := h.uc.GetByCode.Execute(c.Request.Context(), rest.ID, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// UPDATE (prazo de alteração)
////////////////////////////////////////////////////////

func (h *PublicHandler) UpdateReservation(c *gin.Context) {
	rest, ok := h.restaurant(c)
	if !ok {
		return
	}

	var req UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.empty() {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	r, err := h.uc.Update.Execute(c.Request.Context(), reservation.UpdateReservationInput{
		RestaurantID: rest.ID,
		Code:         normalizeCode(c.Param("code")),
		Actor:        reservation.CustomerActor(),
		Date:         req.Date,
		ShiftID:      req.ShiftID,
		SlotTime:     req.SlotTime,
		PartySize:    req.PartySize,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, publicView(rest, r))
}

////////////////////////////////////////////////////////
// CANCEL (prazo de cancelamento)
////////////////////////////////////////////////////////

func (h *PublicHandler) CancelReservation(c *gin.Context) {
	rest, ok := h.restaurant(c)
	if !ok {
		return
	}

	r, err := h.uc.Cancel.Execute(c.Request.Context(), reservation.ChangeStatusInput{
		RestaurantID: rest.ID,
		Code:         normalizeCode(c.Param("code")),
		Actor:        reservation.CustomerActor(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, publicView(rest, r))
}
