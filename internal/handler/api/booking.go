package api

import (
	"errors"
	"net/http"

	"cabin-booking/internal/domain/booking"
	reqdto "cabin-booking/internal/handler/dto/request"
	resdto "cabin-booking/internal/handler/dto/response"
	"cabin-booking/internal/handler/httperr"
	"cabin-booking/internal/pkg/config"
	"cabin-booking/internal/pkg/errs"
	"cabin-booking/internal/usecase/commands"
	"cabin-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
	cfg             config.BookingConfig
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	cfg config.BookingConfig,
) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
		cfg:             cfg,
	}
}

// @Summary Create booking
// @Description Book a cabin for a stay period; rejects overlapping periods
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	params, err := req.ToParams(h.cfg)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), params)
	if err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get booking by ID, including cost and payment breakdown
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "Invalid booking ID format")
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List all bookings across cabins
// @Tags bookings
// @Produce json
// @Success 200 {array} resdto.BookingListResponse
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	items, err := h.bookingQueries.List(c.Request.Context(), nil)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingList(items))
}

// @Summary List cabin bookings
// @Description List a cabin's bookings, cancelled ones excluded
// @Tags bookings
// @Produce json
// @Param id path string true "Cabin ID"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/cabin/{id} [get]
func (h *BookingHandler) ListCabinBookings(c *gin.Context) {
	cabinID, ok := h.parseIDParam(c, "id", "Invalid cabin ID format")
	if !ok {
		return
	}

	items, err := h.bookingQueries.List(c.Request.Context(), &cabinID)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingList(items))
}

// @Summary Check availability
// @Description Advisory availability check for a cabin and stay period
// @Tags bookings
// @Produce json
// @Param cabin_id query string true "Cabin ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD or RFC3339)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD or RFC3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/check-availability [get]
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	cabinID, err := uuid.Parse(c.Query("cabin_id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cabin ID format", nil)
		return
	}

	period, err := reqdto.ParseStayPeriod(c.Query("check_in"), c.Query("check_out"), h.cfg)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	result, err := h.bookingQueries.CheckAvailability(c.Request.Context(), cabinID, period)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityResult(result))
}

// @Summary Available dates
// @Description Free calendar dates for a cabin over the next year
// @Tags bookings
// @Produce json
// @Param id path string true "Cabin ID"
// @Success 200 {object} resdto.AvailableDatesResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/cabin/{id}/available-dates [get]
func (h *BookingHandler) AvailableDates(c *gin.Context) {
	cabinID, ok := h.parseIDParam(c, "id", "Invalid cabin ID format")
	if !ok {
		return
	}

	dates, err := h.bookingQueries.AvailableDates(c.Request.Context(), cabinID)
	if err != nil {
		h.abortQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.AvailableDatesResponse{Dates: dates})
}

// @Summary Transition booking status
// @Description Move a booking along its lifecycle (checked_in, checked_out, cancelled)
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.TransitionStatusRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/status [put]
func (h *BookingHandler) TransitionStatus(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "Invalid booking ID format")
	if !ok {
		return
	}

	var req reqdto.TransitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	target, err := booking.ParseStatus(req.Status)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown booking status", nil)
		return
	}

	view, err := h.bookingCommands.TransitionStatus(c.Request.Context(), id, target, req.Notes)
	if err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Soft-cancel a booking; the slot becomes available again
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "Invalid booking ID format")
	if !ok {
		return
	}

	if err := h.bookingCommands.CancelBooking(c.Request.Context(), id); err != nil {
		h.abortCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) parseIDParam(c *gin.Context, name, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) abortCommandError(c *gin.Context, err error) {
	var conflictErr *commands.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		httperr.AbortWithError(c, http.StatusConflict, err,
			"Cabin is already booked for the requested period",
			resdto.FromConflictError(conflictErr))
	case errors.Is(err, errs.ErrCabinNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Cabin not found", nil)
	case errors.Is(err, errs.ErrTariffNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Tariff not found", nil)
	case errors.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid status transition", nil)
	case errors.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func (h *BookingHandler) abortQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrCabinNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Cabin not found", nil)
	case errors.Is(err, errs.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
