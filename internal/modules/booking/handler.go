package booking

import (
	"errors"
	"net/http"
	"strconv"

	"studiobooking/internal/modules/inventory"
	"studiobooking/internal/modules/schedule"
	"studiobooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.POST("/bookings/:id/confirm", h.ConfirmBooking)
	rg.POST("/bookings/:id/check-in", h.CheckInBooking)
	rg.POST("/bookings/:id/cancel", h.CancelBooking)
	rg.POST("/bookings/:id/no-show", h.MarkNoShow)
	rg.GET("/my/bookings", h.GetMyBookings)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		var stockErr *inventory.InsufficientStockError
		switch {
		case errors.Is(err, ErrValidation), errors.Is(err, schedule.ErrInvalidRange):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking time range")
		case errors.Is(err, schedule.ErrConflict):
			response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Studio is not available for the selected time")
		case errors.As(err, &stockErr):
			response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_STOCK", "Not enough equipment available", gin.H{
				"equipment_id": stockErr.EquipmentID,
				"requested":    stockErr.Requested,
				"available":    stockErr.Available,
				"total":        stockErr.Total,
			})
		case errors.Is(err, ErrInvalidPromotion):
			response.Error(c, http.StatusUnprocessableEntity, "INVALID_PROMOTION", "Promotion code is not applicable")
		case errors.Is(err, ErrPolicyNotConfigured):
			response.Error(c, http.StatusInternalServerError, "POLICY_NOT_CONFIGURED", "Booking policies are not configured")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.ConfirmBooking(c.Request.Context(), id)
	if err != nil {
		writeLifecycleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CheckInBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.CheckInBooking(c.Request.Context(), id)
	if err != nil {
		writeLifecycleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	b, err := h.service.CancelBooking(c.Request.Context(), id, req.Reason)
	if err != nil {
		writeLifecycleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req MarkNoShowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}

	b, err := h.service.MarkNoShow(c.Request.Context(), id, req.CheckInTime)
	if err != nil {
		writeLifecycleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Query("customer_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "customer_id is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.GetMyBookings(c.Request.Context(), customerID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return 0, false
	}
	return id, true
}

func writeLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", "Booking state does not allow this operation")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}
