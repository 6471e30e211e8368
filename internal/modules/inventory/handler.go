package inventory

import (
	"errors"
	"net/http"
	"strconv"

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
	rg.GET("/equipment/:id", h.GetEquipment)
}

// RegisterAdminRoutes holds the mutations reserved for staff.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/equipment/:id/maintenance", h.SetMaintenance)
}

func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment id")
		return
	}

	eq, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": eq})
}

type setMaintenanceRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) SetMaintenance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment id")
		return
	}

	var req setMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	eq, err := h.service.SetMaintenanceQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidQuantity):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Quantity out of range")
		case errors.Is(err, ErrInvalidState):
			response.Error(c, http.StatusConflict, "INVALID_STATE", "Not enough free units to move to maintenance")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update maintenance quantity")
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"equipment": eq})
}
