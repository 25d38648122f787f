package handlers

import (
	"errors"
	"net/http"

	"iwfm-backend/internal/models"
	"iwfm-backend/internal/services"
	"iwfm-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TankerHandler struct {
	tankerService *services.TankerService
	validator     *validator.Validate
}

func NewTankerHandler(tankerService *services.TankerService) *TankerHandler {
	return &TankerHandler{
		tankerService: tankerService,
		validator:     validator.New(),
	}
}

// GetTankers retrieves all tankers with display-formatted last-seen times
func (h *TankerHandler) GetTankers(c *gin.Context) {
	tankers, err := h.tankerService.GetAllTankers()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve tankers", err)
		return
	}

	utils.ListResponse(c, http.StatusOK, "Tankers retrieved successfully", tankers, len(tankers))
}

// GetTanker retrieves a single tanker by ID
func (h *TankerHandler) GetTanker(c *gin.Context) {
	tankerID := c.Param("id")

	tanker, err := h.tankerService.GetTankerByID(tankerID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Tanker not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve tanker", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tanker retrieved successfully", tanker)
}

// CreateTanker registers a new tanker
func (h *TankerHandler) CreateTanker(c *gin.Context) {
	var req services.CreateTankerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	tanker, err := h.tankerService.CreateTanker(&req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			utils.ErrorResponse(c, http.StatusConflict, "Vehicle number already registered", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create tanker", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Tanker created successfully", tanker)
}

// DeleteTanker removes a tanker by ID
func (h *TankerHandler) DeleteTanker(c *gin.Context) {
	tankerID := c.Param("id")
	if tankerID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Tanker ID is required", nil)
		return
	}

	if err := h.tankerService.DeleteTanker(tankerID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Tanker not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete tanker", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tanker deleted successfully", nil)
}
