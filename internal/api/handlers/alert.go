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

type AlertHandler struct {
	alertService *services.AlertService
	notifier     *services.Notifier
	validator    *validator.Validate
}

func NewAlertHandler(alertService *services.AlertService, notifier *services.Notifier) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		notifier:     notifier,
		validator:    validator.New(),
	}
}

// GetAlerts retrieves alerts filtered by severity and/or date range
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	filter := services.AlertFilter{
		Severity:  c.Query("severity"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	alerts, err := h.alertService.GetAlerts(filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidFilter) {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid alert filter", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve alerts", err)
		return
	}

	utils.ListResponse(c, http.StatusOK, "Alerts retrieved successfully", alerts, len(alerts))
}

// GetAlert retrieves a single alert by ID
func (h *AlertHandler) GetAlert(c *gin.Context) {
	alertID := c.Param("id")

	alert, err := h.alertService.GetAlertByID(alertID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Alert not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve alert", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert retrieved successfully", alert)
}

// CreateAlert records an alert raised from the admin panel
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req services.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	alert, err := h.alertService.CreateAlert(&req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to create alert", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Alert created successfully", alert)
}

// SendAlertEmail triggers the notification email for one alert
func (h *AlertHandler) SendAlertEmail(c *gin.Context) {
	alertID := c.Param("id")
	if alertID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Alert ID is required", nil)
		return
	}

	err := h.notifier.SendAlertEmail(alertID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			utils.ErrorResponse(c, http.StatusNotFound, "Alert not found", err)
		case errors.Is(err, services.ErrSendInFlight):
			utils.ErrorResponse(c, http.StatusConflict, "Alert email is already being sent", err)
		case errors.Is(err, services.ErrTransport):
			utils.ErrorResponse(c, http.StatusBadGateway, "Failed to send alert email", err)
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to send alert email", err)
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert email sent successfully", nil)
}
