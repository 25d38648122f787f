package handlers

import (
	"errors"
	"math/rand"
	"net/http"

	"iwfm-backend/internal/models"
	"iwfm-backend/internal/services"
	"iwfm-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// The forecast feed carries no geocoding, so map circles are scattered
// around the city center. The jittered coordinates are a display
// approximation only and never leave this handler.
const (
	mapCenterLat = 13.0
	mapCenterLng = 80.2
	mapJitter    = 0.1
)

type PredictionHandler struct {
	forecastService *services.ForecastService
}

func NewPredictionHandler(forecastService *services.ForecastService) *PredictionHandler {
	return &PredictionHandler{
		forecastService: forecastService,
	}
}

// DemandMapArea is a demand area augmented with display coordinates for
// the map view.
type DemandMapArea struct {
	services.DemandArea
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DemandView is the full payload of the demand endpoint: the classified
// areas, the weekly pivot for charting, and the map subset.
type DemandView struct {
	Areas  []services.DemandArea   `json:"areas"`
	Weekly []services.WeeklyDemand `json:"weekly"`
	Map    []DemandMapArea         `json:"map"`
}

// GetPredictions passes the raw forecast feed through
func (h *PredictionHandler) GetPredictions(c *gin.Context) {
	feed, err := h.forecastService.Feed()
	if err != nil {
		if errors.Is(err, models.ErrUpstream) {
			utils.ErrorResponse(c, http.StatusNotFound, "Prediction file not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to read predictions", err)
		return
	}

	utils.ListResponse(c, http.StatusOK, "Predictions retrieved successfully", feed, len(feed))
}

// GetDemand returns the classified demand areas, the weekly pivot and
// the map view
func (h *PredictionHandler) GetDemand(c *gin.Context) {
	areas, weekly, err := h.forecastService.Demand()
	if err != nil {
		if errors.Is(err, models.ErrUpstream) {
			utils.ErrorResponse(c, http.StatusNotFound, "Prediction file not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to classify demand", err)
		return
	}

	view := DemandView{
		Areas:  areas,
		Weekly: weekly,
		Map:    mapAreas(areas),
	}

	utils.SuccessResponse(c, http.StatusOK, "Demand forecast computed successfully", view)
}

// mapAreas drops zero-predicted areas from the map and assigns display
// coordinates.
func mapAreas(areas []services.DemandArea) []DemandMapArea {
	result := make([]DemandMapArea, 0, len(areas))
	for _, area := range areas {
		if area.PredictedWater == 0 {
			continue
		}
		result = append(result, DemandMapArea{
			DemandArea: area,
			Lat:        mapCenterLat + rand.Float64()*mapJitter,
			Lng:        mapCenterLng + rand.Float64()*mapJitter,
		})
	}
	return result
}
