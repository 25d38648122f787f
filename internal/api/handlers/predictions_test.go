package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"iwfm-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPredictionTestRouter(t *testing.T, feedJSON string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "next7days_predictions.json")
	if feedJSON != "" {
		require.NoError(t, os.WriteFile(path, []byte(feedJSON), 0o644))
	}

	forecastService := services.NewForecastService(path, nil, time.Minute, zap.NewNop())
	handler := NewPredictionHandler(forecastService)

	router := gin.New()
	router.GET("/api/predictions", handler.GetPredictions)
	router.GET("/api/predictions/demand", handler.GetDemand)
	return router
}

const predictionFeedJSON = `[
  {"date": "2024-01-01", "areas": [
    {"area": "Anna Nagar", "predicted": 850},
    {"area": "Velachery", "predicted": 430},
    {"area": "Adyar", "predicted": 0}
  ]}
]`

func TestPredictionHandler_GetPredictions(t *testing.T) {
	router := newPredictionTestRouter(t, predictionFeedJSON)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/predictions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["count"])
}

func TestPredictionHandler_GetPredictions_MissingFile(t *testing.T) {
	router := newPredictionTestRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/predictions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeEnvelope(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Prediction file not found", body["message"])
}

func TestPredictionHandler_GetDemand(t *testing.T) {
	router := newPredictionTestRouter(t, predictionFeedJSON)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/predictions/demand", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeEnvelope(t, w)
	require.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)

	areas, ok := data["areas"].([]interface{})
	require.True(t, ok)
	assert.Len(t, areas, 3)

	weekly, ok := data["weekly"].([]interface{})
	require.True(t, ok)
	require.Len(t, weekly, 1)

	// Zero-predicted areas are excluded from the map subset only.
	mapAreas, ok := data["map"].([]interface{})
	require.True(t, ok)
	require.Len(t, mapAreas, 2)

	for _, raw := range mapAreas {
		area, ok := raw.(map[string]interface{})
		require.True(t, ok)

		lat, ok := area["lat"].(float64)
		require.True(t, ok)
		lng, ok := area["lng"].(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, lat, 13.0)
		assert.Less(t, lat, 13.1)
		assert.GreaterOrEqual(t, lng, 80.2)
		assert.Less(t, lng, 80.3)
	}
}

func TestPredictionHandler_GetDemand_MissingFile(t *testing.T) {
	router := newPredictionTestRouter(t, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/predictions/demand", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
