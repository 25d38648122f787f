package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"iwfm-backend/internal/models"
	"iwfm-backend/pkg/metrics"

	"go.uber.org/zap"
)

// Demand classification thresholds in KL of predicted volume, and the
// fraction of predicted volume treated as actually required.
const (
	highDemandThreshold   = 800
	mediumDemandThreshold = 400
	requiredWaterRatio    = 0.95
)

const forecastCacheKey = "forecast:feed"

// ForecastArea is one area entry of a forecast day as produced by the
// external prediction job. Missing numeric fields decode to 0.
type ForecastArea struct {
	Area        string  `json:"area"`
	Predicted   float64 `json:"predicted"`
	DemandLevel string  `json:"demandLevel,omitempty"`
	Time        string  `json:"time,omitempty"`
}

// ForecastDay is one upcoming day of the forecast feed.
type ForecastDay struct {
	Date  string         `json:"date"`
	Areas []ForecastArea `json:"areas"`
}

// DemandArea is a classified demand zone, derived per feed entry and
// never persisted. ID is the (day, area-index) composite key.
type DemandArea struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	PredictedWater float64 `json:"predictedWater"`
	RequiredWater  float64 `json:"requiredWater"`
	DemandLevel    string  `json:"demandLevel"`
	PredictedTime  string  `json:"predictedTime,omitempty"`
}

// WeeklyDemand is one weekday row of the per-area pivot used by the
// multi-line demand chart.
type WeeklyDemand struct {
	Day   string             `json:"day"`
	Areas map[string]float64 `json:"areas"`
}

// ForecastCache is an optional read-through cache for the parsed feed.
type ForecastCache interface {
	Get(key string, dest interface{}) (bool, error)
	Set(key string, value interface{}, ttl time.Duration) error
}

// ForecastService reads the externally produced forecast feed and derives
// demand classifications from it. The feed file is a black box dropped at
// a known location; a missing file is an upstream condition, not a crash.
type ForecastService struct {
	path   string
	cache  ForecastCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewForecastService returns a forecast service reading from path. cache
// may be nil, in which case every read hits the file.
func NewForecastService(path string, cache ForecastCache, ttl time.Duration, logger *zap.Logger) *ForecastService {
	return &ForecastService{
		path:   path,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// Feed returns the parsed forecast feed. Cache failures fall through to
// the file; they never fail the request.
func (s *ForecastService) Feed() ([]ForecastDay, error) {
	if s.cache != nil {
		var feed []ForecastDay
		found, err := s.cache.Get(forecastCacheKey, &feed)
		if err != nil {
			s.logger.Warn("forecast cache read failed", zap.Error(err))
		} else if found {
			metrics.ForecastCacheHits.Inc()
			return feed, nil
		}
		metrics.ForecastCacheMisses.Inc()
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("forecast feed %s: %w", s.path, models.ErrUpstream)
		}
		return nil, fmt.Errorf("read forecast feed: %w", err)
	}

	var feed []ForecastDay
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parse forecast feed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(forecastCacheKey, feed, s.ttl); err != nil {
			s.logger.Warn("forecast cache write failed", zap.Error(err))
		}
	}

	return feed, nil
}

// Demand returns the classified demand areas and the weekly pivot for the
// current feed.
func (s *ForecastService) Demand() ([]DemandArea, []WeeklyDemand, error) {
	feed, err := s.Feed()
	if err != nil {
		return nil, nil, err
	}
	return Classify(feed), WeeklyPivot(feed), nil
}

// DemandLevelFor classifies a predicted volume with the fixed thresholds.
func DemandLevelFor(predicted float64) string {
	switch {
	case predicted >= highDemandThreshold:
		return "High"
	case predicted >= mediumDemandThreshold:
		return "Medium"
	default:
		return "Low"
	}
}

// Classify derives one DemandArea per feed entry, in feed order. A demand
// level already supplied by the feed wins over the threshold rule; the
// required volume is always predicted x 0.95. Zero-predicted areas are
// kept here and filtered only at the map rendering boundary.
func Classify(feed []ForecastDay) []DemandArea {
	areas := make([]DemandArea, 0)
	for _, day := range feed {
		for i, a := range day.Areas {
			level := a.DemandLevel
			if level == "" {
				level = DemandLevelFor(a.Predicted)
			}
			areas = append(areas, DemandArea{
				ID:             fmt.Sprintf("%s-%d", day.Date, i),
				Name:           a.Area,
				PredictedWater: a.Predicted,
				RequiredWater:  a.Predicted * requiredWaterRatio,
				DemandLevel:    level,
				PredictedTime:  a.Time,
			})
		}
	}
	return areas
}

// WeeklyPivot builds one row per feed day keyed by weekday short name,
// with the predicted volume of every area as series values.
func WeeklyPivot(feed []ForecastDay) []WeeklyDemand {
	week := make([]WeeklyDemand, 0, len(feed))
	for _, day := range feed {
		label := day.Date
		if d, err := time.Parse(dateLayout, day.Date); err == nil {
			label = d.Format("Mon")
		}

		row := WeeklyDemand{
			Day:   label,
			Areas: make(map[string]float64, len(day.Areas)),
		}
		for _, a := range day.Areas {
			row.Areas[a.Area] = a.Predicted
		}
		week = append(week, row)
	}
	return week
}
