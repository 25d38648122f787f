package services

import (
	"fmt"
	"time"

	"iwfm-backend/internal/models"
)

const (
	dateLayout        = "2006-01-02"
	displayTimeLayout = "2006-01-02 15:04"

	// severityAll is the sentinel meaning "no severity restriction".
	severityAll = "all"
)

// AlertStore is the persistence surface the alert workflow needs.
type AlertStore interface {
	FindFiltered(severity string, start, end *time.Time) ([]*models.Alert, error)
	FindByID(id string) (*models.Alert, error)
	Create(alert *models.Alert) (*models.Alert, error)
}

type AlertService struct {
	alerts AlertStore
}

func NewAlertService(alerts AlertStore) *AlertService {
	return &AlertService{
		alerts: alerts,
	}
}

// AlertFilter carries the optional list filters as they arrive on the
// query string. Dates are calendar days in YYYY-MM-DD form.
type AlertFilter struct {
	Severity  string
	StartDate string
	EndDate   string
}

// AlertView is an alert shaped for the admin panel list and the email
// body: timestamps rendered as local "YYYY-MM-DD HH:MM".
type AlertView struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Tanker      string `json:"tanker"`
	Ts          string `json:"ts"`
	Description string `json:"description"`
}

type CreateAlertRequest struct {
	Type        string `json:"type" validate:"required,oneof='Low Level' 'PH Out of Range' 'Battery Low' 'GPS Signal Lost' 'Over Speeding' 'Engine Overheating' 'Leakage Detected' 'Unauthorized Stop' 'Door Tampering' 'Communication Failure'"`
	Severity    string `json:"severity" validate:"required,oneof=low medium high"`
	Tanker      string `json:"tanker" validate:"required"`
	Description string `json:"description" validate:"required,min=1,max=500"`
}

// GetAlerts returns alerts matching the filter, most recent first. An
// empty result is a valid outcome, not an error.
func (s *AlertService) GetAlerts(filter AlertFilter) ([]AlertView, error) {
	severity := filter.Severity
	if severity == severityAll {
		severity = ""
	}
	switch severity {
	case "", "low", "medium", "high":
	default:
		return nil, fmt.Errorf("severity %q: %w", filter.Severity, ErrInvalidFilter)
	}

	var start, end *time.Time
	if filter.StartDate != "" {
		day, err := time.ParseInLocation(dateLayout, filter.StartDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("start date %q: %w", filter.StartDate, ErrInvalidFilter)
		}
		start = &day
	}
	if filter.EndDate != "" {
		day, err := time.ParseInLocation(dateLayout, filter.EndDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("end date %q: %w", filter.EndDate, ErrInvalidFilter)
		}
		// Extend to the last instant of the calendar day so that
		// day-granularity filters are inclusive of the end date.
		last := endOfDay(day)
		end = &last
	}

	alerts, err := s.alerts.FindFiltered(severity, start, end)
	if err != nil {
		return nil, err
	}

	views := make([]AlertView, 0, len(alerts))
	for _, alert := range alerts {
		views = append(views, AlertView{
			ID:          alert.ID.Hex(),
			Type:        alert.Type,
			Severity:    alert.Severity,
			Tanker:      alert.Tanker,
			Ts:          alert.Ts.Local().Format(displayTimeLayout),
			Description: alert.Description,
		})
	}

	return views, nil
}

// endOfDay returns 23:59:59.999 of day's calendar date. Built from the
// wall-clock fields rather than by adding 24h, which drifts on days
// shortened or stretched by a DST transition.
func endOfDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		23, 59, 59, int(999*time.Millisecond), day.Location())
}

func (s *AlertService) GetAlertByID(id string) (*AlertView, error) {
	alert, err := s.alerts.FindByID(id)
	if err != nil {
		return nil, err
	}

	view := AlertView{
		ID:          alert.ID.Hex(),
		Type:        alert.Type,
		Severity:    alert.Severity,
		Tanker:      alert.Tanker,
		Ts:          alert.Ts.Local().Format(displayTimeLayout),
		Description: alert.Description,
	}
	return &view, nil
}

// CreateAlert records an alert raised by an operator. Timestamp defaults
// to the creation time, lifecycle status to active.
func (s *AlertService) CreateAlert(req *CreateAlertRequest) (*models.Alert, error) {
	now := time.Now()
	alert := &models.Alert{
		Type:        req.Type,
		Severity:    req.Severity,
		Tanker:      req.Tanker,
		Ts:          now,
		Description: req.Description,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.alerts.Create(alert)
}
