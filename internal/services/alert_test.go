package services

import (
	"errors"
	"sort"
	"testing"
	"time"

	"iwfm-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeAlertStore filters an in-memory fixture the way the Mongo
// repository does: severity equality, inclusive ts bounds, ts descending.
type fakeAlertStore struct {
	alerts  []*models.Alert
	findErr error

	lastSeverity string
	lastStart    *time.Time
	lastEnd      *time.Time
}

func (f *fakeAlertStore) FindFiltered(severity string, start, end *time.Time) ([]*models.Alert, error) {
	f.lastSeverity = severity
	f.lastStart = start
	f.lastEnd = end

	if f.findErr != nil {
		return nil, f.findErr
	}

	var matched []*models.Alert
	for _, a := range f.alerts {
		if severity != "" && a.Severity != severity {
			continue
		}
		if start != nil && a.Ts.Before(*start) {
			continue
		}
		if end != nil && a.Ts.After(*end) {
			continue
		}
		matched = append(matched, a)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Ts.After(matched[j].Ts)
	})
	return matched, nil
}

func (f *fakeAlertStore) FindByID(id string) (*models.Alert, error) {
	for _, a := range f.alerts {
		if a.ID.Hex() == id {
			return a, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeAlertStore) Create(alert *models.Alert) (*models.Alert, error) {
	alert.ID = primitive.NewObjectID()
	f.alerts = append(f.alerts, alert)
	return alert, nil
}

func newTestAlert(severity string, ts time.Time) *models.Alert {
	return &models.Alert{
		ID:          primitive.NewObjectID(),
		Type:        "Battery Low",
		Severity:    severity,
		Tanker:      "TN-01-1234",
		Ts:          ts,
		Description: "battery below threshold",
		Status:      "active",
	}
}

func TestAlertService_GetAlerts_SeverityFilter(t *testing.T) {
	store := &fakeAlertStore{
		alerts: []*models.Alert{
			newTestAlert("low", time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local)),
			newTestAlert("medium", time.Date(2024, 3, 2, 10, 0, 0, 0, time.Local)),
			newTestAlert("high", time.Date(2024, 3, 3, 10, 0, 0, 0, time.Local)),
		},
	}
	service := NewAlertService(store)

	for _, severity := range []string{"low", "medium", "high"} {
		alerts, err := service.GetAlerts(AlertFilter{Severity: severity})
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, severity, alerts[0].Severity)
	}

	// "all" and the empty string both mean no severity restriction
	for _, severity := range []string{"all", ""} {
		alerts, err := service.GetAlerts(AlertFilter{Severity: severity})
		require.NoError(t, err)
		assert.Len(t, alerts, 3)
		assert.Equal(t, "", store.lastSeverity)
	}
}

func TestAlertService_GetAlerts_InvalidSeverity(t *testing.T) {
	service := NewAlertService(&fakeAlertStore{})

	_, err := service.GetAlerts(AlertFilter{Severity: "critical"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestAlertService_GetAlerts_EndDateInclusive(t *testing.T) {
	// An alert late on the end date must be included: the bound extends
	// to the last instant of the calendar day.
	lateOnEndDate := newTestAlert("high", time.Date(2024, 3, 5, 23, 59, 0, 0, time.Local))
	dayAfter := newTestAlert("high", time.Date(2024, 3, 6, 0, 1, 0, 0, time.Local))

	store := &fakeAlertStore{alerts: []*models.Alert{lateOnEndDate, dayAfter}}
	service := NewAlertService(store)

	alerts, err := service.GetAlerts(AlertFilter{StartDate: "2024-03-01", EndDate: "2024-03-05"})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, lateOnEndDate.ID.Hex(), alerts[0].ID)

	require.NotNil(t, store.lastStart)
	require.NotNil(t, store.lastEnd)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local), *store.lastStart)
	assert.Equal(t, time.Date(2024, 3, 5, 23, 59, 59, int(999*time.Millisecond), time.Local), *store.lastEnd)
}

func TestAlertService_GetAlerts_InvalidDates(t *testing.T) {
	service := NewAlertService(&fakeAlertStore{})

	_, err := service.GetAlerts(AlertFilter{StartDate: "03/01/2024"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = service.GetAlerts(AlertFilter{EndDate: "not-a-date"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestAlertService_GetAlerts_SortedNewestFirst(t *testing.T) {
	store := &fakeAlertStore{
		alerts: []*models.Alert{
			newTestAlert("low", time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)),
			newTestAlert("low", time.Date(2024, 3, 3, 8, 0, 0, 0, time.Local)),
			newTestAlert("low", time.Date(2024, 3, 2, 8, 0, 0, 0, time.Local)),
		},
	}
	service := NewAlertService(store)

	alerts, err := service.GetAlerts(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	for i := 1; i < len(alerts); i++ {
		assert.LessOrEqual(t, alerts[i].Ts, alerts[i-1].Ts,
			"alerts must be sorted non-increasing by timestamp")
	}
}

func TestAlertService_GetAlerts_EmptyResultIsNotAnError(t *testing.T) {
	service := NewAlertService(&fakeAlertStore{})

	alerts, err := service.GetAlerts(AlertFilter{Severity: "high"})
	require.NoError(t, err)
	assert.NotNil(t, alerts)
	assert.Empty(t, alerts)
}

func TestAlertService_GetAlerts_StoreFailure(t *testing.T) {
	storeErr := errors.New("connection reset")
	service := NewAlertService(&fakeAlertStore{findErr: storeErr})

	_, err := service.GetAlerts(AlertFilter{})
	assert.ErrorIs(t, err, storeErr)
}

func TestAlertService_GetAlerts_TimestampFormat(t *testing.T) {
	store := &fakeAlertStore{
		alerts: []*models.Alert{
			newTestAlert("high", time.Date(2024, 3, 5, 9, 7, 42, 0, time.Local)),
		},
	}
	service := NewAlertService(store)

	alerts, err := service.GetAlerts(AlertFilter{})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "2024-03-05 09:07", alerts[0].Ts)
}

func TestEndOfDay_DSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2024-03-10 is a 23-hour day and 2024-11-03 a 25-hour day there.
	// The bound must read 23:59:59.999 on the wall clock regardless.
	for _, day := range []time.Time{
		time.Date(2024, 3, 10, 0, 0, 0, 0, loc),
		time.Date(2024, 11, 3, 0, 0, 0, 0, loc),
		time.Date(2024, 6, 15, 0, 0, 0, 0, loc),
	} {
		bound := endOfDay(day)
		assert.Equal(t, day.Day(), bound.Day())
		assert.Equal(t, 23, bound.Hour())
		assert.Equal(t, 59, bound.Minute())
		assert.Equal(t, 59, bound.Second())
		assert.Equal(t, int(999*time.Millisecond), bound.Nanosecond())
	}
}

func TestAlertService_GetAlertByID(t *testing.T) {
	alert := newTestAlert("high", time.Date(2024, 3, 5, 9, 7, 0, 0, time.Local))
	service := NewAlertService(&fakeAlertStore{alerts: []*models.Alert{alert}})

	view, err := service.GetAlertByID(alert.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, alert.ID.Hex(), view.ID)
	assert.Equal(t, "2024-03-05 09:07", view.Ts)

	_, err = service.GetAlertByID(primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAlertService_CreateAlert_Defaults(t *testing.T) {
	store := &fakeAlertStore{}
	service := NewAlertService(store)

	alert, err := service.CreateAlert(&CreateAlertRequest{
		Type:        "GPS Signal Lost",
		Severity:    "medium",
		Tanker:      "TN-09-0007",
		Description: "no fix for 10 minutes",
	})
	require.NoError(t, err)

	assert.Equal(t, "active", alert.Status)
	assert.False(t, alert.Ts.IsZero())
	assert.False(t, alert.ID.IsZero())
}
