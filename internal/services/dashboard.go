package services

import (
	"time"

	"iwfm-backend/internal/models"
)

// FleetSummary holds the derived dashboard counters computed from the raw
// tanker collection on every read. Nothing here is persisted.
type FleetSummary struct {
	ActiveTankers       int               `json:"activeTankers"`
	InMaintenance       int               `json:"inMaintenance"`
	DeliveriesToday     int               `json:"deliveriesToday"`
	DeliveriesThisMonth int               `json:"deliveriesThisMonth"`
	WeeklyDeliveries    []DailyDeliveries `json:"weeklyDeliveries"`
}

// DailyDeliveries is one point of the trailing 7-day delivery series.
type DailyDeliveries struct {
	Day        string `json:"day"`
	Deliveries int    `json:"deliveries"`
}

type DashboardService struct {
	tankers TankerStore
}

func NewDashboardService(tankers TankerStore) *DashboardService {
	return &DashboardService{
		tankers: tankers,
	}
}

func (s *DashboardService) Summary() (FleetSummary, error) {
	tankers, err := s.tankers.FindAll()
	if err != nil {
		return FleetSummary{}, err
	}
	return Aggregate(tankers, time.Now()), nil
}

// Aggregate computes the dashboard counters for the calendar day of ref.
// It is a pure function of its inputs: same tankers and ref, same result.
func Aggregate(tankers []*models.Tanker, ref time.Time) FleetSummary {
	today := ref.Format(dateLayout)

	summary := FleetSummary{}
	for _, t := range tankers {
		if t.Status == "online" {
			summary.ActiveTankers++
		}
		if t.Maintenance {
			summary.InMaintenance++
		}
		for _, d := range t.Deliveries {
			if d.Date == today {
				summary.DeliveriesToday++
			}
			if day, err := time.Parse(dateLayout, d.Date); err == nil &&
				day.Year() == ref.Year() && day.Month() == ref.Month() {
				summary.DeliveriesThisMonth++
			}
		}
	}

	summary.WeeklyDeliveries = trailingWeek(tankers, ref)
	return summary
}

// trailingWeek counts deliveries for each of the 7 days ending at ref,
// oldest first, labeled with the weekday short name.
func trailingWeek(tankers []*models.Tanker, ref time.Time) []DailyDeliveries {
	series := make([]DailyDeliveries, 0, 7)
	for i := 6; i >= 0; i-- {
		day := ref.AddDate(0, 0, -i)
		date := day.Format(dateLayout)

		count := 0
		for _, t := range tankers {
			for _, d := range t.Deliveries {
				if d.Date == date {
					count++
				}
			}
		}

		series = append(series, DailyDeliveries{
			Day:        day.Format("Mon"),
			Deliveries: count,
		})
	}
	return series
}
