package services

import (
	"fmt"
	"time"

	"iwfm-backend/internal/models"
)

// lastSeenLayout is the display format the admin panel shows in the
// tanker table.
const lastSeenLayout = "02 Jan 2006, 03:04 PM"

// TankerStore is the persistence surface for tankers, shared by the CRUD
// service and the dashboard aggregator.
type TankerStore interface {
	Create(tanker *models.Tanker) (*models.Tanker, error)
	FindByID(id string) (*models.Tanker, error)
	FindByVehicleNo(vehicleNo string) (*models.Tanker, error)
	FindAll() ([]*models.Tanker, error)
	Delete(id string) error
}

type TankerService struct {
	tankers TankerStore
}

func NewTankerService(tankers TankerStore) *TankerService {
	return &TankerService{
		tankers: tankers,
	}
}

type CreateTankerRequest struct {
	Driver        string           `json:"driver" validate:"required"`
	VehicleType   string           `json:"vehicleType" validate:"required"`
	VehicleNo     string           `json:"vehicleNo" validate:"required"`
	Capacity      float64          `json:"capacity" validate:"required,gt=0"`
	TotalQuantity float64          `json:"totalQuantity" validate:"omitempty,gte=0"`
	Status        string           `json:"status" validate:"omitempty,oneof=online offline"`
	Location      *models.Location `json:"location,omitempty"`
	Maintenance   bool             `json:"maintenance"`
}

// TankerView is a tanker with lastSeen rendered for display.
type TankerView struct {
	*models.Tanker
	LastSeen string `json:"lastSeen"`
}

func (s *TankerService) GetAllTankers() ([]TankerView, error) {
	tankers, err := s.tankers.FindAll()
	if err != nil {
		return nil, err
	}

	views := make([]TankerView, 0, len(tankers))
	for _, tanker := range tankers {
		views = append(views, TankerView{
			Tanker:   tanker,
			LastSeen: tanker.LastSeen.Local().Format(lastSeenLayout),
		})
	}

	return views, nil
}

func (s *TankerService) GetTankerByID(id string) (*TankerView, error) {
	tanker, err := s.tankers.FindByID(id)
	if err != nil {
		return nil, err
	}

	return &TankerView{
		Tanker:   tanker,
		LastSeen: tanker.LastSeen.Local().Format(lastSeenLayout),
	}, nil
}

// CreateTanker registers a tanker. The vehicle number must be unique
// across the fleet; the unique index backs the pre-check atomically.
func (s *TankerService) CreateTanker(req *CreateTankerRequest) (*models.Tanker, error) {
	if existing, _ := s.tankers.FindByVehicleNo(req.VehicleNo); existing != nil {
		return nil, fmt.Errorf("vehicle number %q: %w", req.VehicleNo, models.ErrConflict)
	}

	status := req.Status
	if status == "" {
		status = "offline"
	}

	location := models.Location{}
	if req.Location != nil {
		location = *req.Location
	}

	now := time.Now()
	tanker := &models.Tanker{
		Driver:        req.Driver,
		VehicleType:   req.VehicleType,
		VehicleNo:     req.VehicleNo,
		Capacity:      req.Capacity,
		TotalQuantity: req.TotalQuantity,
		Status:        status,
		LastSeen:      now,
		Location:      location,
		Maintenance:   req.Maintenance,
		Deliveries:    []models.Delivery{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return s.tankers.Create(tanker)
}

func (s *TankerService) DeleteTanker(id string) error {
	return s.tankers.Delete(id)
}
