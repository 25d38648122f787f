package services

import (
	"fmt"
	"time"

	"iwfm-backend/internal/models"
)

// UserStore is the persistence surface for admin-panel operators.
type UserStore interface {
	Create(user *models.User) (*models.User, error)
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindAll() ([]*models.User, error)
	Delete(id string) error
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{
		users: users,
	}
}

type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Role  string `json:"role" validate:"required,oneof=Admin Driver"`
	Email string `json:"email" validate:"required,email"`
}

func (s *UserService) GetAllUsers() ([]*models.User, error) {
	return s.users.FindAll()
}

func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.users.FindByID(id)
}

// CreateUser registers an operator. Email is unique; the unique index
// backs the pre-check atomically.
func (s *UserService) CreateUser(req *CreateUserRequest) (*models.User, error) {
	if existing, _ := s.users.FindByEmail(req.Email); existing != nil {
		return nil, fmt.Errorf("email %q: %w", req.Email, models.ErrConflict)
	}

	now := time.Now()
	user := &models.User{
		Name:      req.Name,
		Role:      req.Role,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.users.Create(user)
}

func (s *UserService) DeleteUser(id string) error {
	return s.users.Delete(id)
}
