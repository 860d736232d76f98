package services

import (
	"context"
	"errors"

	"staffclock/internal/adapters/persistence/models"
	"staffclock/internal/adapters/persistence/repositories"
	"staffclock/internal/pkg/password"

	"gorm.io/gorm"
)

// Employee service errors
var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidHourlyRate  = errors.New("hourly rate must not be negative")
)

// EmployeeService handles employee management business logic (admin)
type EmployeeService struct {
	userRepo repositories.UserRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(userRepo repositories.UserRepository) *EmployeeService {
	return &EmployeeService{userRepo: userRepo}
}

// CreateEmployeeInput represents create employee input
type CreateEmployeeInput struct {
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	HourlyRate float64 `json:"hourly_rate"`
}

// UpdateEmployeeInput represents update employee input
type UpdateEmployeeInput struct {
	FullName   *string  `json:"full_name"`
	Email      *string  `json:"email"`
	HourlyRate *float64 `json:"hourly_rate"`
	IsActive   *bool    `json:"is_active"`
}

// ListEmployeesInput represents list employees input
type ListEmployeesInput struct {
	Page  int
	Limit int
}

// ListEmployeesOutput represents list employees output
type ListEmployeesOutput struct {
	Employees  []*models.UserResponse `json:"employees"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// Create creates a new employee account
func (s *EmployeeService) Create(ctx context.Context, input *CreateEmployeeInput) (*models.UserResponse, error) {
	if input.HourlyRate < 0 {
		return nil, ErrInvalidHourlyRate
	}

	// Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	employee := &models.User{
		FullName:   input.FullName,
		Email:      input.Email,
		Password:   hashedPassword,
		Role:       models.RoleEmployee,
		HourlyRate: input.HourlyRate,
		IsActive:   true,
	}

	if err := s.userRepo.Create(ctx, employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return employee.ToResponse(), nil
}

// List lists all employees with pagination
func (s *EmployeeService) List(ctx context.Context, input *ListEmployeesInput) (*ListEmployeesOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	offset := (input.Page - 1) * input.Limit

	employees, total, err := s.userRepo.ListByRole(ctx, models.RoleEmployee, offset, input.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(employees))
	for i, employee := range employees {
		responses[i] = employee.ToResponse()
	}

	totalPages := int(total) / input.Limit
	if int(total)%input.Limit > 0 {
		totalPages++
	}

	return &ListEmployeesOutput{
		Employees:  responses,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetByID gets an employee by ID
func (s *EmployeeService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	employee, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return employee.ToResponse(), nil
}

// Update updates an employee
func (s *EmployeeService) Update(ctx context.Context, id uint, input *UpdateEmployeeInput) (*models.UserResponse, error) {
	employee, err := s.getEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		employee.FullName = *input.FullName
	}

	if input.Email != nil && *input.Email != employee.Email {
		exists, _ := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		employee.Email = *input.Email
	}

	if input.HourlyRate != nil {
		if *input.HourlyRate < 0 {
			return nil, ErrInvalidHourlyRate
		}
		employee.HourlyRate = *input.HourlyRate
	}

	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, employee); err != nil {
		return nil, err
	}

	return employee.ToResponse(), nil
}

// Delete deletes an employee (soft delete). Attendance logs are kept;
// retention is not this service's concern.
func (s *EmployeeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.getEmployee(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// getEmployee fetches a user and verifies the employee role
func (s *EmployeeService) getEmployee(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if user.Role != models.RoleEmployee {
		return nil, ErrEmployeeNotFound
	}
	return user, nil
}
