package handlers

import (
	"errors"
	"strconv"
	"strings"

	"staffclock/internal/core/services"
	"staffclock/internal/pkg/pagination"
	"staffclock/internal/pkg/password"
	"staffclock/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee management endpoints (admin)
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// CreateEmployeeRequest represents create employee request body
type CreateEmployeeRequest struct {
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	HourlyRate float64 `json:"hourly_rate"`
}

// UpdateEmployeeRequest represents update employee request body
type UpdateEmployeeRequest struct {
	FullName   *string  `json:"full_name"`
	Email      *string  `json:"email"`
	HourlyRate *float64 `json:"hourly_rate"`
	IsActive   *bool    `json:"is_active"`
}

// Create creates a new employee
// @Summary Create employee
// @Description Create a new employee account (admin only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEmployeeRequest true "Employee data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var req CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// Validate required fields
	if strings.TrimSpace(req.FullName) == "" {
		return response.BadRequest(c, "Full name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		return response.BadRequest(c, "Email is required")
	}
	if !password.Validate(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	employee, err := h.employeeService.Create(c.Context(), &services.CreateEmployeeInput{
		FullName:   strings.TrimSpace(req.FullName),
		Email:      strings.TrimSpace(strings.ToLower(req.Email)),
		Password:   req.Password,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already exists")
		case errors.Is(err, services.ErrInvalidHourlyRate):
			return response.BadRequest(c, "Hourly rate must not be negative")
		default:
			return response.InternalServerError(c, "Failed to create employee")
		}
	}

	return response.Created(c, "Employee created successfully", fiber.Map{
		"employee": employee,
	})
}

// List lists all employees
// @Summary List employees
// @Description List all employees with pagination (admin only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.employeeService.List(c.Context(), &services.ListEmployeesInput{
		Page:  params.Page,
		Limit: params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}

	return response.Success(c, "Employees retrieved successfully", result)
}

// GetByID gets an employee by ID
// @Summary Get employee
// @Description Get an employee by ID (admin only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to get employee")
	}

	return response.Success(c, "Employee retrieved successfully", fiber.Map{
		"employee": employee,
	})
}

// Update updates an employee
// @Summary Update employee
// @Description Update an employee's profile (admin only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var req UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Update(c.Context(), id, &services.UpdateEmployeeInput{
		FullName:   req.FullName,
		Email:      req.Email,
		HourlyRate: req.HourlyRate,
		IsActive:   req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrEmailAlreadyExists):
			return response.Conflict(c, "Email already exists")
		case errors.Is(err, services.ErrInvalidHourlyRate):
			return response.BadRequest(c, "Hourly rate must not be negative")
		default:
			return response.InternalServerError(c, "Failed to update employee")
		}
	}

	return response.Success(c, "Employee updated successfully", fiber.Map{
		"employee": employee,
	})
}

// Delete deletes an employee
// @Summary Delete employee
// @Description Soft-delete an employee account (admin only)
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := h.parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	if err := h.employeeService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to delete employee")
	}

	return response.Success(c, "Employee deleted successfully", nil)
}

func (h *EmployeeHandler) parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
