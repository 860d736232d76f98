package handlers

import (
	"errors"

	"staffclock/internal/core/domain"
	"staffclock/internal/core/services"
	"staffclock/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PayrollHandler handles payroll endpoints (admin)
type PayrollHandler struct {
	payrollService *services.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *services.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// GenerateRequest represents payroll generation request body
type GenerateRequest struct {
	Month string `json:"month"`
}

// List lists payroll records for a month
// @Summary List payroll records
// @Description List payroll records for a month (admin only)
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param month query string true "Month (YYYY-MM)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payroll [get]
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return response.BadRequest(c, "Month query parameter is required")
	}

	records, err := h.payrollService.Records(c.Context(), month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			return response.BadRequest(c, "Invalid month format, expected YYYY-MM")
		}
		return response.InternalServerError(c, "Failed to get payroll records")
	}

	return response.Success(c, "Payroll records retrieved", fiber.Map{
		"month":   month,
		"records": records,
	})
}

// Generate generates payroll for a month
// @Summary Generate payroll
// @Description Generate payroll records for all employees for a month, replacing any previous run (admin only)
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateRequest true "Month to generate"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /payroll/generate [post]
func (h *PayrollHandler) Generate(c *fiber.Ctx) error {
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Month == "" {
		return response.BadRequest(c, "Month is required")
	}

	records, err := h.payrollService.Generate(c.Context(), req.Month)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMonth) {
			return response.BadRequest(c, "Invalid month format, expected YYYY-MM")
		}
		return response.InternalServerError(c, "Failed to generate payroll")
	}

	return response.Created(c, "Payroll generated successfully", fiber.Map{
		"month":   req.Month,
		"records": records,
	})
}

// MarkPaid marks a payroll record as paid
// @Summary Mark payroll record as paid
// @Description Transition a payroll record from generated to paid (admin only)
// @Tags Payroll
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payroll record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payroll/{id}/paid [post]
func (h *PayrollHandler) MarkPaid(c *fiber.Ctx) error {
	recordID := c.Params("id")
	if recordID == "" {
		return response.BadRequest(c, "Payroll record ID is required")
	}

	if err := h.payrollService.MarkAsPaid(c.Context(), recordID); err != nil {
		switch {
		case errors.Is(err, domain.ErrPayrollNotFound):
			return response.NotFound(c, "Payroll record not found")
		case errors.Is(err, domain.ErrAlreadyPaid):
			return response.Conflict(c, "Payroll record is already paid")
		default:
			return response.InternalServerError(c, "Failed to mark payroll record as paid")
		}
	}

	return response.Success(c, "Payroll record marked as paid", nil)
}
