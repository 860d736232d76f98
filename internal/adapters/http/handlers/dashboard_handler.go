package handlers

import (
	"staffclock/internal/core/services"
	"staffclock/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin returns company-wide attendance statistics
// @Summary Admin dashboard
// @Description Get company-wide attendance statistics (admin only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get dashboard data")
	}

	return response.Success(c, "Dashboard data retrieved", data)
}

// Me returns the current user's attendance summary
// @Summary Employee dashboard
// @Description Get the current user's attendance summary
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard/me [get]
func (h *DashboardHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetEmployeeDashboard(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get dashboard data")
	}

	return response.Success(c, "Dashboard data retrieved", data)
}
