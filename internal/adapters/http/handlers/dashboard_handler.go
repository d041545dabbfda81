package handlers

import (
	"maintdesk/internal/core/services"
	"maintdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles per-role dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// AdminDashboard returns admin dashboard data
// @Summary Admin dashboard
// @Description System overview: user counts, workload by status (Admin only)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/dashboard/admin [get]
func (h *DashboardHandler) AdminDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard loaded", data)
}

// EmployeeDashboard returns employee dashboard data
// @Summary Employee dashboard
// @Description The employee's own reported issues and their statuses
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/dashboard/employee [get]
func (h *DashboardHandler) EmployeeDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetEmployeeDashboard(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard loaded", data)
}

// TechnicianDashboard returns technician dashboard data
// @Summary Technician dashboard
// @Description The technician's assigned work orders and open part requests
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/dashboard/technician [get]
func (h *DashboardHandler) TechnicianDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	data, err := h.dashboardService.GetTechnicianDashboard(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard loaded", data)
}

// ManagerDashboard returns manager dashboard data
// @Summary Manager dashboard
// @Description Workload overview and overdue work orders (Manager/Admin)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/dashboard/manager [get]
func (h *DashboardHandler) ManagerDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetManagerDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard loaded", data)
}

// LogisticsDashboard returns logistics dashboard data
// @Summary Logistics dashboard
// @Description Pending part requests and low stock parts (Logistics/Admin)
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/dashboard/logistics [get]
func (h *DashboardHandler) LogisticsDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetLogisticsDashboard(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}
	return response.Success(c, "Dashboard loaded", data)
}
