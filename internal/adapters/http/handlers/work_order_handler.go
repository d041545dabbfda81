package handlers

import (
	"errors"
	"strconv"

	"maintdesk/internal/adapters/persistence/repositories"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/core/services"
	"maintdesk/internal/pkg/pagination"
	"maintdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WorkOrderHandler handles work order endpoints
type WorkOrderHandler struct {
	workOrderService *services.WorkOrderService
}

// NewWorkOrderHandler creates a new work order handler
func NewWorkOrderHandler(workOrderService *services.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{
		workOrderService: workOrderService,
	}
}

// CreateWorkOrder handles work order creation from an issue
// @Summary Create work order
// @Description Promote an issue into a work order and assign a technician (Manager/Admin only)
// @Tags WorkOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateWorkOrderInput true "Work order data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/work-orders [post]
func (h *WorkOrderHandler) CreateWorkOrder(c *fiber.Ctx) error {
	var input services.CreateWorkOrderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.IssueID == 0 {
		return response.BadRequest(c, "Issue ID is required")
	}
	if input.TechnicianID == 0 {
		return response.BadRequest(c, "Technician ID is required")
	}

	workOrder, err := h.workOrderService.CreateFromIssue(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIssueNotFound):
			return response.BadRequest(c, "Issue not found")
		case errors.Is(err, services.ErrIssueNotResolved):
			return response.UnprocessableEntity(c, "Issue must be resolved before promotion")
		case errors.Is(err, services.ErrIssuePromoted):
			return response.Conflict(c, "Issue already has a work order")
		case errors.Is(err, services.ErrTechnicianNotFound):
			return response.BadRequest(c, "Assigned technician not found")
		case errors.Is(err, services.ErrNotATechnician):
			return response.BadRequest(c, "Assignee must have the technician role")
		case errors.Is(err, services.ErrInvalidPriority):
			return response.BadRequest(c, "Invalid priority")
		default:
			return response.InternalServerError(c, "Failed to create work order")
		}
	}

	return response.Created(c, "Work order created successfully", workOrder)
}

// GetWorkOrder handles getting a single work order
// @Summary Get work order
// @Description Get a work order by ID
// @Tags WorkOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Work order ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/work-orders/{id} [get]
func (h *WorkOrderHandler) GetWorkOrder(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid work order ID")
	}

	workOrder, err := h.workOrderService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrWorkOrderNotFound) {
			return response.NotFound(c, "Work order not found")
		}
		return response.InternalServerError(c, "Failed to get work order")
	}

	return response.Success(c, "Work order retrieved successfully", workOrder)
}

// ListWorkOrders handles listing work orders
// @Summary List work orders
// @Description Get a paginated list of work orders, optionally filtered by status or assignee
// @Tags WorkOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param mine query bool false "Only work orders assigned to the current technician"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /api/v1/work-orders [get]
func (h *WorkOrderHandler) ListWorkOrders(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.WorkOrderFilter{
		Status: domain.Status(c.Query("status")),
	}
	if c.QueryBool("mine") {
		if userID, ok := c.Locals("userID").(uint); ok {
			filter.Technician = userID
		}
	}

	workOrders, total, err := h.workOrderService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list work orders")
	}

	return response.Success(c, "Work orders retrieved successfully", pagination.NewResponse(workOrders, params, total))
}

// TransitionWorkOrder handles work order status changes
// @Summary Change work order status
// @Description Move a work order to a new lifecycle status (assigned technician only)
// @Tags WorkOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Work order ID"
// @Param body body TransitionRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/work-orders/{id}/status [patch]
func (h *WorkOrderHandler) TransitionWorkOrder(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid work order ID")
	}

	var req TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	role, ok := c.Locals("role").(domain.Role)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	workOrder, err := h.workOrderService.Transition(c.Context(), uint(id), domain.Status(req.Status), role, userID)
	if err != nil {
		return workflowError(c, err, "work order")
	}

	return response.Success(c, "Work order status updated", workOrder)
}

// ListOverdueWorkOrders handles listing overdue work orders
// @Summary List overdue work orders
// @Description Get unresolved work orders past their scheduled date (Manager/Admin only)
// @Tags WorkOrders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/work-orders/overdue [get]
func (h *WorkOrderHandler) ListOverdueWorkOrders(c *fiber.Ctx) error {
	workOrders, err := h.workOrderService.ListOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list overdue work orders")
	}

	return response.Success(c, "Overdue work orders retrieved successfully", workOrders)
}
