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

// PartRequestHandler handles part request endpoints
type PartRequestHandler struct {
	partRequestService *services.PartRequestService
}

// NewPartRequestHandler creates a new part request handler
func NewPartRequestHandler(partRequestService *services.PartRequestService) *PartRequestHandler {
	return &PartRequestHandler{
		partRequestService: partRequestService,
	}
}

// CreatePartRequest handles part request creation
// @Summary File a part request
// @Description Request spare parts for a work order (Technician only)
// @Tags PartRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePartRequestInput true "Part request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/part-requests [post]
func (h *PartRequestHandler) CreatePartRequest(c *fiber.Ctx) error {
	var input services.CreatePartRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.WorkOrderID == 0 {
		return response.BadRequest(c, "Work order ID is required")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	request, err := h.partRequestService.Create(c.Context(), &input, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWorkOrderNotFound):
			return response.BadRequest(c, "Work order not found")
		case errors.Is(err, services.ErrEmptyRequest):
			return response.BadRequest(c, "Part request needs at least one item")
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Item quantity must be positive")
		case errors.Is(err, services.ErrPartNotFound):
			return response.BadRequest(c, "Part not found")
		default:
			return response.InternalServerError(c, "Failed to create part request")
		}
	}

	return response.Created(c, "Part request filed successfully", request)
}

// GetPartRequest handles getting a single part request
// @Summary Get part request
// @Description Get a part request by ID
// @Tags PartRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Part request ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/part-requests/{id} [get]
func (h *PartRequestHandler) GetPartRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Invalid part request ID")
	}

	request, err := h.partRequestService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrPartRequestNotFound) {
			return response.NotFound(c, "Part request not found")
		}
		return response.InternalServerError(c, "Failed to get part request")
	}

	return response.Success(c, "Part request retrieved successfully", request)
}

// ListPartRequests handles listing part requests
// @Summary List part requests
// @Description List part requests by work order or by status
// @Tags PartRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param work_order_id query int false "Filter by work order"
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /api/v1/part-requests [get]
func (h *PartRequestHandler) ListPartRequests(c *fiber.Ctx) error {
	if workOrderID, err := strconv.ParseUint(c.Query("work_order_id"), 10, 32); err == nil {
		requests, err := h.partRequestService.ListByWorkOrder(c.Context(), uint(workOrderID))
		if err != nil {
			return response.InternalServerError(c, "Failed to list part requests")
		}
		return response.Success(c, "Part requests retrieved successfully", requests)
	}

	params := pagination.GetParams(c)
	status := domain.Status(c.Query("status", string(domain.StatusPending)))

	requests, total, err := h.partRequestService.ListByStatus(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list part requests")
	}

	return response.Success(c, "Part requests retrieved successfully", pagination.NewResponse(requests, params, total))
}

// TransitionPartRequest handles part request status changes
// @Summary Change part request status
// @Description Approve, reject or fulfill a part request (Logistics/Manager)
// @Tags PartRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Part request ID"
// @Param body body TransitionRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/part-requests/{id}/status [patch]
func (h *PartRequestHandler) TransitionPartRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Invalid part request ID")
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

	request, err := h.partRequestService.Transition(c.Context(), id, domain.Status(req.Status), role)
	if err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return response.UnprocessableEntity(c, "Not enough stock to fulfill this request")
		}
		return workflowError(c, err, "part request")
	}

	return response.Success(c, "Part request status updated", request)
}

// DeletePartRequest handles part request deletion
// @Summary Delete part request
// @Description Delete a pending part request (requesting technician or admin)
// @Tags PartRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Part request ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/part-requests/{id} [delete]
func (h *PartRequestHandler) DeletePartRequest(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "Invalid part request ID")
	}

	role, ok := c.Locals("role").(domain.Role)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.partRequestService.Delete(c.Context(), id, role, userID); err != nil {
		return workflowError(c, err, "part request")
	}

	return response.Success(c, "Part request deleted", nil)
}
