package handlers

import (
	"errors"
	"strconv"

	"maintdesk/internal/adapters/persistence/repositories"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/core/lifecycle"
	"maintdesk/internal/core/services"
	"maintdesk/internal/pkg/pagination"
	"maintdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// IssueHandler handles issue endpoints
type IssueHandler struct {
	issueService *services.IssueService
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(issueService *services.IssueService) *IssueHandler {
	return &IssueHandler{
		issueService: issueService,
	}
}

// CreateIssue handles issue creation
// @Summary Report an issue
// @Description File a new machine issue report
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateIssueInput true "Issue data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/v1/issues [post]
func (h *IssueHandler) CreateIssue(c *fiber.Ctx) error {
	var input services.CreateIssueInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if input.MachineID == 0 {
		return response.BadRequest(c, "Machine ID is required")
	}

	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	issue, err := h.issueService.Create(c.Context(), &input, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMachineNotFound):
			return response.BadRequest(c, "Machine not found")
		default:
			return response.InternalServerError(c, "Failed to create issue")
		}
	}

	return response.Created(c, "Issue reported successfully", issue)
}

// GetIssue handles getting a single issue
// @Summary Get issue
// @Description Get an issue by ID
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/issues/{id} [get]
func (h *IssueHandler) GetIssue(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid issue ID")
	}

	issue, err := h.issueService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			return response.NotFound(c, "Issue not found")
		}
		return response.InternalServerError(c, "Failed to get issue")
	}

	return response.Success(c, "Issue retrieved successfully", issue)
}

// ListIssues handles listing issues
// @Summary List issues
// @Description Get a paginated list of issues, optionally filtered by status, machine or reporter
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param machine_id query int false "Filter by machine"
// @Param mine query bool false "Only issues reported by the current user"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /api/v1/issues [get]
func (h *IssueHandler) ListIssues(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.IssueFilter{
		Status: domain.Status(c.Query("status")),
	}
	if machineID, err := strconv.ParseUint(c.Query("machine_id"), 10, 32); err == nil {
		filter.MachineID = uint(machineID)
	}
	if c.QueryBool("mine") {
		if userID, ok := c.Locals("userID").(uint); ok {
			filter.CreatedBy = userID
		}
	}

	issues, total, err := h.issueService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list issues")
	}

	return response.Success(c, "Issues retrieved successfully", pagination.NewResponse(issues, params, total))
}

// TransitionRequest represents a status change request body
type TransitionRequest struct {
	Status string `json:"status"`
}

// TransitionIssue handles issue status changes
// @Summary Change issue status
// @Description Move an issue to a new lifecycle status
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Param body body TransitionRequest true "Target status"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/issues/{id}/status [patch]
func (h *IssueHandler) TransitionIssue(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid issue ID")
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

	issue, err := h.issueService.Transition(c.Context(), uint(id), domain.Status(req.Status), role)
	if err != nil {
		return workflowError(c, err, "issue")
	}

	return response.Success(c, "Issue status updated", issue)
}

// ReopenIssue handles reopening a resolved issue
// @Summary Reopen issue
// @Description Move a resolved issue back to open (Manager/Admin only)
// @Tags Issues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Issue ID"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /api/v1/issues/{id}/reopen [post]
func (h *IssueHandler) ReopenIssue(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid issue ID")
	}

	role, ok := c.Locals("role").(domain.Role)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	issue, err := h.issueService.Reopen(c.Context(), uint(id), role)
	if err != nil {
		return workflowError(c, err, "issue")
	}

	return response.Success(c, "Issue reopened", issue)
}

// workflowError maps lifecycle and concurrency errors to HTTP responses.
// Shared by the issue, work order and part request handlers.
func workflowError(c *fiber.Ctx, err error, entity string) error {
	switch {
	case errors.Is(err, services.ErrIssueNotFound),
		errors.Is(err, services.ErrWorkOrderNotFound),
		errors.Is(err, services.ErrPartRequestNotFound):
		return response.NotFound(c, "Not found")
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return response.UnprocessableEntity(c, "Status change not allowed from the current state")
	case errors.Is(err, lifecycle.ErrBlockedByDependent):
		return response.UnprocessableEntity(c, "Open part requests must be settled first")
	case errors.Is(err, domain.ErrStaleEntity):
		return response.Conflict(c, "The "+entity+" changed while you were working, please retry")
	case errors.Is(err, services.ErrNotAssignee):
		return response.Forbidden(c, "Work order is assigned to another technician")
	case errors.Is(err, services.ErrNotRequester):
		return response.Forbidden(c, "Only the requesting technician may do this")
	default:
		return response.InternalServerError(c, "Failed to update "+entity)
	}
}
