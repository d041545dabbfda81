package handlers

import (
	"errors"
	"strconv"

	"maintdesk/internal/core/services"
	"maintdesk/internal/pkg/pagination"
	"maintdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AssetHandler handles master data endpoints: machines, parts and
// certificates.
type AssetHandler struct {
	assetService *services.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// ============================================================
// Machines
// ============================================================

// CreateMachine handles machine registration
// @Summary Register machine
// @Description Register a new machine (Admin/Manager only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateMachineInput true "Machine data"
// @Success 201 {object} response.Response
// @Router /api/v1/machines [post]
func (h *AssetHandler) CreateMachine(c *fiber.Ctx) error {
	var input services.CreateMachineInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" || input.SerialNo == "" {
		return response.BadRequest(c, "Name and serial number are required")
	}

	machine, err := h.assetService.CreateMachine(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to register machine")
	}

	return response.Created(c, "Machine registered successfully", machine)
}

// ListMachines handles listing machines
// @Summary List machines
// @Description Get a paginated list of machines
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /api/v1/machines [get]
func (h *AssetHandler) ListMachines(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	machines, total, err := h.assetService.ListMachines(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list machines")
	}

	return response.Success(c, "Machines retrieved successfully", pagination.NewResponse(machines, params, total))
}

// GetMachine handles getting a single machine
// @Summary Get machine
// @Description Get a machine by ID
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Machine ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/machines/{id} [get]
func (h *AssetHandler) GetMachine(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid machine ID")
	}

	machine, err := h.assetService.GetMachine(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Machine not found")
		}
		return response.InternalServerError(c, "Failed to get machine")
	}

	return response.Success(c, "Machine retrieved successfully", machine)
}

// UpdateMachine handles machine updates
// @Summary Update machine
// @Description Update machine fields (Admin/Manager only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Machine ID"
// @Param body body services.UpdateMachineInput true "Machine data"
// @Success 200 {object} response.Response
// @Router /api/v1/machines/{id} [patch]
func (h *AssetHandler) UpdateMachine(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid machine ID")
	}

	var input services.UpdateMachineInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	machine, err := h.assetService.UpdateMachine(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Machine not found")
		}
		return response.InternalServerError(c, "Failed to update machine")
	}

	return response.Success(c, "Machine updated successfully", machine)
}

// DeleteMachine handles machine deletion
// @Summary Delete machine
// @Description Soft-delete a machine (Admin only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Machine ID"
// @Success 200 {object} response.Response
// @Router /api/v1/machines/{id} [delete]
func (h *AssetHandler) DeleteMachine(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid machine ID")
	}

	if err := h.assetService.DeleteMachine(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Machine not found")
		}
		return response.InternalServerError(c, "Failed to delete machine")
	}

	return response.Success(c, "Machine deleted successfully", nil)
}

// ============================================================
// Parts
// ============================================================

// CreatePart handles part registration
// @Summary Register part
// @Description Register a new spare part (Logistics/Admin only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePartInput true "Part data"
// @Success 201 {object} response.Response
// @Router /api/v1/parts [post]
func (h *AssetHandler) CreatePart(c *fiber.Ctx) error {
	var input services.CreatePartInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Name == "" || input.PartNo == "" {
		return response.BadRequest(c, "Name and part number are required")
	}

	part, err := h.assetService.CreatePart(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidQuantity) {
			return response.BadRequest(c, "Stock quantity cannot be negative")
		}
		return response.InternalServerError(c, "Failed to register part")
	}

	return response.Created(c, "Part registered successfully", part)
}

// ListParts handles listing parts
// @Summary List parts
// @Description Get a paginated list of spare parts
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /api/v1/parts [get]
func (h *AssetHandler) ListParts(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	parts, total, err := h.assetService.ListParts(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list parts")
	}

	return response.Success(c, "Parts retrieved successfully", pagination.NewResponse(parts, params, total))
}

// RestockRequest represents a restock request body
type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// RestockPart handles stock increases
// @Summary Restock part
// @Description Add stock to a part (Logistics/Admin only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Part ID"
// @Param body body RestockRequest true "Quantity to add"
// @Success 200 {object} response.Response
// @Router /api/v1/parts/{id}/restock [post]
func (h *AssetHandler) RestockPart(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid part ID")
	}

	var req RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	part, err := h.assetService.RestockPart(c.Context(), uint(id), req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			return response.BadRequest(c, "Quantity must be positive")
		case errors.Is(err, services.ErrAssetNotFound):
			return response.NotFound(c, "Part not found")
		default:
			return response.InternalServerError(c, "Failed to restock part")
		}
	}

	return response.Success(c, "Part restocked successfully", part)
}

// DeletePart handles part deletion
// @Summary Delete part
// @Description Soft-delete a spare part (Admin only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Part ID"
// @Success 200 {object} response.Response
// @Router /api/v1/parts/{id} [delete]
func (h *AssetHandler) DeletePart(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid part ID")
	}

	if err := h.assetService.DeletePart(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Part not found")
		}
		return response.InternalServerError(c, "Failed to delete part")
	}

	return response.Success(c, "Part deleted successfully", nil)
}

// ============================================================
// Certificates
// ============================================================

// CreateCertificate handles certificate registration
// @Summary Record certificate
// @Description Record a technician qualification (Admin/Manager only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCertificateInput true "Certificate data"
// @Success 201 {object} response.Response
// @Router /api/v1/certificates [post]
func (h *AssetHandler) CreateCertificate(c *fiber.Ctx) error {
	var input services.CreateCertificateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.UserID == 0 || input.Name == "" {
		return response.BadRequest(c, "User ID and name are required")
	}
	if input.ExpiresAt.IsZero() {
		return response.BadRequest(c, "Expiry date is required")
	}

	cert, err := h.assetService.CreateCertificate(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to record certificate")
	}

	return response.Created(c, "Certificate recorded successfully", cert)
}

// ListMyCertificates handles listing the current user's certificates
// @Summary List own certificates
// @Description Get the current user's certificates
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/certificates/me [get]
func (h *AssetHandler) ListMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	certs, err := h.assetService.ListCertificatesByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list certificates")
	}

	return response.Success(c, "Certificates retrieved successfully", certs)
}

// ListUserCertificates handles listing a user's certificates
// @Summary List user certificates
// @Description Get a user's certificates (Admin/Manager only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response
// @Router /api/v1/users/{id}/certificates [get]
func (h *AssetHandler) ListUserCertificates(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	certs, err := h.assetService.ListCertificatesByUser(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to list certificates")
	}

	return response.Success(c, "Certificates retrieved successfully", certs)
}

// DeleteCertificate handles certificate deletion
// @Summary Delete certificate
// @Description Remove a certificate record (Admin only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Certificate ID"
// @Success 200 {object} response.Response
// @Router /api/v1/certificates/{id} [delete]
func (h *AssetHandler) DeleteCertificate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid certificate ID")
	}

	if err := h.assetService.DeleteCertificate(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Certificate not found")
		}
		return response.InternalServerError(c, "Failed to delete certificate")
	}

	return response.Success(c, "Certificate deleted successfully", nil)
}
