package handlers

import (
	"net/http"
	"time"

	"insurance-service/internal/models"
	"insurance-service/internal/services"
	"insurance-service/utils"

	"github.com/gofiber/fiber/v3"
)

type CommissionHandler struct {
	commissionService *services.CommissionService
}

func NewCommissionHandler(commissionService *services.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

func (h *CommissionHandler) Register(router fiber.Router) {
	group := router.Group("/commissions")
	group.Post("/", h.CreateCommission)
	group.Get("/due", h.GetDueCommissions)
	group.Get("/:id", h.GetCommission)
	group.Post("/:id/approve", h.ApproveCommission)
	group.Post("/:id/pay", h.MarkCommissionPaid)
	group.Get("/by-intermediary/:intermediary_id", h.GetCommissionsByIntermediary)
}

func (h *CommissionHandler) CreateCommission(c fiber.Ctx) error {
	var req models.CreateCommissionRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	commission, err := h.commissionService.CreateCommission(c.Context(), req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(commission))
}

func (h *CommissionHandler) GetCommission(c fiber.Ctx) error {
	commissionID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	commission, err := h.commissionService.GetCommissionByID(c.Context(), commissionID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(commission))
}

func (h *CommissionHandler) GetCommissionsByIntermediary(c fiber.Ctx) error {
	intermediaryID := c.Params("intermediary_id")
	if intermediaryID == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateFieldErrorResponse("VALIDATION_ERROR", "intermediary_id", "intermediary_id is required"))
	}

	commissions, err := h.commissionService.GetCommissionsByIntermediaryID(c.Context(), intermediaryID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"commissions": commissions,
		"count":       len(commissions),
	}))
}

func (h *CommissionHandler) GetDueCommissions(c fiber.Ctx) error {
	commissions, err := h.commissionService.GetDueCommissions(c.Context(), time.Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"commissions": commissions,
		"count":       len(commissions),
	}))
}

func (h *CommissionHandler) ApproveCommission(c fiber.Ctx) error {
	commissionID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	commission, err := h.commissionService.ApproveCommission(c.Context(), commissionID, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(commission))
}

func (h *CommissionHandler) MarkCommissionPaid(c fiber.Ctx) error {
	commissionID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.MarkCommissionPaidRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	commission, err := h.commissionService.MarkCommissionPaid(c.Context(), commissionID, req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(commission))
}
