package handlers

import (
	"net/http"

	"insurance-service/internal/models"
	"insurance-service/internal/services"
	"insurance-service/utils"

	"github.com/gofiber/fiber/v3"
)

type PolicyHandler struct {
	policyService *services.PolicyService
}

func NewPolicyHandler(policyService *services.PolicyService) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

func (h *PolicyHandler) Register(router fiber.Router) {
	group := router.Group("/policies")
	group.Get("/:id", h.GetPolicy)
	group.Get("/:id/balance", h.GetBalance)
	group.Post("/:id/cancel", h.CancelPolicy)
	group.Put("/:id/installments", h.UpdateInstallments)
	group.Put("/:id/premium", h.AdjustPremium)
	group.Get("/by-client/:client_id", h.GetPoliciesByClient)
}

func (h *PolicyHandler) GetPolicy(c fiber.Ctx) error {
	policyID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	policy, err := h.policyService.GetPolicyByID(c.Context(), policyID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(policy))
}

func (h *PolicyHandler) GetPoliciesByClient(c fiber.Ctx) error {
	clientID, err := parseIDParam(c, "client_id")
	if err != nil {
		return respondError(c, err)
	}

	policies, err := h.policyService.GetPoliciesByClientID(c.Context(), clientID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"policies": policies,
		"count":    len(policies),
	}))
}

// GetBalance reports the effective premium, completed payments and the
// outstanding balance for a policy.
func (h *PolicyHandler) GetBalance(c fiber.Ctx) error {
	policyID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	balance, err := h.policyService.GetBalance(c.Context(), policyID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(balance))
}

func (h *PolicyHandler) CancelPolicy(c fiber.Ctx) error {
	policyID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.CancelPolicyRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	policy, err := h.policyService.CancelPolicy(c.Context(), policyID, req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(policy))
}

func (h *PolicyHandler) UpdateInstallments(c fiber.Ctx) error {
	policyID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateInstallmentsRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	policy, err := h.policyService.UpdateInstallments(c.Context(), policyID, req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(policy))
}

func (h *PolicyHandler) AdjustPremium(c fiber.Ctx) error {
	policyID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.AdjustPremiumRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	policy, err := h.policyService.AdjustPremium(c.Context(), policyID, req.AdjustedPremium, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(policy))
}
