package handlers

import (
	"net/http"

	"insurance-service/internal/models"
	"insurance-service/internal/repository"
	"insurance-service/internal/services"
	"insurance-service/utils"

	"github.com/gofiber/fiber/v3"
)

type ClaimHandler struct {
	claimService *services.ClaimService
}

func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

func (h *ClaimHandler) Register(router fiber.Router) {
	group := router.Group("/claims")
	group.Post("/", h.RegisterClaim)
	group.Get("/", h.GetClaims)
	group.Get("/:id", h.GetClaim)
	group.Post("/:id/submit", h.SubmitClaim)
	group.Post("/:id/review", h.StartClaimReview)
	group.Post("/:id/approve", h.ApproveClaim)
	group.Post("/:id/reject", h.RejectClaim)
	group.Post("/:id/close", h.CloseClaim)
	group.Post("/:id/payments", h.RecordClaimPayment)
	group.Get("/by-policy/:policy_id", h.GetClaimsByPolicy)
}

func (h *ClaimHandler) RegisterClaim(c fiber.Ctx) error {
	var req models.CreateClaimRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	claim, err := h.claimService.RegisterClaim(c.Context(), req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) GetClaims(c fiber.Ctx) error {
	var scopes []repository.Scope
	if status := c.Query("status"); status != "" {
		scopes = append(scopes, repository.WithStatus(status))
	}

	claims, err := h.claimService.GetAllClaims(c.Context(), scopes...)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"claims": claims,
		"count":  len(claims),
	}))
}

func (h *ClaimHandler) GetClaim(c fiber.Ctx) error {
	claimID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	claim, err := h.claimService.GetClaimByID(c.Context(), claimID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) GetClaimsByPolicy(c fiber.Ctx) error {
	policyID, err := parseIDParam(c, "policy_id")
	if err != nil {
		return respondError(c, err)
	}

	claims, err := h.claimService.GetClaimsByPolicyID(c.Context(), policyID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"claims": claims,
		"count":  len(claims),
	}))
}

func (h *ClaimHandler) SubmitClaim(c fiber.Ctx) error {
	claimID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	claim, err := h.claimService.SubmitClaim(c.Context(), claimID, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) StartClaimReview(c fiber.Ctx) error {
	claimID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	claim, err := h.claimService.StartClaimReview(c.Context(), claimID, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) ApproveClaim(c fiber.Ctx) error {
	claimID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.ApproveClaimRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	claim, err := h.claimService.ApproveClaim(c.Context(), claimID, req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) RejectClaim(c fiber.Ctx) error {
	claimID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.RejectClaimRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	claim, err := h.claimService.RejectClaim(c.Context(), claimID, req.Reason, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(claim))
}

func (h *ClaimHandler) CloseClaim(c fiber.Ctx) error {
	claimID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	claim, err := h.claimService.CloseClaim(c.Context(), claimID, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(claim))
}

// RecordClaimPayment disburses a settlement amount against an approved claim
// and advances the claim to paid once fully settled.
func (h *ClaimHandler) RecordClaimPayment(c fiber.Ctx) error {
	claimID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.RecordClaimPaymentRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	result, err := h.claimService.RecordClaimPayment(c.Context(), claimID, req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(result))
}
