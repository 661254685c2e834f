package handlers

import (
	"net/http"

	"insurance-service/internal/models"
	"insurance-service/internal/services"
	"insurance-service/utils"

	"github.com/gofiber/fiber/v3"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) Register(router fiber.Router) {
	group := router.Group("/payments")
	group.Post("/", h.CreatePayment)
	group.Get("/:id", h.GetPayment)
	group.Post("/complete", h.MarkCompleted)
	group.Get("/by-client/:client_id", h.GetPaymentsByClient)
	group.Get("/by-policy/:policy_id", h.GetPaymentsByPolicy)
}

func (h *PaymentHandler) CreatePayment(c fiber.Ctx) error {
	var req models.CreatePaymentRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	payment, err := h.paymentService.CreatePayment(c.Context(), req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(payment))
}

func (h *PaymentHandler) GetPayment(c fiber.Ctx) error {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	payment, err := h.paymentService.GetPaymentByID(c.Context(), paymentID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(payment))
}

func (h *PaymentHandler) GetPaymentsByClient(c fiber.Ctx) error {
	clientID, err := parseIDParam(c, "client_id")
	if err != nil {
		return respondError(c, err)
	}

	payments, err := h.paymentService.GetPaymentsByClientID(c.Context(), clientID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"payments": payments,
		"count":    len(payments),
	}))
}

func (h *PaymentHandler) GetPaymentsByPolicy(c fiber.Ctx) error {
	policyID, err := parseIDParam(c, "policy_id")
	if err != nil {
		return respondError(c, err)
	}

	payments, err := h.paymentService.GetPaymentsByPolicyID(c.Context(), policyID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"payments": payments,
		"count":    len(payments),
	}))
}

// MarkCompleted confirms a pending payment by its transaction reference.
// Gateways retry callbacks, so completing an already completed payment is
// accepted and returns the stored row unchanged.
func (h *PaymentHandler) MarkCompleted(c fiber.Ctx) error {
	var req models.CompletePaymentRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}
	if req.TransactionRef == "" {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateFieldErrorResponse("VALIDATION_ERROR", "transaction_ref", "transaction_ref is required"))
	}

	payment, err := h.paymentService.MarkCompleted(c.Context(), req.TransactionRef, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(payment))
}
