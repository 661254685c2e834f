package handlers

import (
	"net/http"

	"insurance-service/internal/models"
	"insurance-service/internal/services"
	"insurance-service/utils"

	"github.com/gofiber/fiber/v3"
)

type QuoteHandler struct {
	quoteService *services.QuoteService
}

func NewQuoteHandler(quoteService *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

func (h *QuoteHandler) Register(router fiber.Router) {
	group := router.Group("/quotes")
	group.Post("/", h.CreateQuote)
	group.Get("/:id", h.GetQuote)
	group.Post("/:id/submit", h.SubmitQuote)
	group.Post("/:id/approve", h.ApproveQuote)
	group.Post("/:id/decline", h.DeclineQuote)
	group.Post("/:id/convert", h.ConvertQuote)
	group.Get("/by-client/:client_id", h.GetQuotesByClient)
}

func (h *QuoteHandler) CreateQuote(c fiber.Ctx) error {
	var req models.CreateQuoteRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	quote, err := h.quoteService.CreateQuote(c.Context(), req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(quote))
}

func (h *QuoteHandler) GetQuote(c fiber.Ctx) error {
	quoteID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	quote, err := h.quoteService.GetQuoteByID(c.Context(), quoteID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(quote))
}

func (h *QuoteHandler) GetQuotesByClient(c fiber.Ctx) error {
	clientID, err := parseIDParam(c, "client_id")
	if err != nil {
		return respondError(c, err)
	}

	quotes, err := h.quoteService.GetQuotesByClientID(c.Context(), clientID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"quotes": quotes,
		"count":  len(quotes),
	}))
}

func (h *QuoteHandler) SubmitQuote(c fiber.Ctx) error {
	quoteID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	quote, err := h.quoteService.SubmitQuote(c.Context(), quoteID, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(quote))
}

func (h *QuoteHandler) ApproveQuote(c fiber.Ctx) error {
	quoteID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	quote, err := h.quoteService.ApproveQuote(c.Context(), quoteID, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(quote))
}

func (h *QuoteHandler) DeclineQuote(c fiber.Ctx) error {
	quoteID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.DeclineQuoteRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	quote, err := h.quoteService.DeclineQuote(c.Context(), quoteID, req.Reason, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(quote))
}

// ConvertQuote turns a pending quote into an active policy. The conversion
// is transactional on the service side.
func (h *QuoteHandler) ConvertQuote(c fiber.Ctx) error {
	quoteID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.quoteService.ConvertToPolicy(c.Context(), quoteID, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(result))
}
