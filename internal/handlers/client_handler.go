package handlers

import (
	"net/http"

	"insurance-service/internal/models"
	"insurance-service/internal/repository"
	"insurance-service/internal/services"
	"insurance-service/utils"

	"github.com/gofiber/fiber/v3"
)

type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (h *ClientHandler) Register(router fiber.Router) {
	group := router.Group("/clients")
	group.Post("/", h.CreateClient)
	group.Get("/", h.ListClients)
	group.Get("/:id", h.GetClient)
	group.Put("/:id", h.UpdateClient)
	group.Delete("/:id", h.DeleteClient)
}

func (h *ClientHandler) CreateClient(c fiber.Ctx) error {
	var req models.CreateClientRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	client, err := h.clientService.CreateClient(c.Context(), req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(utils.CreateSuccessResponse(client))
}

func (h *ClientHandler) ListClients(c fiber.Ctx) error {
	var scopes []repository.Scope
	if status := c.Query("status"); status != "" {
		scopes = append(scopes, repository.WithStatus(status))
	}

	clients, err := h.clientService.GetAllClients(c.Context(), scopes...)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"clients": clients,
		"count":   len(clients),
	}))
}

func (h *ClientHandler) GetClient(c fiber.Ctx) error {
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	client, err := h.clientService.GetClientByID(c.Context(), clientID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(client))
}

func (h *ClientHandler) UpdateClient(c fiber.Ctx) error {
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateClientRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_BODY", "Invalid request body"))
	}

	client, err := h.clientService.UpdateClient(c.Context(), clientID, req, authenticatedUserID(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(client))
}

func (h *ClientHandler) DeleteClient(c fiber.Ctx) error {
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.clientService.DeleteClient(c.Context(), clientID, authenticatedUserID(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(map[string]any{
		"deleted": clientID,
	}))
}
