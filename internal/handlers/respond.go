package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"insurance-service/internal/models"
	"insurance-service/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// respondError maps the domain error taxonomy onto HTTP statuses:
// validation 400, not found 404, invalid state 409, expired 422,
// everything else 500.
func respondError(c fiber.Ctx, err error) error {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateFieldErrorResponse("VALIDATION_FAILED", validationErr.Field, validationErr.Message))
	}

	var notFoundErr *models.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(http.StatusNotFound).JSON(
			utils.CreateErrorResponse("NOT_FOUND", notFoundErr.Error()))
	}

	var stateErr *models.InvalidStateError
	if errors.As(err, &stateErr) {
		return c.Status(http.StatusConflict).JSON(
			utils.CreateErrorResponse("INVALID_STATE", stateErr.Error()))
	}

	var expiredErr *models.ExpiredError
	if errors.As(err, &expiredErr) {
		return c.Status(http.StatusUnprocessableEntity).JSON(
			utils.CreateErrorResponse("EXPIRED", expiredErr.Error()))
	}

	slog.Error("request failed", "path", c.Path(), "error", err)
	return c.Status(http.StatusInternalServerError).JSON(
		utils.CreateErrorResponse("INTERNAL_ERROR", "request could not be processed"))
}

// parseIDParam parses a uuid path parameter.
func parseIDParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, models.NewValidationError(name, "must be a valid uuid")
	}
	return id, nil
}
