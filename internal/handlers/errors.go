package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/matiisnothere-15/septjunto/internal/metrics"
	"github.com/matiisnothere-15/septjunto/internal/services"
)

const InvalidUuidError = "Invalid UUID"

// respondError writes the error body with the status that matches err.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, message string) error {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": message,
			"details": vErr.Error(),
			"fields":  vErr.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		return errorBody(c, fiber.StatusNotFound, message, err)
	case errors.Is(err, services.ErrAlreadyExists), errors.Is(err, services.ErrInUse):
		return errorBody(c, fiber.StatusConflict, message, err)
	}

	logger.Error(message, zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
	return errorBody(c, fiber.StatusInternalServerError, message, err)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return errorBody(c, fiber.StatusBadRequest, message, err)
}

func errorBody(c *fiber.Ctx, status int, message string, err error) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"message": message,
		"details": err.Error(),
	})
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(param))
}

// optionalID parses an optional UUID query parameter.
func optionalID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "query parameter %s", key)
	}
	return &id, nil
}

func setTimingHeaders(c *fiber.Ctx, timings *metrics.StageTimings) {
	for name, value := range timings.Headers() {
		c.Set(name, value)
	}
}
