package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cfdi-api/internal/application/dto"
	"github.com/jhoicas/cfdi-api/internal/domain"
	"github.com/jhoicas/cfdi-api/pkg/logger"
)

// writeError traduce errores de dominio a HTTP. Los 5xx se registran.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidArchive):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ARCHIVE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("almacenamiento no disponible")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE_UNAVAILABLE", Message: err.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
