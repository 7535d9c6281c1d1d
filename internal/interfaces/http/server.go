package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/cfdi-api/internal/application/dto"
	"github.com/jhoicas/cfdi-api/pkg/config"
	"github.com/jhoicas/cfdi-api/pkg/logger"
)

// NewApp construye la aplicación Fiber con los middlewares comunes:
// recover, CORS configurable y log de peticiones.
func NewApp(appName string, cfg config.HTTPConfig, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      appName,
		BodyLimit:    cfg.BodyLimit(),
		ReadTimeout:  cfg.ReadTimeout,
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowOrigins}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
		Output: log,
	}))
	return app
}

// errorHandler responde errores no manejados (404 de rutas, cuerpo demasiado grande, panics).
func errorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
		}
		return c.Status(code).JSON(dto.ErrorResponse{Code: statusCode(code), Message: err.Error()})
	}
}

func statusCode(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusRequestEntityTooLarge:
		return "TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	}
	return "INTERNAL"
}
