package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Pinger comprueba la conexión a la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler rutas de servicio: raíz, health y prueba de BD.
type SystemHandler struct {
	appName string
	db      Pinger
}

// NewSystemHandler construye el handler.
func NewSystemHandler(appName string, db Pinger) *SystemHandler {
	return &SystemHandler{appName: appName, db: db}
}

// Root describe el servicio y sus endpoints.
// GET /
func (h *SystemHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "API Procesador CFDI Sin Timbrado",
		"version": "2.0",
		"endpoints": fiber.Map{
			"POST /procesar":            "Sube ZIP",
			"GET /facturas":             "Lista facturas",
			"GET /facturas/reporte.pdf": "Reporte PDF",
		},
	})
}

// Health GET /health
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": h.appName})
}

// TestDB hace ping a la base de datos.
// GET /test-db
func (h *SystemHandler) TestDB(c *fiber.Ctx) error {
	if err := h.db.Ping(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "DB OK"})
}
