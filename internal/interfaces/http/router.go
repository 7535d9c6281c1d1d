package http

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	System  *SystemHandler
	Invoice *InvoiceHandler
	// JWTSecret vacío deja POST /procesar abierto.
	JWTSecret  string
	CompanyRFC string
	// SwaggerFile ruta de docs/swagger.json; vacío no monta /docs.
	SwaggerFile string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.SwaggerFile != "" {
		// Swagger UI en local: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    "CFDI API",
		}))
	}

	app.Get("/", deps.System.Root)
	app.Get("/health", deps.System.Health)
	app.Get("/test-db", deps.System.TestDB)

	upload := []fiber.Handler{deps.Invoice.Process}
	if deps.JWTSecret != "" {
		upload = append([]fiber.Handler{AuthMiddleware(deps.JWTSecret, deps.CompanyRFC)}, upload...)
	}
	app.Post("/procesar", upload...)

	facturas := app.Group("/facturas")
	facturas.Get("/", deps.Invoice.List)
	facturas.Get("/reporte.pdf", deps.Invoice.Report)
}
