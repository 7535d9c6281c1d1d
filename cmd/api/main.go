package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/cfdi-api/internal/application/invoicing"
	"github.com/jhoicas/cfdi-api/internal/infrastructure/archive"
	infrapdf "github.com/jhoicas/cfdi-api/internal/infrastructure/pdf"
	"github.com/jhoicas/cfdi-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cfdi-api/internal/interfaces/http"
	"github.com/jhoicas/cfdi-api/pkg/config"
	"github.com/jhoicas/cfdi-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("rfc_empresa", cfg.CFDI.CompanyRFC).
		Msg("iniciando aplicación")
	if err := cfg.CFDI.ValidateCompanyRFC(); err != nil {
		log.Warn().Err(err).Msg("RFC_EMPRESA con formato inesperado; se usa tal cual")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	invoiceRepo := postgres.NewInvoiceRepository(pool)
	ucCfg := invoicing.Config{CompanyRFC: cfg.CFDI.CompanyRFC}

	// Un miembro no puede descomprimirse a más que el límite del cuerpo HTTP.
	zipReader := archive.NewReader(int64(cfg.HTTP.BodyLimit()))
	processUC := invoicing.NewProcessArchiveUseCase(zipReader, invoiceRepo, ucCfg, log)
	listUC := invoicing.NewListInvoicesUseCase(invoiceRepo)
	reportUC := invoicing.NewReportUseCase(invoiceRepo, infrapdf.NewMarotoReportGenerator(), ucCfg)

	app := httpRouter.NewApp(cfg.App.Name, cfg.HTTP, log)

	swagger := ""
	if _, err := os.Stat(swaggerFile); err == nil {
		swagger = swaggerFile
	} else {
		log.Warn().Str("archivo", swaggerFile).Msg("swagger no encontrado; /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		System:      httpRouter.NewSystemHandler(cfg.App.Name, invoiceRepo),
		Invoice:     httpRouter.NewInvoiceHandler(processUC, listUC, reportUC, log),
		JWTSecret:   cfg.JWT.Secret,
		CompanyRFC:  cfg.CFDI.CompanyRFC,
		SwaggerFile: swagger,
	})
	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: POST /procesar sin autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
