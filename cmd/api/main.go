package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/inventario-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventario-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/inventario-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ledger-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/inventario-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger-api/pkg/config"
	"github.com/jhoicas/inventario-ledger-api/pkg/logger"
	"github.com/jhoicas/inventario-ledger-api/pkg/metrics"
	"github.com/jhoicas/inventario-ledger-api/pkg/rabbitmq"
)

// @title        Inventario API
// @version      1.0
// @description  API de inventario con libro de movimientos de stock.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.Close()

	// Eventos opcionales: sin RABBITMQ_URL no se publica nada.
	var events inventory.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, eventos desactivados")
		} else {
			defer mq.Close()
			events = rabbitmq.NewMovementEventPublisher(mq)
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Prefix)
	}

	authUC := auth.NewAuthUseCase(st.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute,
		RefreshTTL: time.Duration(cfg.JWT.RefreshTTLDays) * 24 * time.Hour,
	})
	productUC := usecase.NewProductUseCase(
		st.Products, st.Categories, st.Locations, st.Suppliers, st.Tx,
		infrapdf.NewMarotoStockReportGenerator(cfg.App.Name),
	)
	movementUC := inventory.NewMovementUseCase(st.Tx, st.Movements, events)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		CategoryUC:  usecase.NewCategoryUseCase(st.Categories),
		LocationUC:  usecase.NewLocationUseCase(st.Locations),
		SupplierUC:  usecase.NewSupplierUseCase(st.Suppliers),
		MovementUC:  movementUC,
		AppName:     cfg.App.Name,
		Version:     cfg.App.Version,
		Logger:      log.Zerolog(),
		Metrics:     m,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Cookies:     httpRouter.CookiePolicy{Secure: cfg.IsProduction()},
		RateLimit:   httpRouter.RateLimitConfig{PerMinute: cfg.Security.RateLimitPerMinute},
		Sanitizer:   httpRouter.SanitizerConfig{Enabled: cfg.Security.SanitizeInput},
		SwaggerFile: "./docs/swagger.json",
	})

	addr := cfg.HTTP.Addr()
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatal().Err(err).Str("addr", addr).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", addr).Msg("servidor escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
