package http

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/inventario-ledger-api/docs"
	"github.com/jhoicas/inventario-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventario-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger-api/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	LocationUC *usecase.LocationUseCase
	SupplierUC *usecase.SupplierUseCase
	MovementUC *inventory.MovementUseCase

	AppName     string
	Version     string
	Logger      zerolog.Logger
	Metrics     *metrics.Metrics // nil = sin métricas ni /metrics
	CORSOrigins string           // separadas por coma
	Cookies     CookiePolicy
	RateLimit   RateLimitConfig
	Sanitizer   SanitizerConfig
	SwaggerFile string // swagger.json para la UI en /docs; vacío o inexistente = sin UI
}

// NewApp construye la app Fiber con la cadena de middlewares y todas las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
	}
	app.Use(corsMiddleware(deps.CORSOrigins))
	app.Use(RateLimiter(deps.RateLimit))

	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			// Swagger UI: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "Inventario API",
			}))
		}
	}
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}
	app.Get("/health", Health(deps.Version))

	Router(app, deps)
	return app
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")
	api.Get("/health", Health(deps.Version))
	api.Get("/openapi.json", openAPIDoc)

	requireAuth := AuthMiddleware(deps.AuthUC)
	sanitize := NewSanitizer(deps.Sanitizer).Middleware()

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookies, deps.Metrics)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Products: /alerts antes de /:id
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", requireAuth, sanitize, productHandler.Create)
	products.Get("/alerts", productHandler.Alerts)
	products.Get("/alerts/report", productHandler.AlertsReport)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", requireAuth, sanitize, productHandler.Update)
	products.Patch("/:id", requireAuth, sanitize, productHandler.Update)
	products.Delete("/:id", requireAuth, productHandler.Delete)

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.LocationUC, deps.SupplierUC)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Post("/categories", sanitize, catalogHandler.CreateCategory)
	api.Get("/locations", catalogHandler.ListLocations)
	api.Post("/locations", sanitize, catalogHandler.CreateLocation)
	api.Get("/suppliers", catalogHandler.ListSuppliers)
	api.Post("/suppliers", sanitize, catalogHandler.CreateSupplier)

	// Libro de stock
	movementHandler := NewMovementHandler(deps.MovementUC, deps.Metrics)
	movements := api.Group("/movements")
	movements.Get("/", movementHandler.List)
	movements.Post("/", requireAuth, sanitize, movementHandler.Record)
	movements.Get("/product/:id", movementHandler.ListByProduct)
}

// corsMiddleware permite credenciales solo con orígenes explícitos; Fiber no acepta "*" con credenciales.
func corsMiddleware(origins string) fiber.Handler {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "http://localhost:3000"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		AllowCredentials: !strings.Contains(origins, "*"),
	})
}

// openAPIDoc sirve el documento registrado en swag por el paquete docs.
func openAPIDoc(c *fiber.Ctx) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "documentación no disponible")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.SendString(doc)
}
