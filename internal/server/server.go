package server

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/tigoviajes/catalog/internal/cache"
	"github.com/tigoviajes/catalog/internal/config"
	"github.com/tigoviajes/catalog/internal/domain"
	"github.com/tigoviajes/catalog/internal/handler"
	"github.com/tigoviajes/catalog/internal/middleware"
	"github.com/tigoviajes/catalog/internal/service"
	"github.com/tigoviajes/catalog/internal/telemetry"
)

const idempotencyTTL = 24 * time.Hour

// AppDependencies holds the dependencies required to start the application
type AppDependencies struct {
	Config       *config.Config
	Repositories service.Repositories
	Cache        cache.Service
	// RedisClient enables idempotent admin mutations; nil disables them
	RedisClient *redis.Client
	// AuthClient verifies Firebase ID tokens on admin login; nil disables login
	AuthClient service.FirebaseAuthClient
	// ImageStore receives admin uploads; nil disables them
	ImageStore domain.FileRepository
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	cfg := deps.Config

	// Services
	invalidator := service.NewInvalidator(deps.Cache)
	catalogService := service.NewCatalogService(deps.Repositories, deps.Cache, cfg.Cache.TTL)
	packageService := service.NewPackageAdminService(deps.Repositories, invalidator)
	destinationService := service.NewDestinationAdminService(deps.Repositories.Destinations, invalidator)
	sectionService := service.NewSectionAdminService(deps.Repositories, invalidator)
	dashboardService := service.NewDashboardService(deps.Repositories)
	authService := service.NewAuthService(deps.AuthClient, cfg.Admin.IsAdminEmail, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	var imageService *service.ImageService
	if deps.ImageStore != nil {
		imageService = service.NewImageService(deps.ImageStore)
	}

	// Handlers
	publicHandler := handler.NewPublicHandler(catalogService)
	packageHandler := handler.NewPackageAdminHandler(packageService)
	contentHandler := handler.NewContentAdminHandler(destinationService, sectionService, dashboardService)
	uploadHandler := handler.NewUploadHandler(imageService)
	authHandler := handler.NewAuthHandler(authService)

	bodyLimitMB := cfg.Server.MaxUploadSizeMB
	if bodyLimitMB <= 0 {
		bodyLimitMB = 5
	}
	corsOrigins := cfg.Server.CORSOrigins
	if corsOrigins == "" {
		corsOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:      "Tigo Viajes Catalog API",
		BodyLimit:    int(bodyLimitMB * 1024 * 1024),
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Correlation-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(compress.New())
	app.Use(telemetry.FiberMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "tigo-catalog",
		})
	})

	v1 := app.Group("/v1")

	// ===========================================
	// PUBLIC API - /v1/public/* (cached reads)
	// ===========================================
	public := v1.Group("/public")
	public.Use(etag.New())
	public.Get("/header", publicHandler.Header)
	public.Get("/home", publicHandler.Home)
	public.Get("/offers", publicHandler.Offers)

	public.Get("/packages/slug/:slug", publicHandler.PackageBySlug)
	public.Get("/packages/:id/related", publicHandler.RelatedPackages)
	public.Get("/packages/:id", publicHandler.PackageByID)

	public.Get("/destinations/:slug", publicHandler.Destination)

	public.Get("/sections/active", publicHandler.ActiveSection)
	public.Get("/sections/:slug/packages", publicHandler.SectionPackages)
	public.Get("/sections/:slug", publicHandler.Section)

	// ===========================================
	// ADMIN API - /v1/admin/* (allow-listed staff)
	// ===========================================
	v1.Post("/admin/auth/login", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	}), authHandler.Login)

	admin := v1.Group("/admin")
	admin.Use(middleware.VerifyAdminToken(cfg.JWT.Secret, cfg.Admin.IsAdminEmail))
	admin.Use(middleware.IdempotencyMiddleware(deps.RedisClient, idempotencyTTL))

	admin.Get("/auth/me", authHandler.Me)
	admin.Get("/dashboard", contentHandler.Dashboard)

	packages := admin.Group("/packages")
	packages.Get("/", packageHandler.List)
	packages.Post("/", packageHandler.Create)
	packages.Get("/:id", packageHandler.Get)
	packages.Put("/:id", packageHandler.Update)
	packages.Delete("/:id", packageHandler.Delete)
	packages.Post("/:id/duplicate", packageHandler.Duplicate)
	packages.Post("/:id/dates", packageHandler.AddDepartureDate)
	packages.Put("/:id/dates/:dateId", packageHandler.UpdateDepartureDate)
	packages.Delete("/:id/dates/:dateId", packageHandler.DeleteDepartureDate)
	packages.Patch("/:id/:flag", packageHandler.Toggle)

	destinations := admin.Group("/destinations")
	destinations.Get("/", contentHandler.ListDestinations)
	destinations.Post("/", contentHandler.CreateDestination)
	destinations.Put("/:id", contentHandler.UpdateDestination)
	destinations.Patch("/:id/active", contentHandler.ToggleDestination)
	destinations.Delete("/:id", contentHandler.DeleteDestination)

	sections := admin.Group("/sections")
	sections.Get("/", contentHandler.ListSections)
	sections.Post("/", contentHandler.CreateSection)
	sections.Get("/:id", contentHandler.GetSection)
	sections.Put("/:id", contentHandler.UpdateSection)
	sections.Patch("/:id/active", contentHandler.ToggleSection)
	sections.Delete("/:id", contentHandler.DeleteSection)

	admin.Post("/uploads/:bucket", uploadHandler.Upload)

	if deps.AuthClient == nil {
		log.Println("Warning: Firebase is not configured, admin login is disabled")
	}
	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	log.Printf("Error: %v", err)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
