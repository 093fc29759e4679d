package main

import (
	"context"
	"fmt"
	common_api "jzf-portal/internal/common/api"
	"jzf-portal/internal/config"
	"jzf-portal/internal/database"
	"jzf-portal/internal/features/auth"
	"jzf-portal/internal/features/client"
	"jzf-portal/internal/features/document"
	"jzf-portal/internal/features/extraction"
	"jzf-portal/internal/features/notification"
	"jzf-portal/internal/features/report"
	"jzf-portal/internal/features/signing"
	"jzf-portal/internal/features/template"
	"jzf-portal/internal/features/user"
	"jzf-portal/internal/logger"
	"jzf-portal/internal/middleware"
	"jzf-portal/pkg/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             25 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	log.Printf("Registering %d routes...\n", len(routes))
	for _, route := range routes {
		route.Setup(app)
	}
	log.Println("All routes registered successfully")
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			user.NewUserRepository,
			client.NewClientRepository,
			document.NewDocumentStore,
			notification.NewNotificationRepository,

			// Initialize Service
			template.NewRegistry,
			signing.NewPrimitive,
			notification.NewHub,
			notification.NewNotificationService,
			auth.NewAuthService,
			document.NewDocumentService,
			document.NewSignatureCoordinator,
			extraction.NewService,
			report.NewReportService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(r user.UserRepository) document.UserFinder { return r },
			func(r user.UserRepository) notification.ClientUserFinder { return r },
			func(s notification.NotificationService) document.EventSink { return s },

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			client.NewClientController,
			template.NewTemplateController,
			document.NewDocumentController,
			notification.NewNotificationController,
			extraction.NewExtractionController,
			report.NewReportController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(client.NewClientApi),
			AsRoute(template.NewTemplateApi),
			AsRoute(document.NewDocumentApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(extraction.NewExtractionApi),
			AsRoute(report.NewReportApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
		),
	)

	app.Run()
}
