package server

import (
	"errors"
	"time"

	"chatroom/internal/config"
	"chatroom/internal/database"
	"chatroom/internal/handlers"
	"chatroom/internal/metrics"
	"chatroom/internal/middleware"
	"chatroom/internal/repositories"
	"chatroom/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps are the collaborators NewApp wires together.
type Deps struct {
	Config    config.Config
	DB        *gorm.DB
	Log       *logrus.Logger
	Metrics   *metrics.Metrics
	Publisher services.EventPublisher // optional
}

// NewApp builds the Fiber application with every route registered.
func NewApp(d Deps) *fiber.App {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	// --- Repositories ---
	memberRepo := repositories.NewGORMMemberRepository(d.DB)
	tokenRepo := repositories.NewGORMTokenRepository(d.DB)
	messageRepo := repositories.NewGORMMessageRepository(d.DB)

	// --- Services ---
	authService := services.NewAuthService(memberRepo, tokenRepo, d.Config.BcryptCost, d.Publisher, d.Log)
	profileService := services.NewProfileService(memberRepo, d.Log)
	messageService := services.NewMessageService(messageRepo, d.Config.MessagesMaxPageSize, d.Publisher, d.Log)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, d.Metrics, d.Log)
	profileHandler := handlers.NewProfileHandler(profileService, d.Log)
	messageHandler := handlers.NewMessageHandler(messageService, d.Metrics, d.Log)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(d.Log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: d.Log.Out,
	}))
	app.Use(middleware.RequestMetrics(d.Metrics))

	// --- API Routes ---
	api := app.Group("/api")
	protected := []fiber.Handler{middleware.TokenAuth(authService, d.Log), middleware.AuthRequired()}
	authHandler.RegisterRoutes(api, protected...)
	profileHandler.RegisterRoutes(api, protected...)
	messageHandler.RegisterRoutes(api, protected...)

	// --- Operational endpoints ---
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(d.DB); err != nil {
			d.Log.WithError(err).Warn("health check: database unreachable")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "unreachable",
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "connected",
		})
	})

	return app
}

func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		detail := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code, detail = fe.Code, fe.Message
		} else {
			log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}
		return c.Status(code).JSON(fiber.Map{"detail": detail})
	}
}
