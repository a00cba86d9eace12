// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tannermartz/breakline/app/dto"
	"github.com/tannermartz/breakline/app/handlers"
	"github.com/tannermartz/breakline/app/middleware"
	"github.com/tannermartz/breakline/logx"
	"github.com/tannermartz/breakline/utils"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Handlers bundles every resource handler the router mounts
type Handlers struct {
	Auth        handlers.AuthHandlerInterface
	Tournament  handlers.TournamentHandlerInterface
	SearchAlert handlers.SearchAlertHandlerInterface
	Favorite    handlers.FavoriteHandlerInterface
	Venue       handlers.VenueHandlerInterface
	Admin       handlers.AdminHandlerInterface
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app     *fiber.App
	h       Handlers
	auth    *middleware.AuthMiddleware
	origins []string
	appName string
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(h Handlers, auth *middleware.AuthMiddleware, allowOrigins []string) Router {
	app := fiber.New(fiber.Config{
		AppName:      "Breakline API",
		ServerHeader: "Breakline",
		ErrorHandler: errorHandler,
		BodyLimit:    1 * 1024 * 1024,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:     app,
		h:       h,
		auth:    auth,
		origins: allowOrigins,
		appName: "breakline-api",
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	r.setupMiddleware()

	// Prometheus scrape endpoint stays outside the API group and its limiter
	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	api.Use(limiter.New(limiter.Config{
		Max:        1000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Auth routes with stricter rate limiting
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))

	auth.Post("/signup", r.h.Auth.Signup)
	auth.Post("/login", r.h.Auth.Login)
	auth.Post("/refresh", r.h.Auth.RefreshToken)
	auth.Post("/logout", r.h.Auth.Logout, r.auth.Authenticate())

	// Public directory browsing
	tournaments := api.Group("/tournaments")
	tournaments.Get("/", r.h.Tournament.List)
	tournaments.Get("/:uuid", r.h.Tournament.Get)

	// Listing management requires a session
	tournaments.Post("/", r.h.Tournament.Create, r.auth.Authenticate())
	tournaments.Put("/:uuid", r.h.Tournament.Update, r.auth.Authenticate())
	tournaments.Delete("/:uuid", r.h.Tournament.Cancel, r.auth.Authenticate())

	venues := api.Group("/venues")
	venues.Get("/", r.h.Venue.List)
	venues.Post("/", r.h.Venue.Create, r.auth.Authenticate())

	alerts := api.Group("/alerts", r.auth.Authenticate())
	alerts.Post("/", r.h.SearchAlert.Create)
	alerts.Get("/", r.h.SearchAlert.List)
	alerts.Post("/preview", r.h.SearchAlert.Preview)
	alerts.Put("/:uuid", r.h.SearchAlert.Update)
	alerts.Delete("/:uuid", r.h.SearchAlert.Delete)
	alerts.Get("/:uuid/matches", r.h.SearchAlert.ListMatches)

	favorites := api.Group("/favorites", r.auth.Authenticate())
	favorites.Get("/", r.h.Favorite.List)
	favorites.Post("/:uuid", r.h.Favorite.Add)
	favorites.Delete("/:uuid", r.h.Favorite.Remove)

	admin := api.Group("/admin")
	admin.Post("/login", r.h.Admin.Login)

	moderation := admin.Group("/", r.auth.AdminAuthenticate())
	moderation.Get("/tournaments/pending", r.h.Admin.ListPending)
	moderation.Post("/tournaments/:uuid/approve", r.h.Admin.Approve)
	moderation.Post("/tournaments/:uuid/reject", r.h.Admin.Reject)
	moderation.Get("/players", r.h.Admin.ListPlayers)
	moderation.Put("/players/:uuid/status", r.h.Admin.SetPlayerStatus)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	logx.Info("routes configured")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
		ContentSecurityPolicy: "default-src 'self'; frame-ancestors 'none';",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.origins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           utils.CORSMaxAge,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	r.app.Use(middleware.Metrics())

	// Recovery middleware with panic logging
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logx.Error("panic recovered",
				"error", e,
				"request_id", c.Locals("requestid"),
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	logx.Info("starting server", "address", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "ok",
			"timestamp": utils.UTCNow().Unix(),
			"service":   r.appName,
		},
	})
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "Endpoint not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
		},
	})
}

func rateLimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
		Success: false,
		Message: "Too many requests. Please try again later.",
		Error: dto.ErrorDetail{
			Code: "RATE_LIMIT_EXCEEDED",
		},
	})
}

// Global error handler for unhandled Fiber errors
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	if code >= fiber.StatusInternalServerError {
		logx.Error("unhandled error",
			"error", err,
			"request_id", c.Locals("requestid"),
			"path", c.Path(),
		)
	}

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "Request failed",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
		},
	})
}

func generateRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(b)
}
