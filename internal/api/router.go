package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/escolafm/portal-backend/internal/announcement"
	annHttp "github.com/escolafm/portal-backend/internal/announcement/http"
	"github.com/escolafm/portal-backend/internal/auth"
	"github.com/escolafm/portal-backend/internal/booking"
	bookingHttp "github.com/escolafm/portal-backend/internal/booking/http"
	"github.com/escolafm/portal-backend/internal/material"
	matHttp "github.com/escolafm/portal-backend/internal/material/http"
	"github.com/escolafm/portal-backend/internal/pkg/logger"
	"github.com/escolafm/portal-backend/internal/pkg/metrics"
	"github.com/escolafm/portal-backend/internal/schedule"
	schedHttp "github.com/escolafm/portal-backend/internal/schedule/http"
	"github.com/escolafm/portal-backend/internal/user"
	userHttp "github.com/escolafm/portal-backend/internal/user/http"
)

// Deps carries everything the router needs to assemble the HTTP surface.
type Deps struct {
	IsProduction bool
	// ProdOrigins is a comma-separated list of allowed CORS origins,
	// used only in production mode.
	ProdOrigins string

	Log     *zap.Logger
	Metrics *metrics.Metrics

	JWTManager *auth.JWTManager

	UserService         user.Service
	ScheduleService     schedule.Service
	BookingService      booking.Service
	BookingEngine       *booking.Engine
	BookingFeed         *booking.Feed
	AnnouncementService announcement.Service
	MaterialService     material.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Metrics, Auth)
// and registering routes for each module.
func NewRouter(d Deps) *gin.Engine {
	if d.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: structured request logs.
	// - Recovery: captures panics to prevent server crashes and returns a 500 error.
	r.Use(logger.GinMiddleware(d.Log), gin.Recovery())
	r.Use(d.Metrics.Middleware())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	if d.IsProduction {
		config.AllowOrigins = strings.Split(d.ProdOrigins, ",")
	} else {
		config.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:8081", // Swagger
		}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", d.Metrics.Handler())

	// authMiddleware: validates that the request carries a valid JWT.
	authMiddleware := auth.AuthRequired(d.JWTManager)
	// approvedMiddleware: further checks the account has passed admin review.
	approvedMiddleware := RequireApproved(d.UserService)
	// adminMiddleware: further checks the authenticated user is an admin.
	adminMiddleware := RequireAdmin(d.UserService)

	// Initialize HTTP handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(d.UserService, d.JWTManager)
	schedHandler := schedHttp.NewHandler(d.ScheduleService)
	bookingHandler := bookingHttp.NewHandler(d.BookingService, d.BookingEngine, d.BookingFeed, d.UserService)
	annHandler := annHttp.NewHandler(d.AnnouncementService)
	matHandler := matHttp.NewHandler(d.MaterialService, d.UserService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		schedHttp.RegisterRoutes(v1, schedHandler, authMiddleware, approvedMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, approvedMiddleware)
		annHttp.RegisterRoutes(v1, annHandler, authMiddleware, approvedMiddleware, adminMiddleware)
		matHttp.RegisterRoutes(v1, matHandler, authMiddleware, approvedMiddleware, adminMiddleware)
	}

	return r
}
