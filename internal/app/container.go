package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/escolafm/portal-backend/internal/announcement"
	"github.com/escolafm/portal-backend/internal/api"
	"github.com/escolafm/portal-backend/internal/auth"
	"github.com/escolafm/portal-backend/internal/booking"
	"github.com/escolafm/portal-backend/internal/material"
	"github.com/escolafm/portal-backend/internal/pkg/metrics"
	"github.com/escolafm/portal-backend/internal/pkg/storage"
	"github.com/escolafm/portal-backend/internal/schedule"
	"github.com/escolafm/portal-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Log          *zap.Logger
	Storage      storage.Storage
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	ClassSlots      int
	LowThreshold    int
	MediumThreshold int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Engine     *booking.Engine
	Feed       *booking.Feed
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	m := metrics.New()

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Schedule Module (resource catalog + period grid)
	schedRepo := schedule.NewPgxRepository(cfg.DBPool)
	schedService := schedule.NewService(schedRepo)

	// Booking Module: feed and engine first, the service publishes into
	// the feed and consults the engine for availability.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	feed := booking.NewFeed()
	engine := booking.NewEngine(booking.EngineConfig{
		ClassSlots:      cfg.ClassSlots,
		LowThreshold:    cfg.LowThreshold,
		MediumThreshold: cfg.MediumThreshold,
	}, bookingRepo, schedService, cfg.Log)
	bookingService := booking.NewService(bookingRepo, schedService, engine, feed, cfg.ClassSlots)

	// Announcement Module
	annRepo := announcement.NewPgxRepository(cfg.DBPool)
	annService := announcement.NewService(annRepo)

	// Material Module
	matRepo := material.NewPgxRepository(cfg.DBPool)
	matService := material.NewService(matRepo, cfg.Storage)

	// Router
	router := api.NewRouter(api.Deps{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		Log:                 cfg.Log,
		Metrics:             m,
		JWTManager:          jwtManager,
		UserService:         userService,
		ScheduleService:     schedService,
		BookingService:      bookingService,
		BookingEngine:       engine,
		BookingFeed:         feed,
		AnnouncementService: annService,
		MaterialService:     matService,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Engine:     engine,
		Feed:       feed,
	}
}
