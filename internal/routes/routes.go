package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/audit"
	"github.com/BruksfildServices01/tutor-booking/internal/config"
	"github.com/BruksfildServices01/tutor-booking/internal/handlers"
	"github.com/BruksfildServices01/tutor-booking/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/tutor-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/tutor-booking/internal/usecase/booking"
)

// Deps is everything the HTTP layer needs, built once in main.
type Deps struct {
	Config       *config.Config
	Log          *zap.Logger
	Location     *time.Location
	Availability *ucAvailability.Store
	Bookings     *ucBooking.Service
	AuditLogs    audit.Store
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RecoveryMiddleware(d.Log),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(d.Log),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
		middleware.NewRateLimiter(cfg.RateLimitPerMinute).Middleware(d.Log),
		middleware.TimeoutMiddleware(cfg.RequestTimeout),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(d.Bookings, d.Log)
	bookingHandler := handlers.NewBookingHandler(d.Bookings, d.Log)
	meHandler := handlers.NewMeHandler(d.Bookings, d.Log)
	availabilityHandler := handlers.NewAvailabilityHandler(d.Availability, d.Location, cfg.HorizonDays, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs, d.Location, d.Log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		tutors := api.Group("/tutors/:tutorId")
		{
			tutors.GET("/available-dates", publicHandler.AvailableDates)
			tutors.GET("/available-slots", publicHandler.AvailableSlots)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/bookings", bookingHandler.Submit)
			secured.GET("/bookings/:reference", bookingHandler.Get)
			secured.POST("/bookings/:reference/cancel", bookingHandler.Cancel)
			secured.POST("/bookings/:reference/complete", bookingHandler.Complete)

			secured.GET("/me/bookings", meHandler.Bookings)

			secured.GET("/me/availability/windows", availabilityHandler.ListWindows)
			secured.PUT("/me/availability/windows", availabilityHandler.UpsertWindow)
			secured.DELETE("/me/availability/windows/:id", availabilityHandler.RemoveWindow)

			secured.GET("/me/availability/blackouts", availabilityHandler.ListBlackouts)
			secured.POST("/me/availability/blackouts", availabilityHandler.AddBlackout)
			secured.DELETE("/me/availability/blackouts/:id", availabilityHandler.RemoveBlackout)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
