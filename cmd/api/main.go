package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/tutor-booking/internal/audit"
	"github.com/BruksfildServices01/tutor-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/tutor-booking/internal/db"
	domainAvailability "github.com/BruksfildServices01/tutor-booking/internal/domain/availability"
	domainBooking "github.com/BruksfildServices01/tutor-booking/internal/domain/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/tutor-booking/internal/infra/repository"
	"github.com/BruksfildServices01/tutor-booking/internal/logger"
	"github.com/BruksfildServices01/tutor-booking/internal/notify"
	"github.com/BruksfildServices01/tutor-booking/internal/retry"
	"github.com/BruksfildServices01/tutor-booking/internal/routes"
	"github.com/BruksfildServices01/tutor-booking/internal/timezone"
	ucAvailability "github.com/BruksfildServices01/tutor-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/tutor-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/tutor-booking/internal/usecase/slots"
)

type storage struct {
	availability domainAvailability.Repository
	bookings     domainBooking.Repository
	audit        audit.Store
}

func openStorage(cfg *config.Config, log *zap.Logger) (storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn("using in-memory storage; data is lost on restart")
		return storage{
			availability: infraRepo.NewAvailabilityMemoryRepository(),
			bookings:     infraRepo.NewBookingMemoryRepository(),
			audit:        audit.NewMemoryStore(),
		}, nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return storage{}, err
	}
	return storage{
		availability: infraRepo.NewAvailabilityGormRepository(db),
		bookings:     infraRepo.NewBookingGormRepository(db),
		audit:        audit.NewGormStore(db),
	}, nil
}

func newSender(cfg *config.Config, log *zap.Logger) (notify.Sender, error) {
	if cfg.NotifyDriver == config.NotifyBrevo {
		return notify.NewBrevoSender(cfg.BrevoAPIKey, cfg.EmailSender, cfg.EmailSenderName)
	}
	return notify.NewLogSender(log), nil
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if !timezone.IsValid(cfg.Timezone) {
		log.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Timezone))
	}
	loc := timezone.Location(cfg.Timezone)

	// ======================================================
	// INFRA
	// ======================================================
	store, err := openStorage(cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}

	var (
		datesCache  ucBooking.DatesCache
		invalidator ucAvailability.Invalidator
	)
	if redisClient != nil {
		c := cache.NewRedisDatesCache(redisClient, cfg.DatesCacheTTL, log)
		datesCache, invalidator = c, c
	}

	sender, err := newSender(cfg, log)
	if err != nil {
		log.Fatal("failed to configure notifications", zap.Error(err))
	}

	auditDispatcher := audit.NewDispatcher(store.audit, log, audit.DefaultQueueSize)
	notifyDispatcher := notify.NewDispatcher(sender, log, notify.DefaultQueueSize)

	// ======================================================
	// USE CASES
	// ======================================================
	generator := slots.NewGenerator(
		store.availability,
		store.bookings,
		slots.WithHorizonDays(cfg.HorizonDays),
		slots.WithLocation(loc),
	)

	availabilityStore := ucAvailability.NewStore(store.availability, invalidator, auditDispatcher, log)
	ledger := ucBooking.NewLedger(store.bookings, generator, auditDispatcher, log)
	bookingService := ucBooking.NewService(
		generator,
		ledger,
		datesCache,
		retry.NewReads(cfg.ReadRetryAttempts, log),
		notifyDispatcher,
		log,
	)

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Log:          log,
		Location:     loc,
		Availability: availabilityStore,
		Bookings:     bookingService,
		AuditLogs:    store.audit,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	auditDispatcher.Close()
	notifyDispatcher.Close()

	if redisClient != nil {
		_ = redisClient.Close()
	}
}
