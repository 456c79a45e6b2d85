package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/dentique/clinic-api/internal/config"
	"github.com/dentique/clinic-api/internal/email"
	"github.com/dentique/clinic-api/internal/handler"
	appointmentHandler "github.com/dentique/clinic-api/internal/handler/appointment"
	authHandler "github.com/dentique/clinic-api/internal/handler/auth"
	billingHandler "github.com/dentique/clinic-api/internal/handler/billing"
	bookingHandler "github.com/dentique/clinic-api/internal/handler/booking"
	clinicHandler "github.com/dentique/clinic-api/internal/handler/clinic"
	doctorHandler "github.com/dentique/clinic-api/internal/handler/doctor"
	healthHandler "github.com/dentique/clinic-api/internal/handler/health"
	prescriptionHandler "github.com/dentique/clinic-api/internal/handler/prescription"
	profileHandler "github.com/dentique/clinic-api/internal/handler/profile"
	reportHandler "github.com/dentique/clinic-api/internal/handler/report"
	"github.com/dentique/clinic-api/internal/middleware"
	"github.com/dentique/clinic-api/internal/repository/postgres"
	"github.com/dentique/clinic-api/internal/router"
	appointmentService "github.com/dentique/clinic-api/internal/service/appointment"
	authService "github.com/dentique/clinic-api/internal/service/auth"
	billingService "github.com/dentique/clinic-api/internal/service/billing"
	bookingService "github.com/dentique/clinic-api/internal/service/booking"
	clinicService "github.com/dentique/clinic-api/internal/service/clinic"
	doctorService "github.com/dentique/clinic-api/internal/service/doctor"
	prescriptionService "github.com/dentique/clinic-api/internal/service/prescription"
	profileService "github.com/dentique/clinic-api/internal/service/profile"
	reportService "github.com/dentique/clinic-api/internal/service/report"
	"github.com/dentique/clinic-api/pkg/auth"
	"github.com/dentique/clinic-api/pkg/cache"
	"github.com/dentique/clinic-api/pkg/logger"
	"github.com/dentique/clinic-api/pkg/metrics"
	"github.com/dentique/clinic-api/pkg/security"
	"github.com/dentique/clinic-api/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Setup(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	if err := handler.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validations")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Content cache. Falls back to a pass-through when Redis is disabled.
	contentCache := cache.Noop()
	if cfg.Redis.Enabled {
		contentCache, err = cache.NewRedisCache(cache.Config{URL: cfg.Redis.URL})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	}
	defer contentCache.Close()

	emailSvc := email.NewNoopService()
	if cfg.Email.Enabled {
		emailSvc = email.NewSMTPService(email.Config{
			Host:     cfg.Email.Host,
			Port:     cfg.Email.Port,
			Username: cfg.Email.Username,
			Password: cfg.Email.Password,
			From:     cfg.Email.From,
		})
	}

	store, err := storage.NewDiskStorage(cfg.Storage.Root, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	m := metrics.New("clinic")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	reportRepo := postgres.NewReportRepository(db)
	billingRepo := postgres.NewBillingRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	clinicInfoRepo := postgres.NewClinicInfoRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})
	hasher := security.NewBcryptHasher(0)

	authSvc := authService.NewService(userRepo, profileRepo, jwtSvc, hasher, emailSvc)
	profileSvc := profileService.NewService(profileRepo)
	doctorSvc := doctorService.NewService(doctorRepo, contentCache, cfg.Cache.ContentTTL(), m)
	clinicSvc := clinicService.NewService(clinicInfoRepo, serviceRepo, eventRepo, contentCache, cfg.Cache.ContentTTL(), m)
	appointmentSvc := appointmentService.NewService(appointmentRepo)
	bookingSvc := bookingService.NewService(
		cfg.Booking.SessionTTL(),
		doctorRepo,
		serviceRepo,
		profileRepo,
		appointmentRepo,
		userRepo,
		emailSvc,
		m,
	)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, appointmentRepo)
	reportSvc := reportService.NewService(reportRepo, store)
	billingSvc := billingService.NewService(billingRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)

	healthH := healthHandler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc, authMiddleware)
	profileH := profileHandler.NewHandler(profileSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc, authSvc, appointmentSvc, billingSvc)
	clinicH := clinicHandler.NewHandler(clinicSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, profileSvc, authSvc, doctorSvc)
	bookingH := bookingHandler.NewHandler(bookingSvc)
	prescriptionH := prescriptionHandler.NewHandler(prescriptionSvc, profileSvc, authSvc, doctorSvc)
	reportH := reportHandler.NewHandler(reportSvc, profileSvc, authSvc, doctorSvc)
	billingH := billingHandler.NewHandler(billingSvc, profileSvc, authSvc, doctorSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	}

	r := router.NewRouter(
		authMiddleware,
		healthH,
		authH,
		profileH,
		doctorH,
		clinicH,
		appointmentH,
		bookingH,
		prescriptionH,
		reportH,
		billingH,
		m,
		router.Config{
			RateLimit:  rate.Limit(cfg.RateLimit.RPS),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: corsConfig,
			FilesDir:   store.Root(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
