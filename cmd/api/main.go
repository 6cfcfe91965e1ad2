package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/familycare/clinic-api/internal/api/http"
	"github.com/familycare/clinic-api/internal/api/http/handlers"
	"github.com/familycare/clinic-api/internal/auth"
	"github.com/familycare/clinic-api/internal/cache"
	"github.com/familycare/clinic-api/internal/config"
	"github.com/familycare/clinic-api/internal/events"
	"github.com/familycare/clinic-api/internal/observability"
	"github.com/familycare/clinic-api/internal/persistence"
	"github.com/familycare/clinic-api/internal/repository"
	"github.com/familycare/clinic-api/internal/service"
	"github.com/familycare/clinic-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redisConn := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redisConn.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	doctorRepo := repository.NewDoctorRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	authService, err := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Resolver:   service.NewIdentityResolver(doctorRepo, userRepo),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	registrationService := service.NewRegistrationService(cfg.Registration, service.RegistrationDependencies{
		DoctorRepo: doctorRepo,
		UserRepo:   userRepo,
		Hasher:     authService.PasswordHasher(),
		Tokens:     authService.TokenManager(),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	profileService := service.NewProfileService(doctorRepo, userRepo)
	directoryService := service.NewDirectoryService(doctorRepo,
		cache.NewDoctorDirectory(redisConn.Client, cfg.Directory.CacheTTL()), logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartSubscribers(dispatcher, notificationService, directoryService)

	app := httptransport.NewServer(cfg.App.Name, logger, metrics)
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:  logger,
		Metrics: metrics,
		CORS:    cfg.CORS,
		Timeout: cfg.App.RequestTimeout(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redisConn),
		Auth:            handlers.NewAuthHandler(authService),
		Registration:    handlers.NewRegistrationHandler(registrationService),
		Profile:         handlers.NewProfileHandler(profileService),
		Doctors:         handlers.NewDoctorsHandler(directoryService),
		SessionVerifier: auth.NewSessionVerifier(authService.TokenManager()),
		Metrics:         metrics,
		RateLimit:       cfg.RateLimit,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
