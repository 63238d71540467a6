package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"field-service/internal/authz"
	"field-service/internal/clients/backend"
	"field-service/internal/jobs"
	"field-service/internal/listeners"
	"field-service/internal/repositories"
	"field-service/internal/routes"
	"field-service/internal/services"
	"field-service/pkg/config"
	"field-service/pkg/customvalidator"
	"field-service/pkg/database/postgresql"
	apperrors "field-service/pkg/errors"
	"field-service/pkg/eventbus"
	applogger "field-service/pkg/logger"
	appmiddleware "field-service/pkg/middleware"
	"field-service/pkg/service"
	"field-service/pkg/utils"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
	shutdownTimeout = 15 * time.Second
)

func main() {
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("panic recovered",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "internal server error", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))
	e.Use(appmiddleware.RequestLogger(logger.Named("http")))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("failed to register validation rules", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	bus := eventbus.New(logger)
	gatekeeper := authz.NewGatekeeper()
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, accessTokenTTL, refreshTokenTTL, logger)
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)

	guard, closeGuard := newInFlightGuard(ctx, cfg, logger)
	defer closeGuard()

	executor := services.NewActionExecutor(client, guard, cfg.Backend.Timeout, logger)
	svcs := routes.Services{
		OrderActions: services.NewOrderActionService(client, executor, bus, gatekeeper, logger),
	}

	var scheduler *cron.Cron
	if cfg.Journal.Enabled {
		dbConn := mustConnectDB(ctx, cfg, logger)
		defer dbConn.Close()

		journalRepo := repositories.NewOccurrenceJournalRepository(dbConn, logger)
		listeners.NewJournalListener(journalRepo, logger).Register(bus)
		journalService := services.NewJournalService(journalRepo, gatekeeper, logger)
		svcs.Journal = journalService

		c := jobs.NewScheduler(logger)
		retention := jobs.NewJournalRetentionJob(journalService, cfg.Journal.RetentionDays, logger)
		if _, err := retention.Schedule(c, cfg.Journal.RetentionCron); err != nil {
			logger.Fatal("failed to schedule journal retention", zap.Error(err))
		}
		c.Start()
		scheduler = c
	}

	routes.InitRouter(e, jwtSvc, svcs, &routes.Loggers{
		Main:    logger,
		Auth:    logger.Named("auth"),
		Orders:  logger.Named("orders"),
		Journal: logger.Named("journal"),
	})

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	bus.Wait()
}

func mustConnectDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) *pgxpool.Pool {
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	if err := postgresql.Migrate(dbConn, logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	return dbConn
}

// newInFlightGuard picks the Redis guard for multi-instance deployments, the memory one otherwise.
func newInFlightGuard(ctx context.Context, cfg *config.Config, logger *zap.Logger) (services.InFlightGuard, func()) {
	if !cfg.Actions.UseRedisGuard {
		guard := services.NewMemoryInFlightGuard(cfg.Actions.InFlightTTL)
		if cfg.Actions.InFlightTTL > 0 {
			go guard.Cleanup(ctx, cfg.Actions.InFlightTTL)
		}
		return guard, func() {}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	if err := cacheRepo.Ping(ctx); err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	return services.NewCacheInFlightGuard(cacheRepo, cfg.Actions.InFlightTTL, logger), func() { _ = redisClient.Close() }
}
