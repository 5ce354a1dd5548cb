package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartcms/smartcontent/internal/client"
	"github.com/smartcms/smartcontent/internal/config"
	"github.com/smartcms/smartcontent/internal/domain"
	"github.com/smartcms/smartcontent/internal/handler"
	"github.com/smartcms/smartcontent/internal/middleware"
	"github.com/smartcms/smartcontent/internal/repository"
	"github.com/smartcms/smartcontent/internal/routes"
	"github.com/smartcms/smartcontent/internal/scheduler"
	"github.com/smartcms/smartcontent/internal/service"
	"github.com/smartcms/smartcontent/pkg/jwt"
	"github.com/smartcms/smartcontent/pkg/logger"
	pkgredis "github.com/smartcms/smartcontent/pkg/redis"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if loaded := config.LoadDotEnv(); len(loaded) > 0 {
		log.Printf("Loaded env files: %v", loaded)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitStructured(cfg.App.Env)
	appLog := logger.GetLogger()

	// Database
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := db.AutoMigrate(
		&domain.Content{},
		&domain.ContentHistory{},
		&domain.ContentStatusAudit{},
	); err != nil {
		appLog.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Redis (rate limiting + scheduler leader lock)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize,
	)
	if err != nil {
		appLog.Warn().Err(err).Msg("Redis unavailable, continuing without rate limiting and leader lock")
		redisClient = nil
	}

	// Downstream clients
	aiClient := client.NewAIClient(cfg.Clients.SmartAIURL, cfg.Clients.Timeout.Std())
	mediaClient := client.NewMediaClient(cfg.Clients.SmartMediaURL, cfg.Clients.Timeout.Std())

	// Repositories
	contentRepo := repository.NewContentRepository(db)
	historyRepo := repository.NewContentHistoryRepository(db)
	auditRepo := repository.NewStatusAuditRepository(db)
	txRunner := repository.NewTxRunner(db)

	// Services
	slugGen := service.NewSlugGenerator(contentRepo, aiClient)
	contentService := service.NewContentService(contentRepo, historyRepo, txRunner, slugGen)
	lifecycleService := service.NewLifecycleService(contentRepo, auditRepo, mediaClient, service.LifecycleConfig{
		SweepSafetyWindow: cfg.Scheduler.SweepSafetyWindow.Std(),
		BinRetention:      cfg.Scheduler.BinRetention.Std(),
	})

	// Handlers
	contentHandler := handler.NewContentHandler(contentService)
	lifecycleHandler := handler.NewLifecycleHandler(lifecycleService)

	jwtManager := jwt.NewManager(cfg.JWT.Secret)

	// Router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestLogger())
	routes.Setup(router, contentHandler, lifecycleHandler, jwtManager, redisClient)

	// Background tasks
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		var locker scheduler.Locker
		if redisClient != nil {
			locker = scheduler.NewRedisLocker(redisClient)
		}
		sched = scheduler.New(locker)
		sched.Register("publish-scheduled-content", cfg.Scheduler.PublishInterval.Std(), lifecycleService.ProcessScheduledContent)
		sched.Register("purge-expired-bin", cfg.Scheduler.PurgeInterval.Std(), lifecycleService.PurgeExpired)
		sched.Start()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLog.Info().Int("port", cfg.App.Port).Str("env", cfg.App.Env).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info().Msg("Shutting down")

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error().Err(err).Msg("Forced shutdown")
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	appLog.Info().Msg("Server stopped")
}
