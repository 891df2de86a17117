package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/ihs-frontdesk-api/api/swagger"
	"github.com/noah-isme/ihs-frontdesk-api/internal/handler"
	"github.com/noah-isme/ihs-frontdesk-api/internal/middleware"
	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	"github.com/noah-isme/ihs-frontdesk-api/internal/repository"
	"github.com/noah-isme/ihs-frontdesk-api/internal/service"
	"github.com/noah-isme/ihs-frontdesk-api/pkg/cache"
	"github.com/noah-isme/ihs-frontdesk-api/pkg/config"
	"github.com/noah-isme/ihs-frontdesk-api/pkg/database"
	"github.com/noah-isme/ihs-frontdesk-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ihs-frontdesk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ihs-frontdesk-api/pkg/middleware/requestid"
)

// @title IHS Front Desk API
// @version 1.0.0
// @description Entry logging for the Institute of Health Sciences front desk
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	metricsService := service.NewMetricsService()

	var cacheRepo *repository.CacheRepository
	if cfg.Reports.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, report caching disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}
	var cacheService *service.CacheService
	if cacheRepo != nil {
		cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Reports.CacheTTL, logr, true)
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(db)
	entryLogRepo := repository.NewEntryLogRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	fineRepo := repository.NewFineRepository(db)
	themeRepo := repository.NewThemeRepository(db)
	userRepo := repository.NewUserRepository(db)

	studentService := service.NewStudentService(studentRepo, validate, logr, cfg.FrontDesk.IDRetryLimit)
	scanService := service.NewScanService(studentRepo, entryLogRepo, cacheService, metricsService, logr)
	entryLogService := service.NewEntryLogService(entryLogRepo, logr)
	visitorService := service.NewVisitorService(visitorRepo, cacheService, metricsService, logr, cfg.FrontDesk.IDRetryLimit)
	fineService := service.NewFineService(fineRepo, studentRepo, logr)
	reportService := service.NewReportService(visitorRepo, entryLogRepo, cacheService, logr, cfg.Reports.ChartDays)
	exportService := service.NewExportService(visitorRepo, fineRepo, reportService, logr)
	themeService := service.NewThemeService(themeRepo, logr)
	authService := service.NewAuthService(userRepo, validate, logr, cfg.JWT.Secret, cfg.JWT.Expiration)

	if cfg.FrontDesk.SeedAdmin {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureDefaultAdmin(ctx); err != nil {
			logr.Error("failed to seed default admin", zap.Error(err))
		}
		cancel()
	}

	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService, scanService, entryLogService)
	visitorHandler := handler.NewVisitorHandler(visitorService)
	fineHandler := handler.NewFineHandler(fineService)
	reportHandler := handler.NewReportHandler(reportService)
	exportHandler := handler.NewExportHandler(exportService)
	themeHandler := handler.NewThemeHandler(themeService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	// Reception desk routes need no login so the gate keeps moving.
	api.POST("/auth/login", authHandler.Login)
	api.POST("/students/scan", studentHandler.Scan)
	api.GET("/students/departments", studentHandler.Departments)
	api.POST("/visitors/check-in", visitorHandler.CheckIn)
	api.POST("/visitors/:id/check-out", visitorHandler.CheckOut)
	api.GET("/visitors/active", visitorHandler.Active)
	api.GET("/visitors/types", visitorHandler.Types)
	api.GET("/reports/today", reportHandler.Today)
	api.GET("/theme", themeHandler.Get)

	protected := api.Group("")
	protected.Use(middleware.JWT(authService))
	{
		protected.POST("/auth/change-password", authHandler.ChangePassword)
		protected.GET("/auth/me", authHandler.Me)

		protected.GET("/students", studentHandler.List)
		protected.POST("/students", studentHandler.Register)
		protected.POST("/students/bulk", studentHandler.BulkImport)
		protected.GET("/students/logs", studentHandler.Logs)
		protected.PUT("/students/:id", studentHandler.Update)
		protected.DELETE("/students/:id", studentHandler.Delete)

		protected.GET("/visitors", visitorHandler.List)
		protected.PUT("/visitors/:id", visitorHandler.Update)
		protected.DELETE("/visitors/:id", visitorHandler.Delete)

		protected.POST("/fines", fineHandler.Add)
		protected.POST("/fines/scan", fineHandler.AddFromScan)
		protected.GET("/fines", fineHandler.List)
		protected.GET("/fines/types", fineHandler.Types)

		protected.GET("/reports/daily", reportHandler.Daily)
		protected.GET("/reports/chart", reportHandler.Chart)

		protected.GET("/exports/visitors", exportHandler.Visitors)
		protected.GET("/exports/fines", exportHandler.Fines)
		protected.GET("/exports/daily-report", exportHandler.DailyReport)

		admin := protected.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			admin.PUT("/theme", themeHandler.Update)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
