package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/hadir-app/hadir-api/api/swagger"
	"github.com/hadir-app/hadir-api/internal/handler"
	"github.com/hadir-app/hadir-api/internal/middleware"
	"github.com/hadir-app/hadir-api/internal/repository"
	"github.com/hadir-app/hadir-api/internal/service"
	"github.com/hadir-app/hadir-api/pkg/cache"
	"github.com/hadir-app/hadir-api/pkg/config"
	"github.com/hadir-app/hadir-api/pkg/database"
	"github.com/hadir-app/hadir-api/pkg/export"
	"github.com/hadir-app/hadir-api/pkg/logger"
	corsmiddleware "github.com/hadir-app/hadir-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hadir-app/hadir-api/pkg/middleware/requestid"
	"github.com/hadir-app/hadir-api/pkg/storage"
)

// @title Hadir API
// @version 1.0.0
// @description Employee attendance management service
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr, true)
		}
	}

	validate := validator.New()

	employeeRepo := repository.NewEmployeeRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	employeeSvc := service.NewEmployeeService(employeeRepo, cacheSvc, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, employeeRepo, cacheSvc, validate, logr)
	holidaySvc := service.NewHolidayService(holidayRepo, validate, logr)
	reportSvc := service.NewReportService(employeeRepo, attendanceRepo, holidayRepo, logr)
	exportSvc := service.NewExportService(reportSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	var archiver handler.ReportArchiver
	if cfg.Export.SigningSecret != "" {
		archiveStore, err := storage.NewArchive(cfg.Export.ArchiveDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init report archive", "error", err)
		}
		signer := storage.NewTokenSigner(cfg.Export.SigningSecret, cfg.Export.LinkTTL)
		archiveSvc := service.NewArchiveService(archiveStore, signer, logr, service.ArchiveServiceConfig{
			Retention: cfg.Export.Retention,
		})
		archiveSvc.Start(context.Background())
		defer archiveSvc.Stop()
		archiver = archiveSvc
	}
	dashboardSvc := service.NewDashboardService(employeeRepo, attendanceRepo, cacheSvc, logr, service.DashboardServiceConfig{
		CacheTTL: cfg.Dashboard.CacheTTL,
	})

	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc)
	employeeHandler := handler.NewEmployeeHandler(employeeSvc)
	reportHandler := handler.NewReportHandler(reportSvc, exportSvc, holidaySvc, archiver)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		attendance := api.Group("/attendance")
		{
			attendance.POST("/check-in", attendanceHandler.CheckIn)
			attendance.POST("/check-out", attendanceHandler.CheckOut)
			attendance.GET("", attendanceHandler.List)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", employeeHandler.List)
			employees.POST("", employeeHandler.Create)
			employees.GET("/:id", employeeHandler.Get)
			employees.PUT("/:id", employeeHandler.Update)
			employees.DELETE("/:id", employeeHandler.Delete)
		}

		reports := api.Group("/reports")
		{
			reports.GET("/monthly", reportHandler.Monthly)
			reports.GET("/monthly/export", reportHandler.Export)
			reports.GET("/exports/:token", reportHandler.Download)
			reports.GET("/holidays", reportHandler.Holidays)
			reports.POST("/holidays", reportHandler.CreateHoliday)
		}

		api.GET("/dashboard", dashboardHandler.Overview)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
