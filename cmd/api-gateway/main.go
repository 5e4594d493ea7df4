package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campuskit/timetable-api/api/swagger"
	"github.com/campuskit/timetable-api/internal/handler"
	internalmiddleware "github.com/campuskit/timetable-api/internal/middleware"
	"github.com/campuskit/timetable-api/internal/models"
	"github.com/campuskit/timetable-api/internal/repository"
	"github.com/campuskit/timetable-api/internal/service"
	"github.com/campuskit/timetable-api/pkg/cache"
	"github.com/campuskit/timetable-api/pkg/config"
	"github.com/campuskit/timetable-api/pkg/database"
	"github.com/campuskit/timetable-api/pkg/jobs"
	"github.com/campuskit/timetable-api/pkg/logger"
	corsmiddleware "github.com/campuskit/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campuskit/timetable-api/pkg/middleware/requestid"
)

// @title Campuskit Timetable API
// @version 1.0.0
// @description Timetable generation and conflict engine for section grids
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

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, timetable cache disabled", "error", err)
		redisClient = nil
	}

	timetableRepo := repository.NewTimetableRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	generatorSvc := service.NewGeneratorService(timetableRepo, facultyRepo, cacheRepo, nil, logr, metricsSvc, service.GeneratorConfig{
		Days:          cfg.Generator.Days,
		PeriodsPerDay: cfg.Generator.PeriodsPerDay,
		BreakPeriods:  cfg.Generator.BreakPeriods,
		LunchPeriod:   cfg.Generator.LunchPeriod,
		NodeBudget:    cfg.Generator.NodeBudget,
		RunTimeout:    cfg.Generator.RunTimeout,
		ProposalTTL:   cfg.Generator.ProposalTTL,
	})

	queue := jobs.NewQueue("generation", generatorSvc.HandleGenerateJob, jobs.QueueConfig{
		Workers:    cfg.Generator.WorkerConcurrency,
		BufferSize: cfg.Generator.QueueSize,
		JobTimeout: cfg.Generator.RunTimeout,
		OnDrop:     generatorSvc.HandleDroppedJob,
		Logger:     logr,
	})
	queue.Start(context.Background())
	defer queue.Stop()
	generatorSvc.AttachQueue(queue)

	timetableCfg := service.TimetableServiceConfig{CacheTTL: cfg.Cache.TTL}
	var timetableSvc *service.TimetableService
	if cfg.Cache.Enabled {
		timetableSvc = service.NewTimetableService(timetableRepo, cacheRepo, nil, logr, timetableCfg)
	} else {
		timetableSvc = service.NewTimetableService(timetableRepo, nil, nil, logr, timetableCfg)
	}

	facultySvc := service.NewFacultyService(facultyRepo, nil, logr)

	generatorHandler := handler.NewGeneratorHandler(generatorSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	facultyHandler := handler.NewFacultyHandler(facultySvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(cfg.JWT.Secret))

	admin := internalmiddleware.RequireRoles(models.RoleAdmin)
	staff := internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleFaculty)
	anyRole := internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleFaculty, models.RoleStudent)

	generate := api.Group("/timetables")
	{
		generate.POST("/generate", admin, generatorHandler.Generate)
		generate.POST("/generate/async", admin, generatorHandler.GenerateAsync)
		generate.GET("/generate/jobs/:jobId", admin, generatorHandler.JobStatus)
		generate.POST("/save", admin, generatorHandler.Save)
		generate.POST("/validate", admin, generatorHandler.Validate)

		generate.GET("", anyRole, timetableHandler.List)
		generate.GET("/:id", anyRole, timetableHandler.Get)
		generate.GET("/:id/faculty/:facultyId", internalmiddleware.SelfOrRoles("facultyId", models.RoleAdmin), timetableHandler.FacultySchedule)
		generate.GET("/:id/export", staff, timetableHandler.Export)
		generate.PATCH("/:id/status", admin, timetableHandler.UpdateStatus)
		generate.DELETE("/:id", admin, timetableHandler.Delete)
	}

	roster := api.Group("/faculty")
	{
		roster.GET("", staff, facultyHandler.List)
		roster.GET("/:facultyId", internalmiddleware.SelfOrRoles("facultyId", models.RoleAdmin), facultyHandler.Get)
		roster.POST("", admin, facultyHandler.Create)
		roster.PUT("/:facultyId", admin, facultyHandler.Update)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
