package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/lshepard/theaiwhotaughtme/api/swagger"
	"github.com/lshepard/theaiwhotaughtme/internal/feed"
	"github.com/lshepard/theaiwhotaughtme/internal/handler"
	internalmiddleware "github.com/lshepard/theaiwhotaughtme/internal/middleware"
	"github.com/lshepard/theaiwhotaughtme/internal/places"
	"github.com/lshepard/theaiwhotaughtme/internal/provider"
	"github.com/lshepard/theaiwhotaughtme/internal/repository"
	"github.com/lshepard/theaiwhotaughtme/internal/service"
	"github.com/lshepard/theaiwhotaughtme/pkg/cache"
	"github.com/lshepard/theaiwhotaughtme/pkg/config"
	"github.com/lshepard/theaiwhotaughtme/pkg/database"
	"github.com/lshepard/theaiwhotaughtme/pkg/logger"
	corsmiddleware "github.com/lshepard/theaiwhotaughtme/pkg/middleware/cors"
	reqidmiddleware "github.com/lshepard/theaiwhotaughtme/pkg/middleware/requestid"
)

// @title The AI Who Taught Me API
// @version 1.0.0
// @description Backend for the podcast site: episodes, story submissions, interview scheduling
// @BasePath /
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

	if err := repository.Migrate(context.Background(), db); err != nil {
		logr.Sugar().Fatalw("failed to apply schema", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The feed degrades to per-request fetches without redis.
		logr.Sugar().Warnw("redis unavailable, feed caching disabled", "error", err)
		redisClient = nil
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	var schedulingProvider provider.Provider
	switch cfg.Scheduling.Provider {
	case config.ProviderCalcom:
		schedulingProvider = provider.NewCalcom(cfg.Scheduling, logr)
	default:
		schedulingProvider = provider.NewCalendly(cfg.Scheduling, logr)
	}

	storyRepo := repository.NewStoryRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	availabilitySvc := service.NewAvailabilityService(schedulingProvider, provider.NewMock(), cfg.Scheduling, metricsSvc, logr)
	bookingSvc := service.NewBookingService(schedulingProvider, storyRepo, nil, metricsSvc, logr)
	storySvc := service.NewStoryService(storyRepo, nil, logr)
	episodeSvc := service.NewEpisodeService(
		feed.NewFetcher(cfg.Feed, cfg.Scheduling.UpstreamTimeout),
		cacheRepo, cfg.Feed.CacheTTL, metricsSvc, logr)
	placesSvc := service.NewPlacesService(
		places.NewClient(cfg.Places, cfg.Scheduling.UpstreamTimeout, logr), metricsSvc, logr)

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	storyHandler := handler.NewStoryHandler(storySvc)
	feedHandler := handler.NewFeedHandler(episodeSvc)
	placesHandler := handler.NewPlacesHandler(placesSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/feed.xml", feedHandler.Feed)

	api := r.Group(cfg.APIPrefix)
	api.GET("/availability", availabilityHandler.List)
	api.POST("/booking", bookingHandler.Create)
	api.POST("/stories/submit", storyHandler.Submit)
	api.POST("/submit-story", storyHandler.SubmitLegacy)
	api.GET("/stories/:id", storyHandler.Get)
	api.GET("/places/autocomplete", placesHandler.Autocomplete)
	api.GET("/episodes", feedHandler.Episodes)

	admin := api.Group("/admin", internalmiddleware.BasicAuth(cfg.Admin))
	admin.GET("/stories", storyHandler.AdminList)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env,
		"provider", schedulingProvider.Name(), "mock_fallback", cfg.Scheduling.AllowMockFallback)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
