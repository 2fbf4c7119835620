package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/brewpulse/backend/internal/acquire"
	"github.com/brewpulse/backend/internal/config"
	"github.com/brewpulse/backend/internal/http/handlers"
	"github.com/brewpulse/backend/internal/http/middleware"
	"github.com/brewpulse/backend/internal/service"
	"github.com/brewpulse/backend/internal/snapshot"

	_ "github.com/brewpulse/backend/docs"
)

func Router(cfg config.Config, cache *snapshot.Cache, loader *service.Loader, fetcher *acquire.Fetcher, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Cache:            cache,
		Loader:           loader,
		Fetcher:          fetcher,
		Validator:        validator.New(),
		Logger:           logger,
		ExcludedCampaign: cfg.ExcludedCampaign,
		MaxUploadSizeMB:  cfg.MaxUploadSizeMB,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/dashboard", h.Dashboard)
		api.GET("/trends", h.Trends)
		api.GET("/hotspots", h.Hotspots)
		api.GET("/masterdata", h.MasterData)
		api.GET("/validation", h.Validation)
		api.GET("/data-status", h.DataStatus)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/datasets", h.UploadDataset)
		admin.POST("/datasets/fetch", h.FetchDataset)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
