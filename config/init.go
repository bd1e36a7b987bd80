package config

import (
	"hotel/middleware"
	"hotel/services/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

// InitApp tạo gin engine với CORS, request logger và bộ lập lịch cron.
func InitApp(cfg *Config, log *logger.ZapLogger) (*gin.Engine, *cron.Cron) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log.Zap()))

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", middleware.RequestIDHeader)
	configCors.AllowCredentials = true
	if len(cfg.CORSOrigins) > 0 {
		configCors.AllowOrigins = cfg.CORSOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	c := cron.New()

	return router, c
}
