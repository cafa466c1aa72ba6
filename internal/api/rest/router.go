package rest

import (
	"net/http"
	"strconv"

	"cod-fraud-system/internal/logger"
	"cod-fraud-system/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CORSMiddleware возвращает middleware для обработки CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// SetupCommonEndpoints добавляет общие endpoints (health, events, stats, metrics) к роутеру
func SetupCommonEndpoints(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/api/v1/events", func(c *gin.Context) {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
				limit = parsed
			}
		}
		c.JSON(http.StatusOK, gin.H{"events": logger.GetEvents(limit)})
	})

	router.GET("/api/v1/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, logger.GetStats())
	})
}

// SetupRouter настраивает маршруты REST API
func SetupRouter(serviceName string, handlers *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(CORSMiddleware())
	router.Use(metrics.Middleware(serviceName))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	RegisterRoutes(router.Group("/api/v1"), handlers)
	SetupCommonEndpoints(router)

	return router
}

// RegisterRoutes регистрирует маршруты оценки в группе
func RegisterRoutes(api *gin.RouterGroup, handlers *Handlers) {
	api.POST("/sessions", handlers.CreateSession)
	api.GET("/sessions/:id", handlers.GetSession)
	api.POST("/sessions/:id/ingest", handlers.IngestNext)
	api.POST("/sessions/:id/orders", handlers.ScoreOrder)
	api.GET("/sessions/:id/verdicts", handlers.ListVerdicts)
	api.GET("/sessions/:id/verdicts/:order_id", handlers.GetVerdict)
	api.GET("/sessions/:id/stats", handlers.GetSessionStats)
	api.GET("/verdicts/stats", handlers.GetServiceStats)
	api.DELETE("/verdicts", handlers.ClearVerdicts)
	api.GET("/model", handlers.GetModel)
	api.GET("/orders/generate", handlers.GenerateOrders)
	api.POST("/orders/publish", handlers.PublishOrders)
}
