package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/querytube/insight-services/internal/config"
	"github.com/querytube/insight-services/internal/service"
	"github.com/querytube/insight-services/web"
	"github.com/rs/zerolog"
)

// NewAssistantRouter creates the gin router of the sql assistant
func NewAssistantRouter(services *service.AssistantServices, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := newEngine(log)

	askHandler := NewAskHandler(services, cfg, log)

	router.GET("/", indexHandler(cfg.WebIndex, web.AssistantIndex))
	router.GET("/health", askHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := router.Group("")
	if limiter := newLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst); limiter != nil {
		limited.Use(rateLimitMiddleware(limiter, "error"))
	}
	limited.POST("/ask", askHandler.Ask)

	return router
}

// NewSentimentRouter creates the gin router of the comment analyzer
func NewSentimentRouter(services *service.SentimentServices, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := newEngine(log)

	commentHandler := NewCommentHandler(services, cfg, log)

	router.GET("/", indexHandler(cfg.WebIndex, web.SentimentIndex))
	router.GET("/health", commentHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limited := router.Group("")
	if limiter := newLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst); limiter != nil {
		limited.Use(rateLimitMiddleware(limiter, "detail"))
	}
	limited.POST("/analyze_comments/", commentHandler.AnalyzeComments)

	return router
}

func newEngine(log zerolog.Logger) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware())

	return router
}

// indexHandler serves path when set, the embedded page otherwise
func indexHandler(path string, embedded []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if path != "" {
			c.File(path)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", embedded)
	}
}
