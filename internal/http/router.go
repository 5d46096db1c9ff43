package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/goalflow-ai/goalflow-backend/internal/http/handlers"
	httpMW "github.com/goalflow-ai/goalflow-backend/internal/http/middleware"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	ServiceName     string
	HealthHandler   *httpH.HealthHandler
	DecisionHandler *httpH.DecisionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "goalflow"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api/v1")
	{
		if cfg.DecisionHandler != nil {
			api.POST("/intents/evaluate", cfg.DecisionHandler.EvaluateIntent)
			api.GET("/decisions", cfg.DecisionHandler.ListDecisions)
			api.GET("/decisions/:id", cfg.DecisionHandler.GetDecision)
		}
	}

	return r
}
