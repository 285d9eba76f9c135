package api

import (
	"github.com/gin-gonic/gin"

	"github.com/EtyalaRahul/hackthon-project-shs/internal/config"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/httpserver"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/logger"
	"github.com/EtyalaRahul/hackthon-project-shs/internal/telemetry"
)

// NewServer creates the scoring service HTTP server with standard
// middleware, health endpoints, and all API routes wired in.
func NewServer(handler *Handler, cfg *config.Config, tp *telemetry.Provider, log logger.Logger) *httpserver.Server {
	serverCfg := httpserver.NewConfig(cfg.Service.Name, cfg.Service.Port)
	serverCfg.Debug = cfg.Service.Debug
	serverCfg.ServiceVersion = cfg.Service.Version
	serverCfg.ShutdownTimeout = cfg.Service.ShutdownTimeout

	return httpserver.NewServer(serverCfg, log, func(router *gin.Engine) {
		SetupRoutes(router, handler, tp, cfg.Auth.JWTSecret)
	})
}

// SetupRoutes configures service routes. The /api/v1 group is protected
// with JWT when a secret is configured; health and metrics stay public.
func SetupRoutes(router *gin.Engine, handler *Handler, tp *telemetry.Provider, jwtSecret string) {
	router.GET("/ready", handler.ReadyCheck)
	if tp != nil {
		router.GET("/metrics", gin.WrapH(tp.Handler()))
	}

	v1 := httpserver.ProtectedGroup(router, "/api/v1", jwtSecret)

	// Scoring endpoints
	score := v1.Group("/score")
	score.POST("", handler.Score)            // POST /api/v1/score
	score.POST("/batch", handler.ScoreBatch) // POST /api/v1/score/batch
	score.POST("/csv", handler.ScoreCSV)     // POST /api/v1/score/csv

	// Lead advisor chat endpoints
	chatGroup := v1.Group("/chat")
	chatGroup.POST("", handler.Chat)                        // POST /api/v1/chat
	chatGroup.POST("/suggestions", handler.ChatSuggestions) // POST /api/v1/chat/suggestions

	// Catalog summary for the dashboard
	v1.GET("/catalog", handler.GetCatalog) // GET /api/v1/catalog
}
