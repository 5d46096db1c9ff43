package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/goalflow-ai/goalflow-backend/internal/db"
	"github.com/goalflow-ai/goalflow-backend/internal/engine"
	"github.com/goalflow-ai/goalflow-backend/internal/engine/gates"
	"github.com/goalflow-ai/goalflow-backend/internal/engine/judges"
	apphttp "github.com/goalflow-ai/goalflow-backend/internal/http"
	"github.com/goalflow-ai/goalflow-backend/internal/observability"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
)

type App struct {
	Log     *logger.Logger
	DB      *gorm.DB
	Cfg     Config
	Clients Clients
	Repos   Repos
	Engine  *engine.Engine
	Server  *apphttp.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "goalflow",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	dbsvc, err := db.NewService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := dbsvc.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("db automigrate: %w", err)
	}
	theDB := dbsvc.DB()

	clients, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)

	var overlay gates.Overlay
	if cfg.GatePatternsFile != "" {
		overlay, err = gates.LoadOverlay(cfg.GatePatternsFile)
		if err != nil {
			clients.Close()
			log.Sync()
			return nil, fmt.Errorf("load gate patterns: %w", err)
		}
	}
	gateSet, err := gates.NewSet(overlay)
	if err != nil {
		clients.Close()
		log.Sync()
		return nil, fmt.Errorf("compile gate patterns: %w", err)
	}

	judgeSet := judges.NewLLM(clients.OpenAI, log, reposet.JudgeCallLog, engine.CategoryNames())

	eng, err := engine.New(engine.Deps{
		Store:         reposet.Decision,
		HotCache:      clients.DecisionCache,
		Judges:        judgeSet,
		Gates:         gateSet,
		Log:           log,
		PolicyVersion: cfg.PolicyVersion,
	})
	if err != nil {
		clients.Close()
		log.Sync()
		return nil, fmt.Errorf("init engine: %w", err)
	}

	handlerset := wireHandlers(log, eng, reposet)
	server := apphttp.NewServer(apphttp.RouterConfig{
		Log:             log,
		ServiceName:     "goalflow",
		HealthHandler:   handlerset.Health,
		DecisionHandler: handlerset.Decision,
	})

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Engine:       eng,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("server listening", "port", a.Cfg.Port)
	return a.Server.Run(":" + a.Cfg.Port)
}

func (a *App) Shutdown(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			a.Log.Warn("http shutdown failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Clients.Close()
	if a.Log != nil {
		a.Log.Sync()
	}
}
