package app

import (
	"github.com/goalflow-ai/goalflow-backend/internal/engine"
	httpH "github.com/goalflow-ai/goalflow-backend/internal/http/handlers"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Decision *httpH.DecisionHandler
}

func wireHandlers(log *logger.Logger, eng *engine.Engine, reposet Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Decision: httpH.NewDecisionHandler(log, eng, reposet.Decision),
	}
}
