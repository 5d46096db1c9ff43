package app

import (
	"fmt"
	"os"
	"strings"

	redisclient "github.com/goalflow-ai/goalflow-backend/internal/clients/redis"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/openai"
)

type Clients struct {
	OpenAI        openai.Client
	DecisionCache redisclient.DecisionCache
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	ai, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	// Redis is an accelerator, not a dependency: without it the exact tier
	// still works through Postgres.
	var cache redisclient.DecisionCache
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		c, err := redisclient.NewDecisionCache(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis decision cache: %w", err)
		}
		cache = c
	}

	return Clients{
		OpenAI:        ai,
		DecisionCache: cache,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.DecisionCache != nil {
		_ = c.DecisionCache.Close()
	}
}
