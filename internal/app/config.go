package app

import (
	"github.com/goalflow-ai/goalflow-backend/internal/platform/envutil"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
)

type Config struct {
	Port          string
	Environment   string
	Version       string
	PolicyVersion string

	// Path to an additive YAML pattern overlay; empty means seed tables only.
	GatePatternsFile string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:             envutil.Str("PORT", "8080"),
		Environment:      envutil.Str("APP_ENV", "development"),
		Version:          envutil.Str("APP_VERSION", "dev"),
		PolicyVersion:    envutil.Str("POLICY_VERSION", "p1"),
		GatePatternsFile: envutil.Str("GATE_PATTERNS_FILE", ""),
	}
	log.Info("config loaded",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"policy_version", cfg.PolicyVersion,
	)
	return cfg
}
