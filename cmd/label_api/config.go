package main

import (
	"log/slog"
	"os"

	"github.com/zeroshot-labs/label-hunter/internal/nli"
	"github.com/zeroshot-labs/label-hunter/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type LabelApiConfig struct {
	NLIConfig nli.Config
}

func (as *AppConfig) Load() (*LabelApiConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/label_api/.env")
	if err != nil {
		slog.Info("Failed to load .env environment variables, continuing with existing environment variables", "error", err)
	}

	nliCfg, err := nli.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load NLI configuration from environment", "error", err)
		return nil, err
	}

	return &LabelApiConfig{
		NLIConfig: *nliCfg,
	}, nil
}
