package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/zeroshot-labs/label-hunter/internal/nli"
	"github.com/zeroshot-labs/label-hunter/internal/storage/factory"
	"github.com/zeroshot-labs/label-hunter/pkg/config/env"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type TagImportConfig struct {
	DatasetPath string
	TaskPath    string

	ChunkSize int
	Workers   int

	NLIConfig nli.Config
	factory.StorageConfig
}

func (as *AppConfig) Load() (*TagImportConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/tag_import/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		slog.Error("Failed to load storage configuration from environment", "error", err)
		return nil, err
	}

	nliCfg, err := nli.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load NLI configuration from environment", "error", err)
		return nil, err
	}

	taskPath := os.Getenv("TASK_CONFIG_PATH")
	if taskPath == "" {
		slog.Error("TASK_CONFIG_PATH environment variable is not set")
		return nil, fmt.Errorf("TASK_CONFIG_PATH environment variable is not set")
	}

	dsPath := os.Getenv("DATASET_PATH")
	if dsPath == "" {
		slog.Error("DATASET_PATH environment variable is not set")
		return nil, fmt.Errorf("DATASET_PATH environment variable is not set")
	}

	chunkSize, err := strconv.Atoi(os.Getenv("CHUNK_SIZE"))
	if err != nil {
		chunkSize = 64
	}

	workers, err := strconv.Atoi(os.Getenv("SCORING_WORKERS"))
	if err != nil {
		workers = 1
	}

	return &TagImportConfig{
		DatasetPath:   dsPath,
		TaskPath:      taskPath,
		ChunkSize:     chunkSize,
		Workers:       workers,
		NLIConfig:     *nliCfg,
		StorageConfig: *storageCfg,
	}, nil
}
