package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/zeroshot-labs/label-hunter/internal/collector"
	"github.com/zeroshot-labs/label-hunter/internal/labeler"
	"github.com/zeroshot-labs/label-hunter/internal/nli"
	"github.com/zeroshot-labs/label-hunter/internal/processor"
	"github.com/zeroshot-labs/label-hunter/internal/reader"
	"github.com/zeroshot-labs/label-hunter/internal/storage/factory"
	"github.com/zeroshot-labs/label-hunter/pkg/textclean"
)

func main() {
	appSettings := NewAppConfig()

	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	taskFile, err := os.Open(cfg.TaskPath)
	if err != nil {
		slog.Error("failed to read task configuration file", "error", err)
		os.Exit(1)
	}

	taskCfg, err := reader.NewYAMLTaskLoader(taskFile).Load(true)
	if err != nil {
		slog.Error("failed to load task configuration", "error", err)
		os.Exit(1)
	}

	dataFile, err := os.Open(cfg.DatasetPath)
	if err != nil {
		slog.Error("failed to read dataset file", "error", err)
		os.Exit(1)
	}

	source := newSource(cfg, taskCfg, dataFile)
	c := collector.NewDocumentCollector(source)

	pipeline, err := newPipeline(cfg, taskCfg, c)
	if err != nil {
		slog.Error("failed to create pipeline", "error", err)
		os.Exit(1)
	}

	if err := pipeline.Run(ctx); err != nil {
		slog.Error("failed to run pipeline", "error", err)
		os.Exit(1)
	}
}

func newSource(cfg *TagImportConfig, taskCfg *reader.TaskConfig, dataFile *os.File) *reader.DocumentSource {
	opts := []reader.SourceOption{
		reader.WithSourceName(filepath.Base(cfg.DatasetPath)),
		reader.WithCleaner(textclean.Clean),
		reader.WithTokenRange(taskCfg.Source.MinTokens, taskCfg.Source.MaxTokens),
	}
	if taskCfg.Source.TextColumn != "" {
		opts = append(opts, reader.WithTextColumn(taskCfg.Source.TextColumn))
	}
	if taskCfg.Source.SampleSize > 0 {
		opts = append(opts, reader.WithSample(taskCfg.Source.SampleSize, taskCfg.Source.SampleSeed))
	}

	return reader.NewDocumentSource(reader.NewCSVReader(dataFile), opts...)
}

func newPipeline(cfg *TagImportConfig, taskCfg *reader.TaskConfig, c *collector.DocumentCollector) (processor.Pipeline, error) {
	slog.Info("Creating pipeline", "storageType", cfg.StorageConfig.Type, "labels", len(taskCfg.Task.Labels))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storer, err := factory.NewStorer(ctx, &cfg.StorageConfig)
	if err != nil {
		slog.Error("failed to create storer", "error", err)
		return nil, err
	}

	client, err := newInferenceClient(cfg.NLIConfig)
	if err != nil {
		slog.Error("failed to create NLI client", "error", err)
		return nil, err
	}

	l := labeler.New(client,
		labeler.WithModel(cfg.NLIConfig.Model),
		labeler.WithWorkers(cfg.Workers),
		labeler.WithFailurePolicy(labeler.SkipAndReport),
	)

	opts := []processor.PipelineOption{
		processor.WithName("tag-import"),
		processor.WithChunkSize(cfg.ChunkSize),
	}
	if taskCfg.Task.Threshold != nil {
		opts = append(opts, processor.WithThreshold(*taskCfg.Task.Threshold))
	}

	return processor.NewLabelPipeline(c, l, storer, taskCfg.Task.Labels, taskCfg.Template(), opts...), nil
}

func newInferenceClient(cfg nli.Config) (*nli.InferenceClient, error) {
	var opts []nli.InferenceOption
	if cfg.TimeoutSecs != nil {
		opts = append(opts, nli.WithTimeout(time.Duration(*cfg.TimeoutSecs)*time.Second))
	}
	if cfg.MaxInputChars != nil {
		opts = append(opts, nli.WithMaxInputChars(*cfg.MaxInputChars))
	}

	return nli.NewInferenceClient(cfg.BaseURL, opts...)
}
