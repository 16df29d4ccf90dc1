// Package main Label Hunter API
// @title Label Hunter API
// @version 1.0
// @description Zero-shot multi-label classification of text documents via an external NLI inference server
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.email support@labelhunter.dev
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	_ "github.com/zeroshot-labs/label-hunter/docs"
	"github.com/zeroshot-labs/label-hunter/internal/nli"
	"github.com/zeroshot-labs/label-hunter/internal/router"
	"github.com/zeroshot-labs/label-hunter/internal/server"
	pkgserver "github.com/zeroshot-labs/label-hunter/pkg/server"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	healthChecker := pkgserver.NewOkHealthChecker()

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/healthz").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Label Hunter API is running")
	})

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	client, err := newInferenceClient(cfg.NLIConfig)
	if err != nil {
		slog.Error("Failed to create NLI client", "error", err)
		os.Exit(1)
		return
	}

	classifyRouter := router.NewClassifyRouter(s.Echo, client, router.WithModel(cfg.NLIConfig.Model))
	classifyRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
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
