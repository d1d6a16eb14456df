package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bkyoung/smart-code-reviewer/internal/adapter/cli"
	"github.com/bkyoung/smart-code-reviewer/internal/adapter/dashboard"
	"github.com/bkyoung/smart-code-reviewer/internal/adapter/git"
	"github.com/bkyoung/smart-code-reviewer/internal/adapter/llm/groq"
	llmhttp "github.com/bkyoung/smart-code-reviewer/internal/adapter/llm/http"
	"github.com/bkyoung/smart-code-reviewer/internal/adapter/observability"
	"github.com/bkyoung/smart-code-reviewer/internal/adapter/store/sqlite"
	"github.com/bkyoung/smart-code-reviewer/internal/config"
	"github.com/bkyoung/smart-code-reviewer/internal/usecase/review"
	"github.com/bkyoung/smart-code-reviewer/internal/version"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrGateFailed) {
			// Redact API keys from URLs in error messages before logging
			log.Println(llmhttp.RedactURLSecrets(err.Error()))
		}
		os.Exit(1)
	}
}

func run() error {
	// Cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "scr",
		EnvPrefix:   "SCR",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	logger := observability.BuildLogger(cfg.Observability.Logging)

	var reviewer cli.Reviewer
	if cfg.HasAPIKey() {
		client := groq.NewHTTPClient(cfg.Provider.APIKey, cfg.Provider.Model)
		if cfg.Provider.BaseURL != "" {
			client.SetBaseURL(cfg.Provider.BaseURL)
		}
		if timeout, err := time.ParseDuration(cfg.HTTP.Timeout); err == nil {
			client.SetTimeout(timeout)
		}
		if logger != nil {
			client.SetLogger(logger)
		}

		engine := review.NewEngine(client)
		if logger != nil {
			engine.SetLogger(logger)
		}
		reviewer = engine
	}

	var history cli.History
	var dashboardHandler http.Handler
	if cfg.Store.Enabled {
		storeDir := filepath.Dir(cfg.Store.Path)
		if err := os.MkdirAll(storeDir, 0755); err != nil {
			log.Printf("warning: failed to create store directory: %v", err)
		} else {
			store, err := sqlite.NewStore(cfg.Store.Path)
			if err != nil {
				log.Printf("warning: failed to initialize store: %v", err)
			} else {
				defer store.Close()
				history = store
				dashboardHandler = dashboard.NewHandler(store)
			}
		}
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Reviewer:         reviewer,
		History:          history,
		Staged:           git.NewEngine("."),
		Dashboard:        dashboardHandler,
		DefaultThreshold: cfg.Review.Threshold,
		DefaultVerbose:   cfg.Review.Verbose,
		DashboardAddr:    cfg.Dashboard.Addr,
		Version:          version.Version(),
	})

	return root.ExecuteContext(ctx)
}

func defaultConfigPaths() []string {
	paths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "scr"))
	}
	return paths
}
