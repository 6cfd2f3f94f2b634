package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"depthlint/internal/config"
	"depthlint/internal/history"
	"depthlint/internal/lint"
	"depthlint/internal/observability"
	"depthlint/internal/output"
	"depthlint/internal/parser"
	"depthlint/internal/scan"
	"depthlint/internal/watcher"
)

// App wires the scanner, outputs, history store and watch mode together.
type App struct {
	cfg     *config.Config
	rule    *lint.MaxDepthRule
	scanner *scan.Scanner
	store   *history.Store
	obs     *observability.Server
	watcher *watcher.Watcher
	limiter *watcher.Limiter

	tracingShutdown func(context.Context) error

	mu   sync.Mutex
	last *scan.Result
}

func NewApp(cfg *config.Config) (*App, error) {
	rule := lint.NewMaxDepthRule(cfg.MaxDepth)

	loader := parser.NewGrammarLoader()
	scanner, err := scan.NewScanner(
		parser.NewParser(loader),
		[]lint.Rule{rule},
		cfg.Exclude.Dirs,
		cfg.Exclude.Files,
	)
	if err != nil {
		return nil, fmt.Errorf("build scanner: %w", err)
	}

	app := &App{
		cfg:     cfg,
		rule:    rule,
		scanner: scanner,
		limiter: watcher.NewLimiter(cfg.Watch.RescanRate, cfg.Watch.RescanBurst),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		app.store = store
	}

	shutdown, err := observability.InitTracing(context.Background(), cfg.Observability.OTLPEndpoint, VERSION)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	app.tracingShutdown = shutdown

	return app, nil
}

// RunScan performs one full scan, records it, and refreshes outputs.
func (a *App) RunScan(ctx context.Context) (*scan.Result, error) {
	result, err := a.scanner.Scan(ctx, a.cfg.Paths)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.last = result
	a.mu.Unlock()

	if a.store != nil {
		_, err := a.store.SaveRun(history.Run{
			MaxDepth:     a.rule.Limit(),
			FileCount:    result.Files,
			FindingCount: len(result.Findings),
			Duration:     result.Duration,
		})
		if err != nil {
			slog.Warn("failed to record scan history", "error", err)
		}
	}

	if a.obs != nil {
		a.obs.SetHealth(result.Files, len(result.Findings))
	}

	if err := a.writeOutputs(result); err != nil {
		slog.Error("failed to write outputs", "error", err)
	}

	return result, nil
}

func (a *App) writeOutputs(result *scan.Result) error {
	if a.cfg.Output.TSV != "" {
		if err := os.WriteFile(a.cfg.Output.TSV, []byte(output.TSV(result.Findings)), 0o644); err != nil {
			return fmt.Errorf("write tsv: %w", err)
		}
	}

	if a.cfg.Output.SARIF != "" {
		root, _ := os.Getwd()
		doc, err := output.SARIF(root, VERSION, result.Findings)
		if err != nil {
			return fmt.Errorf("render sarif: %w", err)
		}
		if err := os.WriteFile(a.cfg.Output.SARIF, doc, 0o644); err != nil {
			return fmt.Errorf("write sarif: %w", err)
		}
	}

	return nil
}

// StartObservability exposes /metrics and /health when an address is
// configured. Watch mode only.
func (a *App) StartObservability() {
	if a.cfg.Observability.MetricsAddr == "" {
		return
	}
	a.obs = observability.NewServer(a.cfg.Observability.MetricsAddr)
	a.obs.Start()
}

// StartWatcher begins watching the scan paths; every debounced change
// batch triggers a rescan, gated by the rate limiter, and onUpdate is
// called with the fresh result.
func (a *App) StartWatcher(ctx context.Context, onUpdate func(*scan.Result)) error {
	w, err := watcher.NewWatcher(
		a.cfg.Watch.Debounce,
		a.cfg.Exclude.Dirs,
		a.cfg.Exclude.Files,
		func(paths []string) {
			if !a.relevantChange(paths) {
				return
			}
			if !a.limiter.Allow() {
				observability.RescansThrottledTotal.Inc()
				slog.Debug("rescan throttled")
				return
			}
			result, err := a.RunScan(ctx)
			if err != nil {
				slog.Error("rescan failed", "error", err)
				return
			}
			if onUpdate != nil {
				onUpdate(result)
			}
		},
	)
	if err != nil {
		return err
	}

	a.watcher = w
	return w.Watch(a.cfg.Paths)
}

// relevantChange filters out batches that touch no lintable file, e.g.
// editor lock files.
func (a *App) relevantChange(paths []string) bool {
	for _, p := range paths {
		if a.scanner.Lintable(p) {
			return true
		}
	}
	return false
}

func (a *App) LastResult() *scan.Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

func (a *App) Close(ctx context.Context) {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.obs != nil {
		_ = a.obs.Stop(ctx)
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(ctx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}
}
