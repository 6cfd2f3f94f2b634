package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"depthlint/internal/config"
	"depthlint/internal/output"
	"depthlint/internal/scan"
)

var (
	configPath = flag.String("config", "./depthlint.toml", "Path to config file")
	maxDepth   = flag.Int("max-depth", -1, "Override the configured maximum import depth")
	format     = flag.String("format", "text", "Output format for a single run: text, tsv or sarif")
	watchMode  = flag.Bool("watch", false, "Keep running and rescan on file changes")
	ui         = flag.Bool("ui", false, "Enable terminal UI (implies -watch)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "0.1.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("depthlint v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logOutput := os.Stderr
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if flag.NArg() > 0 {
		cfg.Paths = flag.Args()
	}
	if *maxDepth >= 0 {
		cfg.MaxDepth = *maxDepth
	}

	ctx := context.Background()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer app.Close(ctx)

	result, err := app.RunScan(ctx)
	if err != nil {
		slog.Error("scan failed", "error", err)
		os.Exit(1)
	}

	if !*watchMode && !*ui {
		switch *format {
		case "text":
			fmt.Print(output.Text(result.Findings))
			fmt.Println(output.Summary(result.Files, len(result.Findings)))
		case "tsv":
			fmt.Print(output.TSV(result.Findings))
		case "sarif":
			root, _ := os.Getwd()
			doc, err := output.SARIF(root, VERSION, result.Findings)
			if err != nil {
				slog.Error("failed to render sarif", "error", err)
				os.Exit(1)
			}
			fmt.Println(string(doc))
		default:
			fmt.Fprintf(os.Stderr, "unknown format: %s\n", *format)
			os.Exit(2)
		}

		if len(result.Findings) > 0 {
			os.Exit(1)
		}
		return
	}

	// Watch mode
	app.StartObservability()

	if *ui {
		if err := runUI(ctx, app, result); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(output.Summary(result.Files, len(result.Findings)))
	err = app.StartWatcher(ctx, func(r *scan.Result) {
		fmt.Print(output.Text(r.Findings))
		fmt.Println(output.Summary(r.Files, len(r.Findings)))
	})
	if err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	select {}
}
