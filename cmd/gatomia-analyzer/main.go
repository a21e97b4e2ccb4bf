package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/pflag"

	"github.com/eitatech/gatomia-analyzer/pkg/analysis"
	"github.com/eitatech/gatomia-analyzer/pkg/config"
	"github.com/eitatech/gatomia-analyzer/pkg/loader"
	"github.com/eitatech/gatomia-analyzer/pkg/logging"
	"github.com/eitatech/gatomia-analyzer/pkg/model"
	"github.com/eitatech/gatomia-analyzer/pkg/output"
	"github.com/eitatech/gatomia-analyzer/pkg/watcher"
	"github.com/eitatech/gatomia-analyzer/pkg/web"
)

func main() {
	flags := pflag.NewFlagSet("gatomia-analyzer", pflag.ExitOnError)
	flags.String("tree", "module_tree.json", "Path to the module tree JSON document")
	flags.String("graph", "dependency_graph.json", "Path to the dependency graph JSON document")
	flags.Bool("web", false, "Start web server instead of printing to console")
	flags.Int("port", 8080, "Port for web server (only used with --web)")
	flags.Bool("watch", false, "Re-analyze when the input files change (only used with --web)")
	flags.Bool("open", true, "Open the browser when starting the web server")
	flags.CountP("verbose", "v", "Increase logging verbosity")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	applyVerbosity(cfg)

	if cfg.WebMode {
		runWebServer(cfg)
		return
	}

	a, err := runAnalysis(cfg.TreePath, cfg.GraphPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	analyses := make(map[string]model.ModuleAnalysis)
	for path := range a.TreeIndex().Modules {
		analyses[path] = a.AnalyzeModule(path)
	}

	output.PrintAnalysisReport(a.Summary(), a.ProcessingOrder(), analyses)
}

func applyVerbosity(cfg *config.Config) {
	switch cfg.Verbosity {
	case "debug":
		logging.SetLevel(slog.LevelDebug)
	case "warn":
		logging.SetLevel(slog.LevelWarn)
	case "error":
		logging.SetLevel(slog.LevelError)
	default:
		if cfg.VerboseCnt > 0 {
			logging.SetLevel(slog.LevelDebug)
		}
	}
}

func runAnalysis(treePath, graphPath string) (*analysis.Analyzer, error) {
	tree, graph, err := loader.Load(treePath, graphPath)
	if err != nil {
		return nil, err
	}

	logging.Debug("inputs loaded", "modules", len(tree), "components", len(graph))

	return analysis.New(tree, graph), nil
}

func runWebServer(cfg *config.Config) {
	server := web.NewServer()

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)

	go func() {
		server.PublishStatus("loading", "Loading input documents", 1, 2)

		a, err := runAnalysis(cfg.TreePath, cfg.GraphPath)
		if err != nil {
			logging.Error("analysis failed", "error", err)
			server.PublishStatus("error", err.Error(), 1, 2)
			return
		}

		server.PublishStatus("analyzing", "Building dependency indexes", 2, 2)
		server.SetAnalyzer(a)

		summary := a.Summary()
		server.PublishStats(summary.ModuleCount, summary.ComponentCount)
		server.PublishStatus("ready", "Analysis complete", 2, 2)
		logging.Info("analysis complete",
			"modules", summary.ModuleCount,
			"components", summary.ComponentCount)

		if cfg.Watch {
			watchInputs(cfg, server)
		}
	}()

	if cfg.OpenBrowser {
		go func() {
			time.Sleep(500 * time.Millisecond)
			openBrowser(url)
		}()
	}

	if err := server.Start(cfg.Port); err != nil {
		logging.Fatal("failed to start server", "error", err)
	}
}

// watchInputs re-runs the full analysis whenever either input file is
// rewritten. There is no incremental path; a change invalidates everything.
func watchInputs(cfg *config.Config, server *web.Server) {
	ctx := context.Background()

	iw, err := watcher.NewInputWatcher(cfg.TreePath, cfg.GraphPath)
	if err != nil {
		logging.Error("failed to create input watcher", "error", err)
		return
	}
	if err := iw.Start(ctx); err != nil {
		logging.Error("failed to start input watcher", "error", err)
		return
	}

	debouncer := watcher.NewDebouncer(iw.Events(), 250*time.Millisecond, 2*time.Second)
	debouncer.Start(ctx)

	for event := range debouncer.Output() {
		logging.Info("input files changed, re-analyzing", "paths", len(event.Paths))
		server.PublishStatus("loading", "Re-analyzing after input change", 1, 2)

		a, err := runAnalysis(cfg.TreePath, cfg.GraphPath)
		if err != nil {
			logging.Error("re-analysis failed", "error", err)
			server.PublishStatus("error", err.Error(), 1, 2)
			continue
		}

		server.SetAnalyzer(a)
		summary := a.Summary()
		server.PublishStats(summary.ModuleCount, summary.ComponentCount)
		server.PublishStatus("ready", "Analysis complete", 2, 2)
	}
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	case "linux":
		cmd = "xdg-open"
		args = []string{url}
	case "windows":
		cmd = "cmd"
		args = []string{"/c", "start", url}
	default:
		logging.Warn("cannot open browser on platform", "platform", runtime.GOOS)
		return
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		logging.Warn("failed to open browser", "error", err)
	}
}
