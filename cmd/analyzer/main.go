package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/cmd/common"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/analyzer"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/config"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/monitoring"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/scheduler"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/reporting"
)

const appName = "ohlc-analyzer"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:]))
}

// run executes the command and returns the process exit code
func run(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	flags := common.RegisterAnalyzerFlags(fs)

	usage := common.NewUsageFormatter(appName, "Technical indicator analysis and CALL/PUT signals for OHLC data").
		AddExample(appName+" -sample", "Analyze the bundled sample data").
		AddExample(appName+" -data prices.csv -format console,json,xlsx", "Analyze a CSV file and write reports").
		AddExample(appName+" -source bybit -symbol BTCUSDT -interval 1h -schedule \"@every 5m\" -metrics-addr :9090",
			"Re-analyze live Bybit candles every five minutes")
	fs.Usage = func() { usage.PrintUsage(fs) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if common.CheckHelpAndVersion(appName, fs, flags, usage) {
		return 0
	}
	if err := flags.Validate(); err != nil {
		common.Error("%v", err)
		return 2
	}
	common.SetupLogger(flags)

	if err := common.LoadEnvFile(*flags.EnvFile); err != nil {
		common.Warn("Continuing with system environment")
	}

	cfg, err := config.Load(*flags.ConfigFile)
	if err != nil {
		common.Error("Failed to load config: %v", err)
		return 1
	}
	flags.ApplyTo(cfg)
	if *flags.Sample {
		if err := useSampleData(cfg); err != nil {
			common.Error("Failed to write sample data: %v", err)
			return 1
		}
	}
	if err := cfg.Validate(); err != nil {
		common.Error("Invalid configuration: %v", err)
		return 1
	}

	app, err := newApp(cfg)
	if err != nil {
		common.Error("%v", err)
		return 1
	}
	defer app.Close()

	switch {
	case *flags.Reset:
		return app.reset()
	case *flags.History > 0:
		return app.history(ctx, *flags.History)
	case *flags.LoadSaved:
		return app.showSaved()
	}

	if err := app.prepare(); err != nil {
		common.Error("%v", err)
		return 1
	}

	common.Header(common.ProjectName)
	app.reports.PrintConfig(cfg.Indicators)

	var server *http.Server
	if cfg.Monitoring.MetricsAddr != "" {
		server = startMonitoring(cfg.Monitoring.MetricsAddr, app.health)
		defer shutdownMonitoring(server)
	}

	code := app.runOnce(ctx)
	if cfg.Schedule.Cron == "" {
		return code
	}

	sched := scheduler.NewScheduler(ctx, app.analyzer, app.source, app.onResult)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		common.Error("%v", err)
		return 1
	}
	sched.Start()
	common.Info("Waiting for scheduled runs (Ctrl+C to stop)")

	<-ctx.Done()
	common.Progress("Shutting down...")
	sched.Stop()
	return 0
}

func startMonitoring(addr string, health *monitoring.HealthChecker) *http.Server {
	server := &http.Server{
		Addr:              addr,
		Handler:           monitoring.NewServeMux(health),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.Error("Monitoring server: %v", err)
		}
	}()
	common.Info("Serving /metrics and /health on %s", addr)
	return server
}

func shutdownMonitoring(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		common.Warn("Monitoring server shutdown: %v", err)
	}
}

// report emits analysis in every configured format
func report(reports *reporting.ReportingManager, analysis *reporting.Analysis) error {
	paths, err := reports.ReportAnalysis(analysis)
	for _, path := range paths {
		common.Success("Report written: %s", path)
	}
	if err != nil {
		return fmt.Errorf("reporting failed: %w", err)
	}
	return nil
}

var _ scheduler.Runner = (*analyzer.Analyzer)(nil)
