package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/cmd/common"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/analyzer"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/config"
	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/exchange/bybit"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/logger"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/monitoring"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/notifications"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/recorder"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/state"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/data"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/reporting"
)

const (
	sampleFileName = "sample.csv"
	sampleSymbol   = "SAMPLE"
	stateFileName  = "state.json"

	// kline responses are reused for scheduled runs closer together than this
	exchangeCacheTTL = 30 * time.Second

	alertTimeout = 20 * time.Second
)

// app holds the collaborators of one analyzer process
type app struct {
	cfg      *config.Config
	analyzer *analyzer.Analyzer
	reports  *reporting.ReportingManager
	recorder recorder.Recorder
	sqlite   *recorder.SQLiteRecorder
	state    *state.Persistence
	logger   *logger.Logger
	health   *monitoring.HealthChecker
	alerter  *notifications.SignalAlerter
	source   string
}

// useSampleData writes the bundled sample under the data root and points
// the configuration at it
func useSampleData(cfg *config.Config) error {
	path := filepath.Join(cfg.Data.Root, sampleFileName)
	if err := data.WriteSampleCSV(path); err != nil {
		return err
	}
	cfg.Data.Source = config.SourceCSV
	cfg.Data.File = path
	if cfg.Data.Symbol == "" {
		cfg.Data.Symbol = sampleSymbol
	}
	common.Info("Sample data written to %s", path)
	return nil
}

// buildProvider returns the data provider for cfg and the source to pass to
// every LoadData call
func buildProvider(cfg *config.Config) (data.DataProvider, string, error) {
	switch cfg.Data.Source {
	case config.SourceBybit:
		client := bybit.NewClient(bybit.Config{
			APIKey:    cfg.Exchange.APIKey,
			APISecret: cfg.Exchange.APISecret,
			Testnet:   cfg.Exchange.Testnet,
		})
		common.Debug("Bybit %s, category %s", client.GetEnvironment(), cfg.Data.Category)

		provider := data.NewBybitProvider(client, cfg.Data.Symbol, cfg.Data.Category, cfg.Data.Interval, cfg.Data.Limit)
		return data.NewCachedProvider(provider, exchangeCacheTTL), cfg.Data.Symbol, nil

	default:
		path := cfg.Data.File
		if path == "" {
			if cfg.Data.Symbol == "" {
				return nil, "", apperrors.NewConfigurationError("cli", "data",
					"no data file given: use -data, -sample, or -symbol with a data root")
			}
			path = data.NewDefaultFileLocator().FindDataFile(cfg.Data.Root, config.SourceBybit, cfg.Data.Symbol, cfg.Data.Interval)
			if path == "" {
				return nil, "", apperrors.NewConfigurationError("cli", "data",
					fmt.Sprintf("no data file for %s %s under %s", cfg.Data.Symbol, cfg.Data.Interval, cfg.Data.Root))
			}
		}
		return data.NewCSVProvider(), path, nil
	}
}

// stateFile returns the configured state file or one inside the output directory
func stateFile(cfg *config.Config) string {
	if cfg.State.File != "" {
		return cfg.State.File
	}
	return filepath.Join(cfg.Output.Dir, stateFileName)
}

func newApp(cfg *config.Config) (*app, error) {
	a := &app{
		cfg:    cfg,
		health: monitoring.NewHealthChecker(0),
		reports: reporting.NewReportingManager(reporting.ReportingConfig{
			OutputDirectory: cfg.Output.Dir,
			Formats:         cfg.Output.Formats,
		}),
		recorder: recorder.NewNoopRecorder(),
	}

	if cfg.Logging.Dir != "" {
		fileLogger, err := logger.NewLogger(cfg.Logging.Dir, cfg.Data.Symbol, cfg.Data.Interval)
		if err != nil {
			return nil, err
		}
		a.logger = fileLogger
		common.Debug("Logging to %s", fileLogger.GetLogPath())
	}

	if cfg.Recorder.SQLitePath != "" {
		sqliteRecorder, err := recorder.NewSQLiteRecorder(cfg.Recorder.SQLitePath)
		if err != nil {
			a.Close()
			return nil, apperrors.NewStorageError("cli", "open_recorder", err)
		}
		a.recorder = sqliteRecorder
		a.sqlite = sqliteRecorder
	}

	if cfg.Notify.Enabled() {
		a.alerter = notifications.NewSignalAlerter(
			notifications.NewTelegramNotifier(cfg.Notify.TelegramToken, cfg.Notify.TelegramChatID))
	}

	a.state = state.NewPersistence(a.logger, stateFile(cfg))
	return a, nil
}

// prepare resolves the data source and builds the analyzer. Commands that
// only touch saved results skip it.
func (a *app) prepare() error {
	provider, source, err := buildProvider(a.cfg)
	if err != nil {
		return err
	}
	a.source = source

	a.analyzer, err = analyzer.New(analyzer.Options{
		Provider:   provider,
		Indicators: a.cfg.Indicators,
		Recorder:   a.recorder,
		State:      a.state,
		Logger:     a.logger,
		Health:     a.health,
		Symbol:     a.cfg.Data.Symbol,
		Interval:   a.cfg.Data.Interval,
	})
	return err
}

// Close releases the recorder and the file logger
func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		common.Warn("Closing recorder: %v", err)
	}
	if a.logger != nil {
		a.logger.Close()
	}
}

// runOnce performs one analysis and reports it
func (a *app) runOnce(ctx context.Context) int {
	common.Progress("Analyzing %s with %s", a.source, a.cfg.Data.Source)

	analysis, err := a.analyzer.Run(ctx, a.source)
	a.onResult(analysis, err)
	if err != nil {
		return 1
	}
	return 0
}

// onResult reports a finished analysis. It is also the scheduler callback.
func (a *app) onResult(analysis *reporting.Analysis, err error) {
	if err != nil {
		common.Error("Analysis failed [%s]: %v", apperrors.CategoryOf(err), err)
		return
	}
	if err := report(a.reports, analysis); err != nil {
		monitoring.RecordError(string(apperrors.ErrorCategoryReport))
		common.Error("%v", err)
	}
	a.alert(analysis)
}

// alert notifies on a signal change. Delivery failures are only logged.
func (a *app) alert(analysis *reporting.Analysis) {
	if a.alerter == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
	defer cancel()

	sent, err := a.alerter.Observe(ctx, analysis.Symbol, analysis.Signal)
	if err != nil {
		common.Warn("Signal alert failed: %v", err)
		if a.logger != nil {
			a.logger.LogError("alert", err)
		}
		return
	}
	if sent {
		common.Debug("Signal alert sent for %s", analysis.Symbol)
	}
}

// showSaved reports the analysis saved by the last run
func (a *app) showSaved() int {
	saved, err := a.state.Load()
	if err != nil {
		common.Error("Failed to load saved analysis: %v", err)
		return 1
	}
	if saved == nil {
		common.Warn("No saved analysis at %s", stateFile(a.cfg))
		return 0
	}

	common.Info("Saved analysis from %s", saved.GeneratedAt.Format(time.RFC3339))
	if err := report(a.reports, saved); err != nil {
		common.Error("%v", err)
		return 1
	}
	return 0
}

// reset removes the saved analysis
func (a *app) reset() int {
	if err := a.state.Clear(); err != nil {
		common.Error("Failed to reset: %v", err)
		return 1
	}
	common.Success("Saved analysis cleared")
	return 0
}
