package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/logger"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/monitoring"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/recorder"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/state"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/data"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/reporting"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// Options wires an Analyzer. Provider is required; every other collaborator
// is optional.
type Options struct {
	Provider   data.DataProvider
	Indicators indicators.Config
	Strategy   strategy.Strategy
	Recorder   recorder.Recorder
	State      *state.Persistence
	Logger     *logger.Logger
	Health     *monitoring.HealthChecker

	Symbol   string
	Interval string
}

// Analyzer runs the load, indicator, signal pipeline and fans the result out
// to metrics, the signal recorder and the saved state
type Analyzer struct {
	provider   data.DataProvider
	aggregator *indicators.Aggregator
	strategy   strategy.Strategy
	recorder   recorder.Recorder
	state      *state.Persistence
	logger     *logger.Logger
	health     *monitoring.HealthChecker

	symbol   string
	interval string
	now      func() time.Time
}

// New validates the indicator configuration and builds an Analyzer
func New(opts Options) (*Analyzer, error) {
	if opts.Provider == nil {
		return nil, apperrors.NewConfigurationError("analyzer", "new", "data provider is required")
	}

	aggregator, err := indicators.NewAggregator(opts.Indicators)
	if err != nil {
		return nil, err
	}

	strat := opts.Strategy
	if strat == nil {
		strat = strategy.NewSignalSynthesizer()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}

	return &Analyzer{
		provider:   opts.Provider,
		aggregator: aggregator,
		strategy:   strat,
		recorder:   rec,
		state:      opts.State,
		logger:     opts.Logger,
		health:     opts.Health,
		symbol:     opts.Symbol,
		interval:   opts.Interval,
		now:        time.Now,
	}, nil
}

// RequiredPeriods returns the record count needed for every indicator to be
// defined at the last record
func (a *Analyzer) RequiredPeriods() int {
	return a.aggregator.RequiredPeriods()
}

// Analyze computes indicators and the signal over data. It does not touch
// metrics, the recorder or the saved state.
func (a *Analyzer) Analyze(records []types.OHLC) *reporting.Analysis {
	result := a.aggregator.Calculate(records)
	signal := a.strategy.Generate(records, result)

	return &reporting.Analysis{
		Symbol:      a.symbol,
		Interval:    a.interval,
		Data:        records,
		Indicators:  result,
		Signal:      signal,
		Config:      a.aggregator.Config(),
		GeneratedAt: a.now().UTC(),
	}
}

// Run loads source from scratch, analyzes it and publishes the result.
// Recorder and state failures are logged and counted but do not fail the run.
func (a *Analyzer) Run(ctx context.Context, source string) (*reporting.Analysis, error) {
	started := a.now()

	records, err := a.provider.LoadData(ctx, source)
	if err != nil {
		return nil, a.fail(categorize(err, source))
	}

	if required := a.RequiredPeriods(); len(records) < required {
		a.warnf("analysis", "only %d records, %d needed for every indicator; missing readings cast no vote",
			len(records), required)
	}

	analysis := a.Analyze(records)
	analysis.Source = source

	symbol := a.metricSymbol()
	monitoring.RecordRun(a.provider.GetName(), a.now().Sub(started).Seconds())
	monitoring.RecordSignal(symbol, string(analysis.Signal.Type), analysis.Signal.Confidence)
	monitoring.UpdatePrice(symbol, analysis.Signal.Price)

	if a.logger != nil {
		a.logger.Info("Analyzed %d records from %s", len(records), source)
		a.logger.LogSignal(analysis.Signal)
	}

	if err := a.recorder.RecordSignal(ctx, symbol, analysis.Signal); err != nil {
		a.softFail(apperrors.NewStorageError("recorder", "record_signal", err))
	}

	if a.state != nil {
		if err := a.state.Save(analysis); err != nil {
			a.softFail(err)
		}
	}

	if a.health != nil {
		a.health.RecordSuccess(string(analysis.Signal.Type))
	}

	return analysis, nil
}

// LoadSaved returns the analysis saved by an earlier run, or nil
func (a *Analyzer) LoadSaved() (*reporting.Analysis, error) {
	if a.state == nil {
		return nil, nil
	}
	return a.state.Load()
}

// Reset removes the saved analysis
func (a *Analyzer) Reset() error {
	if a.state == nil {
		return nil
	}
	return a.state.Clear()
}

func (a *Analyzer) metricSymbol() string {
	if a.symbol != "" {
		return a.symbol
	}
	return "UNKNOWN"
}

// categorize attaches an INPUT category to bare ingestion errors so callers
// can still match the sentinel with errors.Is
func categorize(err error, source string) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if apperrors.CategoryOf(err) != apperrors.ErrorCategoryUnknown {
		return err
	}
	return apperrors.NewInputError("analyzer", "load", err).WithContext("source", source)
}

func (a *Analyzer) fail(err error) error {
	monitoring.RecordError(string(apperrors.CategoryOf(err)))
	if a.logger != nil {
		a.logger.LogError("analysis failed", err)
	}
	if a.health != nil {
		a.health.RecordFailure(err)
	}
	return err
}

func (a *Analyzer) softFail(err error) {
	monitoring.RecordError(string(apperrors.CategoryOf(err)))
	a.warnf("analysis", "%v", err)
}

func (a *Analyzer) warnf(scope, format string, args ...interface{}) {
	if a.logger != nil {
		a.logger.LogWarning(scope, format, args...)
		return
	}
	log.Printf("⚠️ %s", fmt.Sprintf(format, args...))
}
