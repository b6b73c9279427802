// Package reporting provides output generation for analysis results
package reporting

import (
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// Analysis is one complete run: the input history, every indicator series,
// the resulting signal and the periods that produced them
type Analysis struct {
	Symbol      string                 `json:"symbol,omitempty"`
	Interval    string                 `json:"interval,omitempty"`
	Source      string                 `json:"source,omitempty"`
	Data        []types.OHLC           `json:"data"`
	Indicators  indicators.Result      `json:"indicators"`
	Signal      strategy.TradingSignal `json:"signal"`
	Config      indicators.Config      `json:"config"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// Snapshot holds the indicator values at the last record
type Snapshot struct {
	Time          string
	Close         float64
	RSI           indicators.Value
	MACD          indicators.Value
	Signal        indicators.Value
	Histogram     indicators.Value
	SMA           indicators.Value
	EMA           indicators.Value
	AverageVolume float64
	Records       int
}

// Latest returns the snapshot at the last record; an empty analysis yields
// a snapshot with every indicator undefined
func (a *Analysis) Latest() Snapshot {
	s := Snapshot{
		Records:       len(a.Data),
		AverageVolume: types.AverageVolume(a.Data),
		RSI:           a.Indicators.RSI.Last(),
		MACD:          a.Indicators.MACD.MACD.Last(),
		Signal:        a.Indicators.MACD.Signal.Last(),
		Histogram:     a.Indicators.MACD.Histogram.Last(),
		SMA:           a.Indicators.SMA.Last(),
		EMA:           a.Indicators.EMA.Last(),
	}
	if n := len(a.Data); n > 0 {
		s.Time = a.Data[n-1].Time
		s.Close = a.Data[n-1].Close
	}
	return s
}

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputAnalysis(analysis *Analysis)
	PrintConfig(config indicators.Config)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteIndicatorsCSV(analysis *Analysis, path string) error
	WriteAnalysisXLSX(analysis *Analysis, path string) error
	WriteAnalysisJSON(analysis *Analysis, path string) error
}

// PathManager defines interface for output path management
type PathManager interface {
	GetDefaultOutputDir(symbol, interval string) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
	PathManager
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle  int
	NumberStyle  int
	PriceStyle   int
	BaseStyle    int
	CallStyle    int
	PutStyle     int
	NeutralStyle int
}

// Output formats understood by the reporting manager
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatXLSX    = "xlsx"
)

// ReportingConfig holds configuration for reporting
type ReportingConfig struct {
	OutputDirectory string
	Formats         []string
}
