package reporting

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
)

// IndicatorColumns is the header of the indicators CSV export
var IndicatorColumns = []string{
	"time", "open", "high", "low", "close", "volume",
	"sma", "ema", "rsi", "macd", "macd_signal", "macd_histogram",
}

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// csvValue leaves undefined values empty
func csvValue(v indicators.Value) string {
	if !v.Valid {
		return ""
	}
	return fmt.Sprintf("%.6f", v.Value)
}

// WriteIndicatorsCSV writes one row per record with every indicator value
func (r *DefaultCSVReporter) WriteIndicatorsCSV(analysis *Analysis, path string) error {
	if err := NewDefaultPathManager().EnsureDirectoryExists(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(IndicatorColumns); err != nil {
		return err
	}

	ind := analysis.Indicators
	for i, d := range analysis.Data {
		row := []string{
			d.Time,
			fmt.Sprintf("%.2f", d.Open),
			fmt.Sprintf("%.2f", d.High),
			fmt.Sprintf("%.2f", d.Low),
			fmt.Sprintf("%.2f", d.Close),
			fmt.Sprintf("%.0f", d.Volume),
			csvValue(ind.SMA.At(i)),
			csvValue(ind.EMA.At(i)),
			csvValue(ind.RSI.At(i)),
			csvValue(ind.MACD.MACD.At(i)),
			csvValue(ind.MACD.Signal.At(i)),
			csvValue(ind.MACD.Histogram.At(i)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Package-level convenience function
func WriteIndicatorsCSV(analysis *Analysis, path string) error {
	return NewDefaultCSVReporter().WriteIndicatorsCSV(analysis, path)
}
