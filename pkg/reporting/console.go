package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// NotAvailable is printed for undefined indicator values
const NotAvailable = "N/A"

// DefaultConsoleReporter renders analyses as tables
type DefaultConsoleReporter struct {
	out io.Writer
}

// NewDefaultConsoleReporter creates a console reporter writing to stdout
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterTo creates a console reporter writing to w
func NewConsoleReporterTo(w io.Writer) *DefaultConsoleReporter {
	return &DefaultConsoleReporter{out: w}
}

// FormatValue prints a defined value with the given decimals, N/A otherwise
func FormatValue(v indicators.Value, decimals int) string {
	if !v.Valid {
		return NotAvailable
	}
	return fmt.Sprintf("%.*f", decimals, v.Value)
}

// signalIcon decorates the signal type for terminal output
func signalIcon(t strategy.SignalType) string {
	switch t {
	case strategy.SignalCall:
		return "📈 CALL"
	case strategy.SignalPut:
		return "📉 PUT"
	default:
		return "⏸️ NEUTRAL"
	}
}

// OutputAnalysis prints the signal and the latest indicator values
func (r *DefaultConsoleReporter) OutputAnalysis(analysis *Analysis) {
	if analysis == nil {
		return
	}
	r.renderSignal(analysis)
	r.renderSnapshot(analysis)
}

func (r *DefaultConsoleReporter) renderSignal(analysis *Analysis) {
	sig := analysis.Signal

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	title := "TRADING SIGNAL"
	if analysis.Symbol != "" {
		title = fmt.Sprintf("TRADING SIGNAL • %s", strings.ToUpper(analysis.Symbol))
	}
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"🎯 Signal", signalIcon(sig.Type)},
		{"📊 Confidence", fmt.Sprintf("%d%%", sig.Confidence)},
		{"💰 Price", fmt.Sprintf("%.2f", sig.Price)},
		{"⏰ Time", sig.Time},
		{"🗳️ Votes", fmt.Sprintf("%d bullish / %d bearish", sig.BullishVotes, sig.BearishVotes)},
	})

	if len(sig.Reasons) > 0 {
		t.AppendSeparator()
		for i, reason := range sig.Reasons {
			label := ""
			if i == 0 {
				label = "📝 Reasons"
			}
			t.AppendRow(table.Row{label, "• " + reason})
		}
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, WidthMax: 15, Align: text.AlignLeft},
		{Number: 2, WidthMin: 30, WidthMax: 60, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

func (r *DefaultConsoleReporter) renderSnapshot(analysis *Analysis) {
	snap := analysis.Latest()

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("INDICATORS")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"RSI", FormatValue(snap.RSI, 2)},
		{"MACD", FormatValue(snap.MACD, 4)},
		{"Signal Line", FormatValue(snap.Signal, 4)},
		{"Histogram", FormatValue(snap.Histogram, 4)},
		{"SMA", FormatValue(snap.SMA, 2)},
		{"EMA", FormatValue(snap.EMA, 2)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Avg Volume", fmt.Sprintf("%.0f", snap.AverageVolume)},
		{"Records", snap.Records},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, WidthMax: 15, Align: text.AlignLeft},
		{Number: 2, WidthMin: 15, WidthMax: 25, Align: text.AlignRight},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

// PrintConfig prints the indicator periods
func (r *DefaultConsoleReporter) PrintConfig(config indicators.Config) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("INDICATOR CONFIGURATION")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"SMA", config.SMAPeriod},
		{"EMA", config.EMAPeriod},
		{"RSI", config.RSIPeriod},
		{"MACD", fmt.Sprintf("%d / %d / %d", config.MACDFast, config.MACDSlow, config.MACDSignal)},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

// Package-level convenience function
func OutputConsole(analysis *Analysis) {
	NewDefaultConsoleReporter().OutputAnalysis(analysis)
}
