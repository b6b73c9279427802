package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/cmd/common"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/recorder"
	"github.com/jedib0t/go-pretty/v6/table"
)

// history prints the most recent recorded signals
func (a *app) history(ctx context.Context, limit int) int {
	if a.sqlite == nil {
		common.Error("Signal history needs recorder.sqlite_path (or ANALYZER_SQLITE_PATH)")
		return 1
	}

	records, err := a.sqlite.Recent(ctx, limit)
	if err != nil {
		common.Error("Failed to read signal history: %v", err)
		return 1
	}
	if len(records) == 0 {
		common.Info("No signals recorded yet")
		return 0
	}

	renderHistory(os.Stdout, records)
	return 0
}

func renderHistory(w io.Writer, records []recorder.SignalRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("SIGNAL HISTORY • last %d", len(records)))
	t.AppendHeader(table.Row{"Recorded", "Symbol", "Candle", "Signal", "Confidence", "Price", "Votes", "Reasons"})

	for _, r := range records {
		t.AppendRow(table.Row{
			r.RecordedAt.Local().Format(time.DateTime),
			r.Symbol,
			r.Time,
			string(r.Type),
			fmt.Sprintf("%d%%", r.Confidence),
			fmt.Sprintf("%.2f", r.Price),
			fmt.Sprintf("%d/%d", r.BullishVotes, r.BearishVotes),
			strings.Join(r.Reasons, "; "),
		})
	}
	t.Render()
}
