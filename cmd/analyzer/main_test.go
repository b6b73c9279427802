package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/config"
	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/recorder"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/data"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArgs(t *testing.T, extra ...string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	args := []string{
		"-env", filepath.Join(dir, "missing.env"),
		"-data-root", filepath.Join(dir, "data"),
		"-output", filepath.Join(dir, "results"),
		"-silent",
	}
	return dir, append(args, extra...)
}

func TestRunSampleWritesReports(t *testing.T) {
	dir, args := sampleArgs(t, "-sample", "-format", "json,csv,xlsx")

	require.Equal(t, 0, run(context.Background(), args))

	out := filepath.Join(dir, "results", "SAMPLE_1d")
	assert.FileExists(t, filepath.Join(out, "analysis.json"))
	assert.FileExists(t, filepath.Join(out, "indicators.csv"))
	assert.FileExists(t, filepath.Join(out, "analysis.xlsx"))
	assert.FileExists(t, filepath.Join(dir, "results", stateFileName))

	analysis, err := reporting.ReadAnalysisJSON(filepath.Join(out, "analysis.json"))
	require.NoError(t, err)
	assert.Len(t, analysis.Data, 20)
	assert.Contains(t, []strategy.SignalType{strategy.SignalCall, strategy.SignalPut, strategy.SignalNeutral}, analysis.Signal.Type)
}

func TestRunLoadAndReset(t *testing.T) {
	dir, args := sampleArgs(t, "-sample", "-format", "json")
	require.Equal(t, 0, run(context.Background(), args))

	_, loadArgs := sampleArgs(t, "-load", "-format", "json", "-output", filepath.Join(dir, "results"))
	assert.Equal(t, 0, run(context.Background(), loadArgs))

	_, resetArgs := sampleArgs(t, "-reset", "-output", filepath.Join(dir, "results"))
	assert.Equal(t, 0, run(context.Background(), resetArgs))
	assert.NoFileExists(t, filepath.Join(dir, "results", stateFileName))

	// nothing saved is not a failure
	assert.Equal(t, 0, run(context.Background(), loadArgs))
}

func TestRunRecordsHistory(t *testing.T) {
	dir, args := sampleArgs(t, "-sample", "-format", "console")
	dbPath := filepath.Join(dir, "signals.db")
	t.Setenv("ANALYZER_SQLITE_PATH", dbPath)

	require.Equal(t, 0, run(context.Background(), args))

	rec, err := recorder.NewSQLiteRecorder(dbPath)
	require.NoError(t, err)
	records, err := rec.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, rec.Close())
	require.Len(t, records, 1)
	assert.Equal(t, "SAMPLE", records[0].Symbol)

	_, historyArgs := sampleArgs(t, "-history", "5")
	assert.Equal(t, 0, run(context.Background(), historyArgs))
}

func TestRunHistoryNeedsRecorder(t *testing.T) {
	t.Setenv("ANALYZER_SQLITE_PATH", "")
	_, args := sampleArgs(t, "-history", "5")
	assert.Equal(t, 1, run(context.Background(), args))
}

func TestRunFlagErrors(t *testing.T) {
	_, args := sampleArgs(t, "-source", "ftp")
	assert.Equal(t, 2, run(context.Background(), args))

	_, args = sampleArgs(t, "-no-such-flag")
	assert.Equal(t, 2, run(context.Background(), args))

	_, args = sampleArgs(t, "-format", "pdf", "-sample")
	assert.Equal(t, 1, run(context.Background(), args))
}

func TestRunMissingDataFile(t *testing.T) {
	dir, args := sampleArgs(t)
	args = append(args, "-data", filepath.Join(dir, "missing.csv"))
	assert.Equal(t, 1, run(context.Background(), args))
}

func TestRunScheduleStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	_, args := sampleArgs(t, "-sample", "-format", "json", "-schedule", "@every 1s")
	assert.Equal(t, 0, run(ctx, args))
}

func TestBuildProviderCSV(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Root = t.TempDir()

	_, _, err := buildProvider(cfg)
	assert.Equal(t, apperrors.ErrorCategoryConfiguration, apperrors.CategoryOf(err))

	cfg.Data.Symbol = "btcusdt"
	cfg.Data.Interval = "1h"
	_, _, err = buildProvider(cfg)
	assert.ErrorContains(t, err, "no data file for btcusdt 1h")

	path := filepath.Join(cfg.Data.Root, "BTCUSDT_1h.csv")
	require.NoError(t, data.WriteSampleCSV(path))
	provider, source, err := buildProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, data.NewCSVProvider().GetName(), provider.GetName())

	cfg.Data.File = "explicit.csv"
	_, source, err = buildProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "explicit.csv", source)
}

func TestBuildProviderBybit(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Source = config.SourceBybit
	cfg.Data.Symbol = "BTCUSDT"

	provider, source, err := buildProvider(cfg)
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", source)
	assert.Equal(t, "Cached Bybit Provider", provider.GetName())
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	renderHistory(&buf, []recorder.SignalRecord{{
		RecordedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Symbol:       "BTCUSDT",
		Time:         "2024-01-01",
		Type:         strategy.SignalCall,
		Confidence:   75,
		Price:        42000,
		BullishVotes: 3,
		BearishVotes: 1,
		Reasons:      []string{"Price above SMA (41000.00)"},
	}})

	out := buf.String()
	assert.Contains(t, out, "SIGNAL HISTORY")
	assert.Contains(t, out, "BTCUSDT")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "3/1")
}
