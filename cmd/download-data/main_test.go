package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func envArg(t *testing.T) []string {
	return []string{"-env", filepath.Join(t.TempDir(), "missing.env")}
}

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := parseOptions(envArg(t), now)
	require.NoError(t, err)

	assert.Equal(t, []string{"BTCUSDT"}, opts.symbols)
	assert.Equal(t, []string{"1h"}, opts.intervals)
	assert.Equal(t, []string{"spot"}, opts.categories)
	assert.Equal(t, now, opts.end)
	assert.Equal(t, now.AddDate(-1, 0, 0), opts.start)
	assert.Equal(t, 1000, opts.limit)
}

func TestParseOptionsLists(t *testing.T) {
	args := append(envArg(t),
		"-symbols", "btcusdt, ethusdt",
		"-intervals", "5m,1d",
		"-categories", "linear",
		"-start", "2024-01-01",
		"-end", "2024-02-01",
	)
	opts, err := parseOptions(args, now)
	require.NoError(t, err)

	assert.Equal(t, []string{"BTCUSDT", "ETHUSDT"}, opts.symbols)
	assert.Equal(t, []string{"5m", "1d"}, opts.intervals)
	assert.Equal(t, []string{"linear"}, opts.categories)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), opts.start)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), opts.end)
}

func TestParseOptionsRejectsBadInput(t *testing.T) {
	tests := map[string][]string{
		"interval":   {"-intervals", "7m"},
		"category":   {"-categories", "options"},
		"limit":      {"-limit", "5000"},
		"date":       {"-start", "01/01/2024"},
		"range":      {"-start", "2024-03-01", "-end", "2024-02-01"},
		"no symbols": {"-symbols", " , "},
	}
	for name, extra := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseOptions(append(envArg(t), extra...), now)
			assert.Error(t, err)
		})
	}
}
