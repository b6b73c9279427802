package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/logger"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/reporting"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAnalysis() *reporting.Analysis {
	data := make([]types.OHLC, 30)
	for i := range data {
		price := 100 + float64(i)
		data[i] = types.OHLC{Time: time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
			Open: price, High: price + 1, Low: price - 1, Close: price, Volume: 1000}
	}
	cfg := indicators.DefaultConfig()
	result := indicators.CalculateAll(data, cfg)

	return &reporting.Analysis{
		Symbol:      "TEST",
		Data:        data,
		Indicators:  result,
		Signal:      strategy.NewSignalSynthesizer().Generate(data, result),
		Config:      cfg,
		GeneratedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestLoadWithoutSavedState(t *testing.T) {
	p := NewPersistence(nil, filepath.Join(t.TempDir(), "state.json"))

	analysis, err := p.Load()
	assert.NoError(t, err)
	assert.Nil(t, analysis)
}

func TestSaveLoadClear(t *testing.T) {
	dir := t.TempDir()
	log, err := logger.NewLogger(filepath.Join(dir, "logs"), "TEST", "1d")
	require.NoError(t, err)
	defer log.Close()

	p := NewPersistence(log, filepath.Join(dir, "nested", "state.json"))
	original := testAnalysis()

	require.NoError(t, p.Save(original))
	require.NoError(t, p.Save(original))

	_, err = os.Stat(filepath.Join(dir, "nested", "state_backup.json"))
	assert.NoError(t, err, "second save keeps a backup")

	loaded, err := p.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, original.Signal, loaded.Signal)
	assert.Equal(t, original.Data, loaded.Data)
	assert.Equal(t, original.Config, loaded.Config)
	assert.Equal(t, original.Indicators.RSI.CountDefined(), loaded.Indicators.RSI.CountDefined())

	require.NoError(t, p.Clear())
	loaded, err = p.Load()
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, p.Clear(), "clearing twice is fine")
}

func TestSaveNil(t *testing.T) {
	p := NewPersistence(nil, filepath.Join(t.TempDir(), "state.json"))
	err := p.Save(nil)
	assert.Equal(t, apperrors.ErrorCategoryValidation, apperrors.CategoryOf(err))
}

func TestLoadCorruptState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	_, err := NewPersistence(nil, path).Load()
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorCategoryStorage, apperrors.CategoryOf(err))
}

func TestLoadStateWithoutAnalysis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"1.0.0"}`), 0644))

	_, err := NewPersistence(nil, path).Load()
	assert.Equal(t, apperrors.ErrorCategoryValidation, apperrors.CategoryOf(err))
}
