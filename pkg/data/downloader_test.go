package data

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/exchange/bybit"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedFetcher serves hourly klines from a fixed history, newest page first,
// honoring the end bound and limit like the exchange does
type pagedFetcher struct {
	history []bybit.Kline
	calls   int
}

func (f *pagedFetcher) GetKlines(ctx context.Context, params bybit.KlineParams) ([]bybit.Kline, error) {
	f.calls++
	var eligible []bybit.Kline
	for _, k := range f.history {
		if params.End == nil || !k.StartTime.After(*params.End) {
			eligible = append(eligible, k)
		}
	}
	if len(eligible) > params.Limit {
		eligible = eligible[len(eligible)-params.Limit:]
	}
	return eligible, nil
}

func hourlyHistory(start time.Time, count int) []bybit.Kline {
	klines := make([]bybit.Kline, count)
	for i := range klines {
		price := float64(100 + i)
		klines[i] = bybit.Kline{
			StartTime:  start.Add(time.Duration(i) * time.Hour),
			OpenPrice:  price,
			HighPrice:  price + 1,
			LowPrice:   price - 1,
			ClosePrice: price,
			Volume:     10,
		}
	}
	return klines
}

func TestDownloaderPagesBackwards(t *testing.T) {
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fetcher := &pagedFetcher{history: hourlyHistory(origin, 50)}
	d := NewDownloader(fetcher, 10, 0)

	start := origin.Add(5 * time.Hour)
	end := origin.Add(44 * time.Hour)
	records, err := d.Download(context.Background(), "spot", "BTCUSDT", "1h", start, end)
	require.NoError(t, err)

	require.Len(t, records, 40)
	assert.Equal(t, "2024-01-01 05:00:00", records[0].Time)
	assert.Equal(t, "2024-01-02 20:00:00", records[39].Time)
	for i := 1; i < len(records); i++ {
		assert.Equal(t, records[i-1].Close+1, records[i].Close, "records are contiguous and ordered")
	}
	assert.Equal(t, 4, fetcher.calls)
}

func TestDownloaderErrors(t *testing.T) {
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewDownloader(&fakeKlineFetcher{}, 0, 0)

	_, err := d.Download(context.Background(), "spot", "BTCUSDT", "1h", origin, origin)
	assert.Equal(t, apperrors.ErrorCategoryInput, apperrors.CategoryOf(err))

	_, err = d.Download(context.Background(), "spot", "BTCUSDT", "7m", origin, origin.Add(time.Hour))
	assert.Equal(t, apperrors.ErrorCategoryInput, apperrors.CategoryOf(err))

	_, err = d.Download(context.Background(), "spot", "BTCUSDT", "1h", origin, origin.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNoValidRows)

	failing := NewDownloader(&fakeKlineFetcher{err: errors.New("rate limited")}, 0, 0)
	_, err = failing.Download(context.Background(), "spot", "BTCUSDT", "1h", origin, origin.Add(time.Hour))
	assert.Equal(t, apperrors.ErrorCategoryExchange, apperrors.CategoryOf(err))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	records := []types.OHLC{
		{Time: "2024-01-01 00:00:00", Open: 1.5, High: 2, Low: 1, Close: 1.75, Volume: 1200},
		{Time: "2024-01-01 01:00:00", Open: 1.75, High: 2.25, Low: 1.5, Close: 2, Volume: 900.5},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))
	assert.True(t, strings.HasPrefix(buf.String(), "time,open,high,low,close,volume\n"))

	parsed, err := NewQuietCSVProvider().Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, parsed)
}

func TestWriteCSVFileMatchesLocator(t *testing.T) {
	root := t.TempDir()
	locator := NewDefaultFileLocator()
	path := locator.DataFilePath(root, "Bybit", "spot", "btcusdt", "4h")
	assert.Equal(t, filepath.Join(root, "bybit", "spot", "BTCUSDT", "240", "candles.csv"), path)

	require.NoError(t, WriteCSVFile(path, []types.OHLC{{Time: "t", Close: 1}}))
	assert.Equal(t, path, locator.FindDataFile(root, "bybit", "BTCUSDT", "4h"))
}
