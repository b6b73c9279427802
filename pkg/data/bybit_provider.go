package data

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/exchange/bybit"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// TimeLayout is the label format used for exchange candles
const TimeLayout = "2006-01-02 15:04:05"

// KlineFetcher is the part of the Bybit client the provider needs
type KlineFetcher interface {
	GetKlines(ctx context.Context, params bybit.KlineParams) ([]bybit.Kline, error)
}

// BybitProvider implements DataProvider on top of the Bybit kline endpoint.
// The source passed to LoadData is the symbol; an empty source uses the
// provider's default symbol.
type BybitProvider struct {
	client   KlineFetcher
	symbol   string
	category string
	interval string
	limit    int
}

// NewBybitProvider creates a provider fetching limit candles of interval
// (e.g. "5m", "1h", "1d") from the given category
func NewBybitProvider(client KlineFetcher, symbol, category, interval string, limit int) *BybitProvider {
	return &BybitProvider{
		client:   client,
		symbol:   symbol,
		category: category,
		interval: interval,
		limit:    limit,
	}
}

// GetName returns the name of the data provider
func (p *BybitProvider) GetName() string {
	return "Bybit Provider"
}

// LoadData fetches candles for a symbol, oldest first
func (p *BybitProvider) LoadData(ctx context.Context, source string) ([]types.OHLC, error) {
	symbol := strings.ToUpper(strings.TrimSpace(source))
	if symbol == "" {
		symbol = strings.ToUpper(p.symbol)
	}
	if symbol == "" {
		return nil, apperrors.NewInputError("bybit", "load", fmt.Errorf("symbol is required"))
	}

	interval, err := ToBybitInterval(p.interval)
	if err != nil {
		return nil, apperrors.NewInputError("bybit", "load", err).WithContext("interval", p.interval)
	}

	klines, err := p.client.GetKlines(ctx, bybit.KlineParams{
		Category: p.category,
		Symbol:   symbol,
		Interval: interval,
		Limit:    p.limit,
	})
	if err != nil {
		return nil, apperrors.NewExchangeError("bybit", "get_klines", err).WithContext("symbol", symbol)
	}
	if len(klines) == 0 {
		return nil, ErrNoValidRows
	}

	return KlinesToOHLC(klines), nil
}

// KlinesToOHLC converts exchange klines to records labelled in UTC
func KlinesToOHLC(klines []bybit.Kline) []types.OHLC {
	data := make([]types.OHLC, len(klines))
	for i, k := range klines {
		data[i] = types.OHLC{
			Time:   k.StartTime.UTC().Format(TimeLayout),
			Open:   k.OpenPrice,
			High:   k.HighPrice,
			Low:    k.LowPrice,
			Close:  k.ClosePrice,
			Volume: k.Volume,
		}
	}
	return data
}

// ToBybitInterval maps "5m", "1h", "1d", "1w" style intervals (or a bare
// minute count) to Bybit's interval codes
func ToBybitInterval(interval string) (bybit.KlineInterval, error) {
	interval = strings.TrimSpace(interval)
	if interval == "" {
		return bybit.Interval1h, nil
	}

	switch interval {
	case "D", "W", "M":
		return bybit.KlineInterval(interval), nil
	case "1M":
		return bybit.Interval1M, nil
	}

	lower := strings.ToLower(interval)
	switch lower {
	case "1d":
		return bybit.Interval1d, nil
	case "1w":
		return bybit.Interval1w, nil
	}

	minutes := NewDefaultFileLocator().ConvertIntervalToMinutes(lower)
	n, err := strconv.Atoi(minutes)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("unsupported interval %q", interval)
	}

	candidate := bybit.KlineInterval(strconv.Itoa(n))
	switch candidate {
	case bybit.Interval1m, bybit.Interval3m, bybit.Interval5m, bybit.Interval15m,
		bybit.Interval30m, bybit.Interval1h, bybit.Interval2h, bybit.Interval4h,
		bybit.Interval6h, bybit.Interval12h:
		return candidate, nil
	}
	return "", fmt.Errorf("unsupported interval %q", interval)
}
