package data

import (
	"context"
	"fmt"
	"log"
	"time"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/exchange/bybit"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// Downloader pages backwards through the Bybit kline endpoint to collect a
// date range longer than one response
type Downloader struct {
	client    KlineFetcher
	pageLimit int
	pause     time.Duration
}

// NewDownloader creates a downloader requesting pageLimit klines per call
// and waiting pause between calls
func NewDownloader(client KlineFetcher, pageLimit int, pause time.Duration) *Downloader {
	if pageLimit <= 0 || pageLimit > 1000 {
		pageLimit = 1000
	}
	return &Downloader{client: client, pageLimit: pageLimit, pause: pause}
}

// Download returns the candles of symbol whose start time lies in
// [start, end], oldest first
func (d *Downloader) Download(ctx context.Context, category, symbol, interval string, start, end time.Time) ([]types.OHLC, error) {
	if !start.Before(end) {
		return nil, apperrors.NewInputError("downloader", "download",
			fmt.Errorf("start %s must be before end %s", start.Format(time.DateOnly), end.Format(time.DateOnly)))
	}

	code, err := ToBybitInterval(interval)
	if err != nil {
		return nil, apperrors.NewInputError("downloader", "download", err)
	}

	var pages [][]bybit.Kline
	total := 0
	cursor := end
	for cursor.After(start) {
		pageEnd := cursor
		batch, err := d.client.GetKlines(ctx, bybit.KlineParams{
			Category: category,
			Symbol:   symbol,
			Interval: code,
			End:      &pageEnd,
			Limit:    d.pageLimit,
		})
		if err != nil {
			return nil, apperrors.NewExchangeError("downloader", "get_klines", err).WithContext("symbol", symbol)
		}
		if len(batch) == 0 {
			break
		}

		kept := batch[:0:0]
		for _, k := range batch {
			if !k.StartTime.Before(start) && !k.StartTime.After(end) {
				kept = append(kept, k)
			}
		}
		pages = append(pages, kept)
		total += len(kept)

		oldest := batch[0].StartTime
		if !oldest.Before(cursor) {
			// the exchange ignored the end bound; stop rather than loop
			break
		}
		cursor = oldest.Add(-time.Millisecond)
		log.Printf("  %s %s: %d klines downloaded...", symbol, interval, total)

		if d.pause > 0 && cursor.After(start) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(d.pause):
			}
		}
	}

	// pages were collected newest first
	klines := make([]bybit.Kline, 0, total)
	for i := len(pages) - 1; i >= 0; i-- {
		klines = append(klines, pages[i]...)
	}
	if len(klines) == 0 {
		return nil, ErrNoValidRows
	}
	return KlinesToOHLC(klines), nil
}
