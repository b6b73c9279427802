package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/cmd/common"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/exchange/bybit"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/data"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

const appName = "download-data"

// Bybit allows 120 public requests per minute
const requestPause = 500 * time.Millisecond

type options struct {
	symbols    []string
	intervals  []string
	categories []string
	dataRoot   string
	start      time.Time
	end        time.Time
	limit      int
	testnet    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	opts, err := parseOptions(args, time.Now().UTC())
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		common.Error("%v", err)
		return 2
	}

	client := bybit.NewClient(bybit.Config{
		APIKey:    os.Getenv("BYBIT_API_KEY"),
		APISecret: os.Getenv("BYBIT_API_SECRET"),
		Testnet:   opts.testnet,
	})
	downloader := data.NewDownloader(client, opts.limit, requestPause)

	common.Header("Bybit Historical Data Downloader")
	common.Info("Categories: %s", strings.Join(opts.categories, ", "))
	common.Info("Symbols: %s", strings.Join(opts.symbols, ", "))
	common.Info("Intervals: %s", strings.Join(opts.intervals, ", "))
	common.Info("Date Range: %s to %s (%s)", opts.start.Format(time.DateOnly), opts.end.Format(time.DateOnly), client.GetEnvironment())

	failed := downloadAll(ctx, downloader, opts)
	if failed > 0 {
		common.Error("%d downloads failed", failed)
		return 1
	}
	common.Success("All downloads completed")
	return 0
}

// parseOptions reads the flags. now anchors the default one year range.
func parseOptions(args []string, now time.Time) (*options, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	var (
		symbols    = fs.String("symbols", "BTCUSDT", "Comma-separated list of symbols")
		intervals  = fs.String("intervals", "1h", "Comma-separated list of intervals (e.g., 5m,1h,1d)")
		categories = fs.String("categories", "spot", "Comma-separated list of categories (spot, linear, inverse)")
		dataRoot   = fs.String("data-root", "data", "Data root; files go to {root}/bybit/{category}/{SYMBOL}/{minutes}/candles.csv")
		startDate  = fs.String("start", "", "Start date (YYYY-MM-DD), default one year before end")
		endDate    = fs.String("end", "", "End date (YYYY-MM-DD), default now")
		limit      = fs.Int("limit", 1000, "Klines per request (max 1000)")
		testnet    = fs.Bool("testnet", false, "Use the Bybit testnet")
		envFile    = fs.String("env", ".env", "Environment file path")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := common.LoadEnvFile(*envFile); err != nil {
		common.Warn("Continuing with system environment")
	}

	opts := &options{
		symbols:    upper(common.SplitList(*symbols)),
		intervals:  common.SplitList(*intervals),
		categories: common.SplitList(*categories),
		dataRoot:   *dataRoot,
		end:        now,
		limit:      *limit,
		testnet:    *testnet,
	}

	v := common.NewFlagValidator()
	if len(opts.symbols) == 0 {
		v.AddError("at least one symbol is required")
	}
	for _, interval := range opts.intervals {
		if _, err := data.ToBybitInterval(interval); err != nil {
			v.AddError(err.Error())
		}
	}
	for _, category := range opts.categories {
		v.ValidateChoice("category", category, []string{"spot", "linear", "inverse"})
	}
	if opts.limit < 1 || opts.limit > 1000 {
		v.AddError(fmt.Sprintf("limit must be between 1 and 1000, got: %d", opts.limit))
	}

	if *endDate != "" {
		end, err := time.Parse(time.DateOnly, *endDate)
		if err != nil {
			v.AddError(fmt.Sprintf("invalid end date %q", *endDate))
		}
		opts.end = end
	}
	opts.start = opts.end.AddDate(-1, 0, 0)
	if *startDate != "" {
		start, err := time.Parse(time.DateOnly, *startDate)
		if err != nil {
			v.AddError(fmt.Sprintf("invalid start date %q", *startDate))
		}
		opts.start = start
	}
	if !opts.start.Before(opts.end) {
		v.AddError("start must be before end")
	}

	if err := v.GetError(); err != nil {
		return nil, err
	}
	return opts, nil
}

// downloadAll fetches every category, symbol and interval combination and
// returns the number of failures
func downloadAll(ctx context.Context, downloader *data.Downloader, opts *options) int {
	locator := data.NewDefaultFileLocator()
	failed := 0

	for _, category := range opts.categories {
		for _, symbol := range opts.symbols {
			for _, interval := range opts.intervals {
				if ctx.Err() != nil {
					return failed + 1
				}

				path := locator.DataFilePath(opts.dataRoot, "bybit", category, symbol, interval)
				common.Section(fmt.Sprintf("%s %s %s", category, symbol, interval))

				records, err := downloader.Download(ctx, category, symbol, interval, opts.start, opts.end)
				if err != nil {
					common.Error("Failed to download %s %s %s: %v", category, symbol, interval, err)
					failed++
					continue
				}
				if err := data.WriteCSVFile(path, records); err != nil {
					common.Error("Failed to save %s: %v", path, err)
					failed++
					continue
				}

				common.Success("Saved %d candles to %s", len(records), path)
				printSummary(records)
			}
		}
	}
	return failed
}

func printSummary(records []types.OHLC) {
	if len(records) == 0 {
		return
	}

	high, low := records[0].High, records[0].Low
	for _, r := range records {
		if r.High > high {
			high = r.High
		}
		if r.Low < low {
			low = r.Low
		}
	}

	common.Info("First: %s  Last: %s", records[0].Time, records[len(records)-1].Time)
	common.Info("High: %.2f  Low: %.2f  Avg Volume: %.2f", high, low, types.AverageVolume(records))
}

func upper(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToUpper(v)
	}
	return values
}
