package data

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// DataProvider interface for loading price history from various sources
type DataProvider interface {
	// LoadData loads the full, chronological history from the specified source
	LoadData(ctx context.Context, source string) ([]types.OHLC, error)

	// GetName returns the name of the data provider
	GetName() string
}

// DataCache interface for caching loaded data
type DataCache interface {
	// Get retrieves data from cache if available
	Get(key string) ([]types.OHLC, bool)

	// Set stores data in cache
	Set(key string, data []types.OHLC)

	// Clear removes all cached data
	Clear()

	// Size returns the number of cached entries
	Size() int
}

// FileLocator interface for finding data files
type FileLocator interface {
	// FindDataFile attempts to locate a candle file for a symbol and interval
	FindDataFile(dataRoot, exchange, symbol, interval string) string

	// ConvertIntervalToMinutes converts interval strings like "5m", "1h", "4h" to minute numbers
	ConvertIntervalToMinutes(interval string) string
}

// RequiredColumns lists the header names every CSV input must carry
var RequiredColumns = []string{"time", "open", "high", "low", "close", "volume"}

// Ingestion error kinds. Match them with errors.Is.
var (
	ErrEmptyInput     = errors.New("empty or invalid CSV file")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoValidRows    = errors.New("no valid rows found in file")
)

// MissingColumnsError lists the required columns absent from the header
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns.Error(), strings.Join(e.Columns, ", "))
}

// Is reports ErrMissingColumns as a match
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
