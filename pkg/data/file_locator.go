package data

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultFileLocator implements FileLocator for standard file system operations
type DefaultFileLocator struct{}

// NewDefaultFileLocator creates a new default file locator
func NewDefaultFileLocator() *DefaultFileLocator {
	return &DefaultFileLocator{}
}

// ConvertIntervalToMinutes converts interval strings like "5m", "1h", "4h" to minute numbers
func (f *DefaultFileLocator) ConvertIntervalToMinutes(interval string) string {
	// If it's already just a number, return as-is
	if _, err := strconv.Atoi(interval); err == nil {
		return interval
	}

	// Parse interval string
	interval = strings.ToLower(strings.TrimSpace(interval))

	// Extract number and unit
	if len(interval) < 2 {
		return interval // Invalid format, return as-is
	}

	numStr := interval[:len(interval)-1]
	unit := interval[len(interval)-1:]

	num, err := strconv.Atoi(numStr)
	if err != nil {
		return interval // Invalid number, return as-is
	}

	// Convert to minutes
	switch unit {
	case "m":
		return strconv.Itoa(num)
	case "h":
		return strconv.Itoa(num * 60)
	case "d":
		return strconv.Itoa(num * 24 * 60)
	case "w":
		return strconv.Itoa(num * 7 * 24 * 60)
	default:
		return interval // Unknown unit, return as-is
	}
}

// DataFilePath returns where a downloaded candle file for the given market
// lives under dataRoot. FindDataFile searches the same layout.
func (f *DefaultFileLocator) DataFilePath(dataRoot, exchange, category, symbol, interval string) string {
	return filepath.Join(dataRoot, strings.ToLower(exchange), strings.ToLower(category),
		strings.ToUpper(symbol), f.ConvertIntervalToMinutes(interval), "candles.csv")
}

// FindDataFile attempts to locate a candle file. It checks
// {dataRoot}/{exchange}/{category}/{symbol}/{minutes}/candles.csv for the
// exchange's categories, then {dataRoot}/{symbol}_{interval}.csv.
// Returns empty string if no file is found
func (f *DefaultFileLocator) FindDataFile(dataRoot, exchange, symbol, interval string) string {
	symbol = strings.ToUpper(symbol)

	// Convert interval to minutes (5m -> 5, 1h -> 60, etc.)
	intervalMinutes := f.ConvertIntervalToMinutes(interval)

	var categories []string
	switch strings.ToLower(exchange) {
	case "bybit":
		categories = []string{"spot", "linear", "inverse"}
	case "":
		categories = nil
	default:
		categories = []string{"spot", "futures", "linear", "inverse"}
	}

	var attemptedPaths []string
	for _, category := range categories {
		attemptedPaths = append(attemptedPaths, filepath.Join(dataRoot, exchange, category, symbol, intervalMinutes, "candles.csv"))
	}
	attemptedPaths = append(attemptedPaths, filepath.Join(dataRoot, fmt.Sprintf("%s_%s.csv", symbol, strings.ToLower(interval))))

	for _, path := range attemptedPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	log.Printf("⚠️ No data file found for %s %s in:", symbol, interval)
	for _, path := range attemptedPaths {
		log.Printf("   - %s", path)
	}

	return ""
}
