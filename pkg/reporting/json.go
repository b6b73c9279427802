package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FormatAnalysis encodes an analysis as indented JSON. Undefined indicator
// values encode as null.
func FormatAnalysis(analysis *Analysis) ([]byte, error) {
	return json.MarshalIndent(analysis, "", "  ")
}

// WriteAnalysisJSON writes an analysis to a JSON file
func WriteAnalysisJSON(analysis *Analysis, path string) error {
	data, err := FormatAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	if err := NewDefaultPathManager().EnsureDirectoryExists(path); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadAnalysisJSON reads an analysis written by WriteAnalysisJSON
func ReadAnalysisJSON(path string) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var analysis Analysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", path, err)
	}
	return &analysis, nil
}

// PrintAnalysisJSON prints an analysis as JSON to stdout
func PrintAnalysisJSON(analysis *Analysis) error {
	data, err := FormatAnalysis(analysis)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// ExtractIntervalFromPath extracts interval from data file path
// Example: "data/bybit/linear/BTCUSDT/5m/candles.csv" -> "5m"
func ExtractIntervalFromPath(dataPath string) string {
	if dataPath == "" {
		return ""
	}

	// Normalize path separators
	dataPath = filepath.ToSlash(dataPath)
	parts := strings.Split(dataPath, "/")

	// Look for interval pattern (number followed by m,h,d)
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if len(part) >= 2 {
			lastChar := part[len(part)-1]
			if lastChar == 'm' || lastChar == 'h' || lastChar == 'd' {
				numPart := part[:len(part)-1]
				if _, err := strconv.Atoi(numPart); err == nil {
					return part
				}
			}
		}
	}

	return ""
}
