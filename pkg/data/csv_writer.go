package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// CSVHeader is the column order written by WriteCSV
var CSVHeader = []string{"time", "open", "high", "low", "close", "volume"}

// WriteCSV writes records with a header row that CSVProvider reads back
func WriteCSV(w io.Writer, records []types.OHLC) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, r := range records {
		row := []string{r.Time, format(r.Open), format(r.High), format(r.Low), format(r.Close), format(r.Volume)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile writes records to path, creating parent directories
func WriteCSVFile(path string, records []types.OHLC) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, records); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
