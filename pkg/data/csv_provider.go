package data

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// CSVProvider implements DataProvider for CSV files with a
// time,open,high,low,close,volume header in any column order
type CSVProvider struct {
	quiet bool
}

// NewCSVProvider creates a new CSV data provider
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{}
}

// NewQuietCSVProvider creates a CSV provider that does not log skipped rows
func NewQuietCSVProvider() *CSVProvider {
	return &CSVProvider{quiet: true}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// LoadData loads price history from a CSV file
func (p *CSVProvider) LoadData(ctx context.Context, source string) ([]types.OHLC, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(source)
	if err != nil {
		return nil, apperrors.NewInputError("data", "open", err).WithContext("source", source)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads CSV content. It returns ErrEmptyInput when there is no data
// row, a *MissingColumnsError when required headers are absent, and
// ErrNoValidRows when every row was rejected. Malformed rows are skipped.
func (p *CSVProvider) Parse(r io.Reader) ([]types.OHLC, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, apperrors.NewInputError("data", "parse", fmt.Errorf("error reading CSV header: %w", err))
	}

	type row struct {
		line   int
		fields []string
		err    error
	}
	var rows []row
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			rows = append(rows, row{line: parseErr.Line, err: parseErr.Err})
			continue
		}
		if err != nil {
			return nil, apperrors.NewInputError("data", "parse", fmt.Errorf("error reading CSV: %w", err))
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, row{line: line, fields: fields})
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	data := make([]types.OHLC, 0, len(rows))
	for _, r := range rows {
		if r.err != nil {
			p.warn("⚠️ Line %d skipped: %v", r.line, r.err)
			continue
		}

		candle, err := parseRecord(r.fields, columns)
		if err != nil {
			p.warn("⚠️ Line %d skipped: %v", r.line, err)
			continue
		}
		data = append(data, candle)
	}

	if len(data) == 0 {
		return nil, ErrNoValidRows
	}

	return data, nil
}

func (p *CSVProvider) warn(format string, args ...interface{}) {
	if !p.quiet {
		log.Printf(format, args...)
	}
}

// columnIndex maps each required column to its position in the header
type columnIndex map[string]int

func mapColumns(header []string) (columnIndex, error) {
	columns := make(columnIndex, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	return columns, nil
}

func parseRecord(record []string, columns columnIndex) (types.OHLC, error) {
	field := func(name string) (string, error) {
		idx := columns[name]
		if idx >= len(record) {
			return "", fmt.Errorf("missing %s field", name)
		}
		return strings.TrimSpace(record[idx]), nil
	}
	number := func(name string) (float64, error) {
		raw, err := field(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("invalid %s value %q", name, raw)
		}
		return v, nil
	}

	var candle types.OHLC
	var err error
	if candle.Time, err = field("time"); err != nil {
		return candle, err
	}
	if candle.Open, err = number("open"); err != nil {
		return candle, err
	}
	if candle.High, err = number("high"); err != nil {
		return candle, err
	}
	if candle.Low, err = number("low"); err != nil {
		return candle, err
	}
	if candle.Close, err = number("close"); err != nil {
		return candle, err
	}
	if candle.Volume, err = number("volume"); err != nil {
		return candle, err
	}

	return candle, nil
}
