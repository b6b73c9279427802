package reporting

import (
	"fmt"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
	"github.com/xuri/excelize/v2"
)

const (
	indicatorsSheet = "Indicators"
	signalSheet     = "Signal"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteAnalysisXLSX writes the indicator series and the signal to a workbook
func (r *DefaultExcelReporter) WriteAnalysisXLSX(analysis *Analysis, path string) error {
	if err := NewDefaultPathManager().EnsureDirectoryExists(path); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	fx := excelize.NewFile()
	defer fx.Close()

	// Replace default sheet and create additional sheets
	if err := fx.SetSheetName(fx.GetSheetName(0), indicatorsSheet); err != nil {
		return err
	}
	if _, err := fx.NewSheet(signalSheet); err != nil {
		return err
	}

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeIndicatorsSheet(fx, indicatorsSheet, analysis, styles); err != nil {
		return err
	}
	if err := r.writeSignalSheet(fx, signalSheet, analysis, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// createExcelStyles creates all Excel styles
func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	border := []excelize.Border{
		{Type: "left", Color: "E0E0E0", Style: 1},
		{Type: "right", Color: "E0E0E0", Style: 1},
		{Type: "bottom", Color: "E0E0E0", Style: 1},
	}

	// Header style - Dark slate background with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	fourDecimals := "0.0000"
	styles.NumberStyle, err = fx.NewStyle(&excelize.Style{
		CustomNumFmt: &fourDecimals,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		Border:       border,
	})
	if err != nil {
		return styles, err
	}

	styles.PriceStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    2, // 0.00
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    border,
	})
	if err != nil {
		return styles, err
	}

	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
		Border:    border,
	})
	if err != nil {
		return styles, err
	}

	signalStyle := func(fill, font string) (int, error) {
		return fx.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: font},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
			Border:    border,
		})
	}
	if styles.CallStyle, err = signalStyle("E8F5E8", "006100"); err != nil {
		return styles, err
	}
	if styles.PutStyle, err = signalStyle("FFEBEE", "9C0006"); err != nil {
		return styles, err
	}
	if styles.NeutralStyle, err = signalStyle("F2F2F2", "404040"); err != nil {
		return styles, err
	}

	return styles, nil
}

func (r *DefaultExcelReporter) writeHeaders(fx *excelize.File, sheet string, headers []string, styles ExcelStyles) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, h)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}
}

// writeIndicatorsSheet writes one row per record; undefined values stay blank
func (r *DefaultExcelReporter) writeIndicatorsSheet(fx *excelize.File, sheet string, analysis *Analysis, styles ExcelStyles) error {
	r.writeHeaders(fx, sheet, IndicatorColumns, styles)

	fx.SetColWidth(sheet, "A", "A", 20) // Time
	fx.SetColWidth(sheet, "B", "F", 12) // OHLCV
	fx.SetColWidth(sheet, "G", "L", 14) // Indicators

	ind := analysis.Indicators
	for i, d := range analysis.Data {
		row := i + 2
		prices := []interface{}{d.Time, d.Open, d.High, d.Low, d.Close, d.Volume}
		for col, v := range prices {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := fx.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			style := styles.PriceStyle
			if col == 0 {
				style = styles.BaseStyle
			}
			fx.SetCellStyle(sheet, cell, cell, style)
		}

		values := []indicators.Value{
			ind.SMA.At(i),
			ind.EMA.At(i),
			ind.RSI.At(i),
			ind.MACD.MACD.At(i),
			ind.MACD.Signal.At(i),
			ind.MACD.Histogram.At(i),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(len(prices)+j+1, row)
			if v.Valid {
				if err := fx.SetCellValue(sheet, cell, v.Value); err != nil {
					return err
				}
			}
			fx.SetCellStyle(sheet, cell, cell, styles.NumberStyle)
		}
	}

	// Freeze the header row
	return fx.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// writeSignalSheet writes the verdict, the latest indicator values and the
// reasons as label/value pairs
func (r *DefaultExcelReporter) writeSignalSheet(fx *excelize.File, sheet string, analysis *Analysis, styles ExcelStyles) error {
	r.writeHeaders(fx, sheet, []string{"Field", "Value"}, styles)
	fx.SetColWidth(sheet, "A", "A", 18)
	fx.SetColWidth(sheet, "B", "B", 60)

	sig := analysis.Signal
	snap := analysis.Latest()

	rows := [][2]interface{}{
		{"Signal", string(sig.Type)},
		{"Confidence", sig.Confidence},
		{"Price", sig.Price},
		{"Time", sig.Time},
		{"Bullish Votes", sig.BullishVotes},
		{"Bearish Votes", sig.BearishVotes},
		{"RSI", FormatValue(snap.RSI, 2)},
		{"MACD", FormatValue(snap.MACD, 4)},
		{"Signal Line", FormatValue(snap.Signal, 4)},
		{"Histogram", FormatValue(snap.Histogram, 4)},
		{"SMA", FormatValue(snap.SMA, 2)},
		{"EMA", FormatValue(snap.EMA, 2)},
		{"Avg Volume", fmt.Sprintf("%.0f", snap.AverageVolume)},
		{"Records", snap.Records},
	}
	for i, reason := range sig.Reasons {
		label := ""
		if i == 0 {
			label = "Reasons"
		}
		rows = append(rows, [2]interface{}{label, reason})
	}

	for i, kv := range rows {
		row := i + 2
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		if err := fx.SetCellValue(sheet, labelCell, kv[0]); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, valueCell, kv[1]); err != nil {
			return err
		}
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.BaseStyle)
		fx.SetCellStyle(sheet, valueCell, valueCell, styles.BaseStyle)
	}

	// Signal row is always row 2
	fx.SetCellStyle(sheet, "B2", "B2", signalStyleFor(sig.Type, styles))
	return nil
}

func signalStyleFor(t strategy.SignalType, styles ExcelStyles) int {
	switch t {
	case strategy.SignalCall:
		return styles.CallStyle
	case strategy.SignalPut:
		return styles.PutStyle
	default:
		return styles.NeutralStyle
	}
}

// Package-level convenience function
func WriteAnalysisXLSX(analysis *Analysis, path string) error {
	return NewDefaultExcelReporter().WriteAnalysisXLSX(analysis, path)
}
