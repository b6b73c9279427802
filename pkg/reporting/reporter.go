package reporting

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
)

// DefaultReporter implements the complete Reporter interface
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	paths   *DefaultPathManager
}

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		paths:   NewDefaultPathManager(),
	}
}

// Console output methods
func (r *DefaultReporter) OutputAnalysis(analysis *Analysis) {
	r.console.OutputAnalysis(analysis)
}

func (r *DefaultReporter) PrintConfig(config indicators.Config) {
	r.console.PrintConfig(config)
}

// File output methods
func (r *DefaultReporter) WriteIndicatorsCSV(analysis *Analysis, path string) error {
	return r.csv.WriteIndicatorsCSV(analysis, path)
}

func (r *DefaultReporter) WriteAnalysisXLSX(analysis *Analysis, path string) error {
	return r.excel.WriteAnalysisXLSX(analysis, path)
}

func (r *DefaultReporter) WriteAnalysisJSON(analysis *Analysis, path string) error {
	return WriteAnalysisJSON(analysis, path)
}

// Path management methods
func (r *DefaultReporter) GetDefaultOutputDir(symbol, interval string) string {
	return r.paths.GetDefaultOutputDir(symbol, interval)
}

func (r *DefaultReporter) EnsureDirectoryExists(path string) error {
	return r.paths.EnsureDirectoryExists(path)
}

// ReportingManager provides a high-level interface for all reporting needs
type ReportingManager struct {
	reporter *DefaultReporter
	config   ReportingConfig
}

// NewReportingManager creates a new reporting manager with configuration
func NewReportingManager(config ReportingConfig) *ReportingManager {
	reporter := NewDefaultReporter()
	if config.OutputDirectory != "" {
		reporter.paths = NewPathManager(config.OutputDirectory)
	}
	return &ReportingManager{
		reporter: reporter,
		config:   config,
	}
}

// NewReportingManagerWithReporter is used when console output must go
// somewhere other than stdout
func NewReportingManagerWithReporter(config ReportingConfig, console *DefaultConsoleReporter) *ReportingManager {
	m := NewReportingManager(config)
	m.reporter.console = console
	return m
}

// PrintConfig prints the indicator periods when console output is enabled
func (m *ReportingManager) PrintConfig(config indicators.Config) {
	for _, format := range m.config.Formats {
		if format == FormatConsole {
			m.reporter.PrintConfig(config)
			return
		}
	}
}

// ParseFormats splits a comma separated format list, e.g. "console,json"
func ParseFormats(list string) ([]string, error) {
	var formats []string
	for _, f := range strings.Split(list, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		switch f {
		case FormatConsole, FormatJSON, FormatCSV, FormatXLSX:
			formats = append(formats, f)
		default:
			return nil, fmt.Errorf("unknown output format %q", f)
		}
	}
	return formats, nil
}

// ReportAnalysis emits the analysis in every configured format and returns
// the paths of the files written
func (m *ReportingManager) ReportAnalysis(analysis *Analysis) ([]string, error) {
	outputDir := m.reporter.GetDefaultOutputDir(analysis.Symbol, analysis.Interval)

	var written []string
	for _, format := range m.config.Formats {
		var path string
		var err error

		switch format {
		case FormatConsole:
			m.reporter.OutputAnalysis(analysis)
			continue
		case FormatJSON:
			path = filepath.Join(outputDir, "analysis.json")
			err = m.reporter.WriteAnalysisJSON(analysis, path)
		case FormatCSV:
			path = filepath.Join(outputDir, "indicators.csv")
			err = m.reporter.WriteIndicatorsCSV(analysis, path)
		case FormatXLSX:
			path = filepath.Join(outputDir, "analysis.xlsx")
			err = m.reporter.WriteAnalysisXLSX(analysis, path)
		default:
			return written, fmt.Errorf("unknown output format %q", format)
		}

		if err != nil {
			return written, fmt.Errorf("failed to write %s report: %w", format, err)
		}
		written = append(written, path)
	}

	return written, nil
}
