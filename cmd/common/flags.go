package common

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/config"
)

// AnalyzerFlags contains the command line flags of the analyzer
type AnalyzerFlags struct {
	// Configuration
	ConfigFile *string
	EnvFile    *string

	// Data selection
	DataFile *string
	DataRoot *string
	Source   *string
	Symbol   *string
	Interval *string
	Sample   *bool

	// Output
	Formats   *string
	OutputDir *string

	// Session
	LoadSaved *bool
	Reset     *bool
	History   *int

	// Service
	Schedule    *string
	MetricsAddr *string

	// Logging, help and version
	Verbose  *bool
	Silent   *bool
	NoEmojis *bool
	Version  *bool
	Help     *bool
}

// RegisterAnalyzerFlags registers the analyzer flags on fs
func RegisterAnalyzerFlags(fs *flag.FlagSet) *AnalyzerFlags {
	return &AnalyzerFlags{
		ConfigFile: fs.String("config", "", "YAML configuration file"),
		EnvFile:    fs.String("env", ".env", "Environment file path"),

		DataFile: fs.String("data", "", "OHLC CSV file (overrides the data root lookup)"),
		DataRoot: fs.String("data-root", "", "Data root directory searched by symbol and interval"),
		Source:   fs.String("source", "", "Data source: csv or bybit"),
		Symbol:   fs.String("symbol", "", "Trading symbol (e.g., BTCUSDT)"),
		Interval: fs.String("interval", "", "Candle interval (e.g., 5m, 1h, 1d)"),
		Sample:   fs.Bool("sample", false, "Write the bundled sample CSV and analyze it"),

		Formats:   fs.String("format", "", "Comma separated outputs: console,json,csv,xlsx"),
		OutputDir: fs.String("output", "", "Report output directory"),

		LoadSaved: fs.Bool("load", false, "Show the saved analysis instead of running a new one"),
		Reset:     fs.Bool("reset", false, "Remove the saved analysis and exit"),
		History:   fs.Int("history", 0, "Print the N most recent recorded signals and exit"),

		Schedule:    fs.String("schedule", "", "Cron expression to re-run the analysis (e.g., \"@every 5m\")"),
		MetricsAddr: fs.String("metrics-addr", "", "Serve /metrics and /health on this address (e.g., :9090)"),

		Verbose:  fs.Bool("verbose", false, "Enable verbose output"),
		Silent:   fs.Bool("silent", false, "Enable silent mode (minimal output)"),
		NoEmojis: fs.Bool("no-emojis", false, "Disable emoji output"),
		Version:  fs.Bool("version", false, "Show version information"),
		Help:     fs.Bool("help", false, "Show help information"),
	}
}

// ApplyTo overrides cfg with every flag that was given a value
func (f *AnalyzerFlags) ApplyTo(cfg *config.Config) {
	setString := func(dst *string, flagValue *string) {
		if v := strings.TrimSpace(*flagValue); v != "" {
			*dst = v
		}
	}

	setString(&cfg.Data.File, f.DataFile)
	setString(&cfg.Data.Root, f.DataRoot)
	setString(&cfg.Data.Symbol, f.Symbol)
	setString(&cfg.Data.Interval, f.Interval)
	setString(&cfg.Output.Dir, f.OutputDir)
	setString(&cfg.Schedule.Cron, f.Schedule)
	setString(&cfg.Monitoring.MetricsAddr, f.MetricsAddr)

	if v := strings.TrimSpace(*f.Source); v != "" {
		cfg.Data.Source = strings.ToLower(v)
	}
	if *f.Formats != "" {
		cfg.Output.Formats = SplitList(*f.Formats)
	}
}

// Validate checks flag combinations that the configuration cannot express
func (f *AnalyzerFlags) Validate() error {
	v := NewFlagValidator()
	if *f.Source != "" {
		v.ValidateChoice("source", strings.ToLower(*f.Source), []string{config.SourceCSV, config.SourceBybit})
	}
	if *f.History < 0 {
		v.AddError(fmt.Sprintf("history must not be negative, got: %d", *f.History))
	}
	if *f.LoadSaved && *f.Reset {
		v.AddError("load and reset cannot be combined")
	}
	if *f.Sample && *f.DataFile != "" {
		v.AddError("sample and data cannot be combined")
	}
	v.ValidateFile("config", *f.ConfigFile, false)
	return v.GetError()
}

// SplitList splits a comma separated flag value and drops empty entries
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}

// FlagValidator collects flag validation errors
type FlagValidator struct {
	errors []string
}

// NewFlagValidator creates a new flag validator
func NewFlagValidator() *FlagValidator {
	return &FlagValidator{
		errors: make([]string, 0),
	}
}

// ValidateChoice validates that a string is one of the allowed choices
func (v *FlagValidator) ValidateChoice(name, value string, choices []string) *FlagValidator {
	for _, choice := range choices {
		if value == choice {
			return v
		}
	}
	v.errors = append(v.errors, fmt.Sprintf("%s must be one of [%s], got: %s", name, strings.Join(choices, ", "), value))
	return v
}

// ValidateFile validates that a file exists
func (v *FlagValidator) ValidateFile(name, path string, required bool) *FlagValidator {
	if path == "" {
		if required {
			v.errors = append(v.errors, fmt.Sprintf("%s is required", name))
		}
		return v
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		v.errors = append(v.errors, fmt.Sprintf("%s file does not exist: %s", name, path))
	}
	return v
}

// AddError adds a custom validation error
func (v *FlagValidator) AddError(message string) *FlagValidator {
	v.errors = append(v.errors, message)
	return v
}

// HasErrors returns true if there are validation errors
func (v *FlagValidator) HasErrors() bool {
	return len(v.errors) > 0
}

// GetError returns a formatted error message with all validation errors
func (v *FlagValidator) GetError() error {
	if len(v.errors) == 0 {
		return nil
	}

	if len(v.errors) == 1 {
		return fmt.Errorf("validation error: %s", v.errors[0])
	}

	return fmt.Errorf("validation errors:\n  - %s", strings.Join(v.errors, "\n  - "))
}

// UsageFormatter prints usage with worked examples
type UsageFormatter struct {
	AppName        string
	AppDescription string
	Examples       []UsageExample
}

// UsageExample represents a usage example
type UsageExample struct {
	Command     string
	Description string
}

// NewUsageFormatter creates a new usage formatter
func NewUsageFormatter(appName, description string) *UsageFormatter {
	return &UsageFormatter{
		AppName:        appName,
		AppDescription: description,
		Examples:       make([]UsageExample, 0),
	}
}

// AddExample adds a usage example
func (u *UsageFormatter) AddExample(command, description string) *UsageFormatter {
	u.Examples = append(u.Examples, UsageExample{
		Command:     command,
		Description: description,
	})
	return u
}

// PrintUsage prints formatted usage information for fs
func (u *UsageFormatter) PrintUsage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "%s - %s\n\n", u.AppName, u.AppDescription)

	fmt.Fprintf(out, "USAGE:\n")
	fmt.Fprintf(out, "  %s [OPTIONS]\n\n", filepath.Base(os.Args[0]))

	if len(u.Examples) > 0 {
		fmt.Fprintf(out, "EXAMPLES:\n")
		for _, example := range u.Examples {
			fmt.Fprintf(out, "  # %s\n", example.Description)
			fmt.Fprintf(out, "  %s\n\n", example.Command)
		}
	}

	fmt.Fprintf(out, "OPTIONS:\n")
	fs.PrintDefaults()
}

// CheckHelpAndVersion handles -help and -version. It returns true when the
// command should exit.
func CheckHelpAndVersion(appName string, fs *flag.FlagSet, flags *AnalyzerFlags, formatter *UsageFormatter) bool {
	if *flags.Version {
		PrintVersion(appName)
		return true
	}

	if *flags.Help {
		formatter.PrintUsage(fs)
		return true
	}

	return false
}

// SetupLogger configures the default console logger from the flags
func SetupLogger(flags *AnalyzerFlags) {
	logger := DefaultLogger

	if *flags.Silent {
		logger.SetSilentMode(true)
	}

	if *flags.Verbose {
		logger.Level = LogLevelDebug
	}

	if *flags.NoEmojis {
		logger.ShowEmojis = false
	}
}
