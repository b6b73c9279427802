package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/strategy"
)

// Logger represents a file logger for analysis sessions
type Logger struct {
	symbol   string
	interval string
	logFile  *os.File
	logger   *log.Logger
	mu       sync.Mutex
	logDir   string
	logPath  string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelSignal  LogLevel = "SIGNAL"
	LogLevelStatus  LogLevel = "STATUS"
)

const timestampLayout = "2006-01-02 15:04:05"

// NewLogger creates a file logger under logDir for the specified symbol and interval
func NewLogger(logDir, symbol, interval string) (*Logger, error) {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if symbol == "" {
		symbol = "UNKNOWN"
	}
	if interval == "" {
		interval = "na"
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("%s_%s_%s.log", symbol, interval, time.Now().Format("2006-01-02")))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		symbol:   symbol,
		interval: interval,
		logFile:  file,
		logger:   log.New(file, "", 0),
		logDir:   logDir,
		logPath:  logPath,
	}

	l.writeSessionHeader()

	return l, nil
}

// writeSessionHeader writes a session start header to the log
func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
🚀 ANALYSIS SESSION STARTED
================================================================================
Symbol: %s | Interval: %s
Started: %s
Log File: %s
================================================================================
`, l.symbol, l.interval, time.Now().Format(timestampLayout), filepath.Base(l.logPath))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] [%s] %s", time.Now().Format(timestampLayout), level, message)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// Status logs run status information
func (l *Logger) Status(format string, args ...interface{}) {
	l.Log(LogLevelStatus, format, args...)
}

// LogSignal logs a produced signal with its reasons
func (l *Logger) LogSignal(signal strategy.TradingSignal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s] [SIGNAL] ==================== %s %d%% ====================",
		time.Now().Format(timestampLayout), signal.Type, signal.Confidence)
	fmt.Fprintf(&b, "\n💰 Price: %.2f | Time: %s", signal.Price, signal.Time)
	fmt.Fprintf(&b, "\n🗳️ Votes: %d bullish / %d bearish", signal.BullishVotes, signal.BearishVotes)
	for _, reason := range signal.Reasons {
		fmt.Fprintf(&b, "\n• %s", reason)
	}
	b.WriteString("\n=============================================================")

	l.logger.Println(b.String())
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// LogWarning logs warning with context
func (l *Logger) LogWarning(context string, message string, args ...interface{}) {
	l.Warning("%s: %s", context, fmt.Sprintf(message, args...))
}

// Close closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}

	footer := fmt.Sprintf(`
================================================================================
🛑 ANALYSIS SESSION ENDED
================================================================================
Ended: %s
================================================================================

`, time.Now().Format(timestampLayout))
	l.logger.Print(footer)

	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// GetLogPath returns the current log file path
func (l *Logger) GetLogPath() string {
	return l.logPath
}
