package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/logger"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/reporting"
)

// StateVersion is written into every saved state file
const StateVersion = "1.0.0"

// Persistence saves the last analysis so it can be reloaded in a later
// session and wiped on reset
type Persistence struct {
	logger *logger.Logger
	path   string
	mu     sync.Mutex
}

// SavedState is the on-disk envelope around an analysis
type SavedState struct {
	Version  string              `json:"version"`
	SavedAt  time.Time           `json:"saved_at"`
	Analysis *reporting.Analysis `json:"analysis"`
}

// NewPersistence creates a persistence manager for path. The logger may be nil.
func NewPersistence(log *logger.Logger, path string) *Persistence {
	return &Persistence{
		logger: log,
		path:   path,
	}
}

// Path returns the state file location
func (p *Persistence) Path() string {
	return p.path
}

// Save writes the analysis, keeping the previous file as a backup
func (p *Persistence) Save(analysis *reporting.Analysis) error {
	if analysis == nil {
		return apperrors.NewValidationError("state", "save", "analysis is nil")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if dir := filepath.Dir(p.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewStorageError("state", "save", fmt.Errorf("failed to create state directory: %w", err))
		}
	}

	// Create backup of current state file
	if _, err := os.Stat(p.path); err == nil {
		if err := copyFile(p.path, p.backupPath()); err != nil {
			p.warn("failed to create backup: %v", err)
		}
	}

	data, err := json.MarshalIndent(SavedState{
		Version:  StateVersion,
		SavedAt:  time.Now().UTC(),
		Analysis: analysis,
	}, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("state", "save", fmt.Errorf("failed to marshal state: %w", err))
	}

	// Write to temporary file first
	tempFile := p.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return apperrors.NewStorageError("state", "save", fmt.Errorf("failed to write temp state file: %w", err))
	}

	// Atomic move
	if err := os.Rename(tempFile, p.path); err != nil {
		return apperrors.NewStorageError("state", "save", fmt.Errorf("failed to move state file: %w", err))
	}

	p.info("State saved to %s", p.path)
	return nil
}

// Load returns the saved analysis, or nil without error when nothing has
// been saved
func (p *Persistence) Load() (*reporting.Analysis, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		p.info("No existing state file found at %s", p.path)
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("state", "load", fmt.Errorf("failed to read state file: %w", err))
	}

	var saved SavedState
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, apperrors.NewStorageError("state", "load", fmt.Errorf("failed to parse state file: %w", err))
	}
	if saved.Version == "" || saved.Analysis == nil {
		return nil, apperrors.NewValidationError("state", "load", "state file has no version or analysis")
	}

	p.info("State loaded from %s (saved %s)", p.path, saved.SavedAt.Format(time.RFC3339))
	return saved.Analysis, nil
}

// Clear removes the state file and its backup. Clearing an absent state is
// not an error.
func (p *Persistence) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, path := range []string{p.path, p.backupPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return apperrors.NewStorageError("state", "clear", err)
		}
	}

	p.info("State cleared: %s", p.path)
	return nil
}

func (p *Persistence) backupPath() string {
	ext := filepath.Ext(p.path)
	return p.path[:len(p.path)-len(ext)] + "_backup" + ext
}

func (p *Persistence) info(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(format, args...)
	}
}

func (p *Persistence) warn(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.LogWarning("State Backup", format, args...)
	}
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
