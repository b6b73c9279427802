package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	apperrors "github.com/ducminhle1904/ohlc-signal-analyzer/internal/errors"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/reporting"
	"github.com/robfig/cron/v3"
)

// Runner performs one analysis over source
type Runner interface {
	Run(ctx context.Context, source string) (*reporting.Analysis, error)
}

// ResultFunc receives the outcome of every scheduled or manual run
type ResultFunc func(analysis *reporting.Analysis, err error)

// specParser accepts five or six field expressions and descriptors such as
// "@hourly" or "@every 5m"
var specParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler re-runs an analysis on a cron schedule. Overlapping ticks are
// skipped while a run is still in flight.
type Scheduler struct {
	cron     *cron.Cron
	runner   Runner
	source   string
	onResult ResultFunc
	ctx      context.Context

	mu      sync.Mutex
	started bool
}

// NewScheduler creates a scheduler that analyzes source with runner. ctx is
// passed to every run. onResult may be nil.
func NewScheduler(ctx context.Context, runner Runner, source string, onResult ResultFunc) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(specParser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		runner:   runner,
		source:   source,
		onResult: onResult,
		ctx:      ctx,
	}
}

// ValidateSpec reports whether spec is a schedule the scheduler accepts
func ValidateSpec(spec string) error {
	if _, err := specParser.Parse(spec); err != nil {
		return apperrors.NewConfigurationError("scheduler", "parse",
			fmt.Sprintf("invalid schedule %q: %v", spec, err))
	}
	return nil
}

// Register adds the analysis job on spec
func (s *Scheduler) Register(spec string) error {
	if err := ValidateSpec(spec); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(spec, s.RunNow); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	log.Printf("[INFO] analysis scheduled: %s", spec)
	return nil
}

// Start starts the cron scheduler
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// RunNow executes the analysis immediately
func (s *Scheduler) RunNow() {
	if err := s.ctx.Err(); err != nil {
		return
	}

	analysis, err := s.runner.Run(s.ctx, s.source)
	if err != nil {
		log.Printf("[ERROR] scheduled analysis: %v", err)
	}
	if s.onResult != nil {
		s.onResult(analysis, err)
	}
}
