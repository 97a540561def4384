package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"StockAnalyzer/internal/model"
	"StockAnalyzer/internal/notifier"
)

// Job performs one batch analysis and renders its outputs.
type Job func(ctx context.Context, runID string) ([]*model.SymbolAnalysis, error)

// Run records the outcome of one job execution.
type Run struct {
	ID       string
	Started  time.Time
	Finished time.Time
	Analyses []*model.SymbolAnalysis
	Err      error
}

// Scheduler re-runs the batch analysis on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	Job      Job
	Notifier *notifier.TelegramNotifier
	Ctx      context.Context
	NewID    func() string
	Now      func() time.Time

	mu      sync.Mutex
	running bool
	last    *Run
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, job Job, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Job:      job,
		Notifier: tn,
		Ctx:      ctx,
		NewID:    uuid.NewString,
		Now:      time.Now,
	}
}

// Register schedules the job. spec has a leading seconds field.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register watch task %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the job immediately. It returns nil when a run is already in progress.
func (s *Scheduler) RunNow() *Run {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Println("[WARN] previous run still in progress, skipping")
		return nil
	}
	s.running = true
	s.mu.Unlock()

	run := &Run{ID: s.NewID(), Started: s.Now()}
	log.Printf("[INFO] run %s started", run.ID)
	run.Analyses, run.Err = s.Job(s.Ctx, run.ID)
	run.Finished = s.Now()

	s.mu.Lock()
	s.running = false
	s.last = run
	s.mu.Unlock()

	if run.Err != nil {
		log.Printf("[ERROR] run %s: %v", run.ID, run.Err)
		s.trySend(fmt.Sprintf("❌ run <code>%s</code> failed: %v", run.ID, run.Err))
		return run
	}
	log.Printf("[INFO] run %s finished in %v (%d symbols)", run.ID, run.Finished.Sub(run.Started), len(run.Analyses))
	s.trySend(notifier.FormatRunSummary(run.ID, run.Finished, run.Analyses))
	return run
}

// Last returns the most recent completed run, or nil.
func (s *Scheduler) Last() *Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(_ context.Context, command string) string {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "/run":
		go s.RunNow()
		return "⏳ analysis started"
	case "/status":
		last := s.Last()
		if last == nil {
			return "no run yet"
		}
		if last.Err != nil {
			return fmt.Sprintf("❌ run <code>%s</code> failed: %v", last.ID, last.Err)
		}
		return notifier.FormatRunSummary(last.ID, last.Finished, last.Analyses)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if !s.Notifier.Enabled() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
