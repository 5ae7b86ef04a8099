package scheduler

import (
	"fmt"
	"log"
	"sync"

	"StockScope/internal/analyzer"
	"StockScope/internal/report"

	"github.com/robfig/cron/v3"
)

// Scheduler reruns an analysis on a cron schedule. Runs never overlap.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *analyzer.Analyzer

	run     sync.Mutex
	mu      sync.Mutex
	last    *analyzer.Report
	lastErr error
	runs    int
}

// NewScheduler creates a new Scheduler.
func NewScheduler(a *analyzer.Analyzer) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		Analyzer: a,
	}
}

// Register adds the refresh task under the given six-field cron spec.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh immediately and returns its result.
func (s *Scheduler) RunNow() (*analyzer.Report, error) {
	s.run.Lock()
	defer s.run.Unlock()

	rep, err := s.Analyzer.Run()

	s.mu.Lock()
	s.runs++
	if err == nil {
		s.last = rep
	}
	s.lastErr = err
	s.mu.Unlock()
	return rep, err
}

// Last returns the most recent successful report and the error of the most recent run.
func (s *Scheduler) Last() (*analyzer.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastErr
}

// Runs returns how many refreshes have been attempted.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running refresh task")
	rep, err := s.RunNow()
	if err != nil {
		log.Printf("[ERROR] refresh: %v", err)
		return
	}
	log.Printf("[INFO] refresh report:\n%s", report.FormatReport(rep))
}
