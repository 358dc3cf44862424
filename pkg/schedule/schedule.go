// Package schedule runs registered tasks on fixed intervals.
//
//	schedule.Every(5).Minutes().
//	    Name("notifications:retry-failed").
//	    WithoutOverlapping().
//	    Run(retryFailed)
//	schedule.Start(ctx)
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/drivehub/pkg/logger"
)

// Task is a scheduled unit of work.
type Task func()

type job struct {
	mu        sync.Mutex
	id        string
	every     time.Duration
	task      Task
	lastRun   time.Time
	running   bool
	noOverlap bool
}

var (
	mu   sync.Mutex
	jobs []*job
)

// Every begins a fluent interval: Every(5).Minutes().
func Every(n int) *interval { return &interval{n: n} }

// EveryMinute is shorthand for Every(1).Minutes().
func EveryMinute() *Schedule { return Every(1).Minutes() }

// Hourly is shorthand for Every(1).Hours().
func Hourly() *Schedule { return Every(1).Hours() }

// Daily is shorthand for Every(24).Hours().
func Daily() *Schedule { return Every(24).Hours() }

type interval struct{ n int }

func (i *interval) Seconds() *Schedule { return schedule(time.Duration(i.n) * time.Second) }
func (i *interval) Minutes() *Schedule { return schedule(time.Duration(i.n) * time.Minute) }
func (i *interval) Hours() *Schedule   { return schedule(time.Duration(i.n) * time.Hour) }

func schedule(every time.Duration) *Schedule {
	return &Schedule{j: &job{every: every}}
}

// Schedule configures one job before registration.
type Schedule struct {
	j *job
}

// Name labels the job in logs and the schedule:run listing.
func (s *Schedule) Name(id string) *Schedule {
	s.j.id = id
	return s
}

// WithoutOverlapping skips a tick while the previous run is still going.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.j.noOverlap = true
	return s
}

// Run registers the job. Nothing fires until Start is called.
func (s *Schedule) Run(fn Task) {
	s.j.task = fn
	mu.Lock()
	if s.j.id == "" {
		s.j.id = fmt.Sprintf("task-%d", len(jobs)+1)
	}
	jobs = append(jobs, s.j)
	mu.Unlock()
}

// List describes every registered job.
func List() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, fmt.Sprintf("%s (every %s)", j.id, j.every))
	}
	return out
}

// Start launches the dispatch loop. It ticks every second and runs due
// jobs on their own goroutines until ctx is cancelled.
func Start(ctx context.Context) {
	go loop(ctx)
	logger.Info("schedule: scheduler started")
}

func loop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			mu.Lock()
			due := make([]*job, len(jobs))
			copy(due, jobs)
			mu.Unlock()

			for _, j := range due {
				j.maybeRun(now)
			}
		}
	}
}

func (j *job) maybeRun(now time.Time) {
	j.mu.Lock()
	if j.every <= 0 || now.Sub(j.lastRun) < j.every {
		j.mu.Unlock()
		return
	}
	if j.noOverlap && j.running {
		j.mu.Unlock()
		logger.Warn("schedule: skipping overlapping run", "task", j.id)
		return
	}
	j.running = true
	j.lastRun = now
	j.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "task", j.id, "panic", r)
			}
			j.mu.Lock()
			j.running = false
			j.mu.Unlock()
		}()
		j.task()
	}()
}
