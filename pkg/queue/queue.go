// Package queue runs email and notification side-effects in the background.
//
// Jobs are plain structs implementing Handle. They serialise to a typed
// JSON envelope so the Redis driver can hand them to any worker process;
// every job type must therefore be registered by name at boot:
//
//	queue.Register("jobs.WelcomeEmailJob", func() queue.Job { return &jobs.WelcomeEmailJob{} })
//	queue.Dispatch(jobs.WelcomeEmailJob{Email: u.Email})
//
// Jobs that still fail after the retry budget are written to the
// failed_jobs table when UseDB has been called.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"github.com/shashiranjanraj/drivehub/pkg/metrics"
)

// Job is one unit of background work.
type Job interface {
	Handle() error
}

// Driver stores and yields serialised job envelopes.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// attempts per job before it lands in failed_jobs
const maxAttempts = 3

var (
	mu        sync.RWMutex
	driver    Driver = NewMemoryDriver()
	factories        = map[string]func() Job{}
)

// SetDriver swaps the backend, normally to Redis once the cache connects.
func SetDriver(d Driver) {
	mu.Lock()
	driver = d
	mu.Unlock()
}

// Register maps a serialised type name to a constructor for decoding.
func Register(name string, factory func() Job) {
	mu.Lock()
	factories[name] = factory
	mu.Unlock()
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatch serialises job and pushes it onto the queue.
func Dispatch(job Job) error {
	name := fmt.Sprintf("%T", job)
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal %s: %w", name, err)
	}
	env, err := json.Marshal(envelope{Type: name, Payload: body})
	if err != nil {
		return fmt.Errorf("queue: marshal envelope: %w", err)
	}
	return currentDriver().Push(env)
}

func currentDriver() Driver {
	mu.RLock()
	defer mu.RUnlock()
	return driver
}

// StartWorkers runs n workers until ctx is cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go worker(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func worker(ctx context.Context) {
	for ctx.Err() == nil {
		raw, err := currentDriver().Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw != nil {
			handle(raw)
		}
	}
}

func handle(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	mu.RLock()
	factory, ok := factories[env.Type]
	mu.RUnlock()
	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: decode payload", "type", env.Type, "error", err)
		return
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if lastErr = run(job); lastErr == nil {
			metrics.QueueJobsProcessed.WithLabelValues("success").Inc()
			logger.Info("queue: job processed", "type", env.Type)
			return
		}
		logger.Warn("queue: job failed",
			"type", env.Type, "attempt", attempt, "error", lastErr)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	metrics.QueueJobsProcessed.WithLabelValues("failed").Inc()
	recordFailure(env.Type, env.Payload, lastErr)
	logger.Error("queue: job exhausted retries", "type", env.Type, "error", lastErr)
}

// run executes one attempt. A panicking job must not take the worker
// down with it, so panics come back as errors and count as a failed
// attempt like any other.
func run(job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("queue: job panic", "error", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("queue: job panic: %v", r)
		}
	}()
	return job.Handle()
}
