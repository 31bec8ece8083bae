// Package generation drives text-to-3D jobs against a forge server:
// prompt submission, status polling, artifact retrieval, and the
// client-side job lifecycle in between.
package generation

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/meshforge/internal/logger"
)

// EventType identifies a controller event.
type EventType int

const (
	EventProgress EventType = iota
	EventCompleted
	EventError
	EventCancelled
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	case EventError:
		return "error"
	case EventCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Event is emitted as a job advances. Every job produces zero or more
// progress events followed by exactly one terminal event: completed,
// error, or cancelled.
type Event struct {
	Type EventType
	Job  Job
	Err  error // set for EventError
}

const eventBuffer = 64

// Controller drives one generation job at a time through
// submit -> poll -> terminal. A new submission or a cancel tears down
// the active poll loop, and poll responses that arrive for a job that
// is no longer active are discarded.
type Controller struct {
	client   *Client
	interval time.Duration
	events   chan Event

	mu     sync.Mutex
	job    *Job
	token  string // identifies the poll loop allowed to mutate the job
	cancel context.CancelFunc
}

// NewController creates a controller polling at the given interval.
// A non-positive interval falls back to the 2 second default.
func NewController(client *Client, interval time.Duration) *Controller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Controller{
		client:   client,
		interval: interval,
		events:   make(chan Event, eventBuffer),
	}
}

// Events returns the channel on which job events are delivered.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Active returns a snapshot of the in-flight job, if any.
func (c *Controller) Active() (Job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.job == nil {
		return Job{}, false
	}
	return *c.job, true
}

// Submit validates the prompt, posts the request and starts polling.
// Any job already in flight is cancelled first, so at most one poll
// loop runs per controller.
func (c *Controller) Submit(ctx context.Context, prompt string, quality Quality) (Job, error) {
	if strings.TrimSpace(prompt) == "" {
		return Job{}, newError(KindValidation, "submit", "prompt must not be empty")
	}

	c.Cancel()

	jobID, err := c.client.Submit(ctx, prompt, quality)
	if err != nil {
		return Job{}, err
	}

	pollCtx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	token := uuid.NewString()
	c.job = &Job{
		ID:      jobID,
		Prompt:  prompt,
		Quality: quality,
		Status:  StatusPending,
		Message: "Generation started",
		Started: time.Now(),
	}
	c.token = token
	c.cancel = cancel
	snapshot := *c.job
	c.mu.Unlock()

	logger.Info("job submitted",
		zap.String("job_id", jobID),
		zap.String("quality", string(quality)))

	go c.pollLoop(pollCtx, jobID, token)

	return snapshot, nil
}

// Cancel stops polling and discards the active job. A cancelled event
// is emitted; any poll response still in flight for the old job is
// ignored once the token changes.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.job == nil {
		c.mu.Unlock()
		return
	}
	c.job.Status = StatusCancelled
	ev := Event{Type: EventCancelled, Job: *c.job}
	c.clearLocked()
	c.mu.Unlock()

	logger.Info("job cancelled", zap.String("job_id", ev.Job.ID))
	c.emit(ev)
}

// clearLocked tears down the active job. Callers hold mu.
func (c *Controller) clearLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.job = nil
	c.token = ""
}

// pollLoop fetches job status on a fixed cadence until the job
// reaches a terminal state or the loop's context is cancelled.
func (c *Controller) pollLoop(ctx context.Context, jobID, token string) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, err := c.client.Status(ctx, jobID)
			if !c.apply(token, status, err) {
				return
			}
		}
	}
}

// apply folds one poll result into the job under the race guard: the
// result only lands if this loop's token still owns the active job.
// Returns false when polling should stop.
func (c *Controller) apply(token string, sr *StatusResponse, pollErr error) bool {
	c.mu.Lock()
	if c.job == nil || c.token != token {
		// Stale response for a cancelled or superseded job.
		c.mu.Unlock()
		return false
	}

	var ev Event
	job := c.job

	switch {
	case pollErr != nil:
		// Fail fast: one failed poll is terminal, the user retries.
		job.Status = StatusError
		job.Message = pollErr.Error()
		ev = Event{Type: EventError, Job: *job, Err: pollErr}
		c.clearLocked()

	default:
		if sr.Message != "" {
			job.Message = sr.Message
		}
		job.Progress = clampProgress(sr.Progress)

		switch parseStatus(sr.Status) {
		case StatusCompleted:
			job.Status = StatusCompleted
			job.Progress = 100
			job.Files = sr.Files
			ev = Event{Type: EventCompleted, Job: *job}
			c.clearLocked()

		case StatusError:
			msg := sr.Message
			if msg == "" {
				msg = "generation failed"
			}
			job.Status = StatusError
			ev = Event{Type: EventError, Job: *job, Err: newError(KindServer, "poll", msg)}
			c.clearLocked()

		case StatusPending:
			job.Status = StatusPending
			ev = Event{Type: EventProgress, Job: *job}

		default:
			job.Status = StatusRunning
			ev = Event{Type: EventProgress, Job: *job}
		}
	}
	c.mu.Unlock()

	// Progress may be dropped under backpressure. The terminal event
	// is the loop's last act and must land.
	if ev.Type == EventProgress {
		c.emit(ev)
		return true
	}
	c.events <- ev
	return false
}

// emit delivers an event, dropping it if the buffer is full.
func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		logger.Warn("event buffer full, dropping event",
			zap.String("type", ev.Type.String()),
			zap.String("job_id", ev.Job.ID))
	}
}
