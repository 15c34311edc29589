package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// DefaultSubject is the NATS subject run events are published on.
const DefaultSubject = "cropsense.runs"

// RunEvent is the wire form of a finished run, published after every
// correction attempt.
type RunEvent struct {
	RunID        string    `json:"run_id"`
	Status       string    `json:"status"` // "completed" or "failed"
	Input        string    `json:"input"`
	Output       string    `json:"output,omitempty"`
	Rows         int       `json:"rows"`
	FallbackRows int       `json:"fallback_rows"`
	Seed         int64     `json:"seed"`
	DurationMS   int64     `json:"duration_ms"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

func completedEvent(r *Report) RunEvent {
	return RunEvent{
		RunID:        r.RunID,
		Status:       "completed",
		Input:        r.Input,
		Output:       r.Output,
		Rows:         r.Rows,
		FallbackRows: r.FallbackRows,
		Seed:         r.Seed,
		DurationMS:   r.Duration.Milliseconds(),
		Timestamp:    time.Now(),
	}
}

func failedEvent(r *Report, cause error) RunEvent {
	e := completedEvent(r)
	e.Status = "failed"
	e.Output = ""
	e.Error = cause.Error()
	return e
}

// Publisher emits run events to NATS. A nil *Publisher is valid and
// publishes nothing, so event delivery stays optional.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// ConnectPublisher dials NATS and returns a Publisher on the subject. An
// empty URL means events are disabled; the returned nil Publisher is safe
// to use.
func ConnectPublisher(url, subject string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	if subject == "" {
		subject = DefaultSubject
	}
	nc, err := nats.Connect(url,
		nats.Name("cropsense"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	return &Publisher{nc: nc, subject: subject}, nil
}

// Publish sends one run event. Publishing respects an already-cancelled
// context but does not otherwise block on delivery.
func (p *Publisher) Publish(ctx context.Context, event RunEvent) error {
	if p == nil || p.nc == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal run event: %w", err)
	}
	if err := p.nc.Publish(p.subject, data); err != nil {
		return fmt.Errorf("publish run event: %w", err)
	}
	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p != nil && p.nc != nil {
		_ = p.nc.Drain()
	}
}
