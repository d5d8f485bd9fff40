package feedback

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

const (
	MaxVisible = 3
	Lifetime   = 5 * time.Second
	// maxPending bounds the queue when pages are never rendered.
	maxPending = 20
)

// Event is one notification. Time spent paused does not count toward its lifetime.
type Event struct {
	ID        string        `json:"id"`
	Severity  Severity      `json:"severity"`
	Message   string        `json:"message"`
	Direction string        `json:"direction"`
	CreatedAt time.Time     `json:"createdAt"`
	PausedFor time.Duration `json:"pausedFor"`
	PausedAt  *time.Time    `json:"pausedAt,omitempty"`
}

// Remaining is how long the event stays visible from now.
func (e Event) Remaining(now time.Time) time.Duration {
	elapsed := now.Sub(e.CreatedAt) - e.PausedFor
	if e.PausedAt != nil {
		elapsed -= now.Sub(*e.PausedAt)
	}
	left := Lifetime - elapsed
	if left < 0 {
		return 0
	}
	return left
}

func (e Event) Expired(now time.Time) bool {
	return e.Remaining(now) == 0
}

func (e Event) Paused() bool {
	return e.PausedAt != nil
}

// Queue holds pending events for one session. It is serialized with the session.
type Queue struct {
	Events []Event `json:"events"`
}

func (q *Queue) Push(severity Severity, message, direction string, now time.Time) Event {
	e := Event{
		ID:        uuid.New().String(),
		Severity:  severity,
		Message:   message,
		Direction: direction,
		CreatedAt: now,
	}
	q.Events = append(q.Events, e)
	if len(q.Events) > maxPending {
		q.Events = q.Events[len(q.Events)-maxPending:]
	}
	return e
}

// Visible returns at most MaxVisible live events, newest first.
func (q *Queue) Visible(now time.Time) []Event {
	q.Prune(now)
	out := make([]Event, len(q.Events))
	copy(out, q.Events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > MaxVisible {
		out = out[:MaxVisible]
	}
	return out
}

// Prune drops expired events.
func (q *Queue) Prune(now time.Time) {
	live := q.Events[:0]
	for _, e := range q.Events {
		if !e.Expired(now) {
			live = append(live, e)
		}
	}
	q.Events = live
}

func (q *Queue) Dismiss(id string) bool {
	for i, e := range q.Events {
		if e.ID == id {
			q.Events = append(q.Events[:i], q.Events[i+1:]...)
			return true
		}
	}
	return false
}

// Pause freezes an event's countdown, e.g. on hover or focus loss.
func (q *Queue) Pause(id string, now time.Time) bool {
	for i := range q.Events {
		if q.Events[i].ID == id && q.Events[i].PausedAt == nil {
			at := now
			q.Events[i].PausedAt = &at
			return true
		}
	}
	return false
}

func (q *Queue) Resume(id string, now time.Time) bool {
	for i := range q.Events {
		if q.Events[i].ID == id && q.Events[i].PausedAt != nil {
			q.Events[i].PausedFor += now.Sub(*q.Events[i].PausedAt)
			q.Events[i].PausedAt = nil
			return true
		}
	}
	return false
}

func (q *Queue) Len() int {
	return len(q.Events)
}
