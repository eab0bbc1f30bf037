package catalog

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/koustreak/dremcat/internal/logger"
)

// EventKind classifies a discovery status event.
type EventKind string

const (
	// EventScanned marks an entity the run descended into.
	EventScanned EventKind = "scanned"

	// EventFiltered marks a database the configured filter rejected.
	// Filtering is an audit fact, not an error.
	EventFiltered EventKind = "filtered"

	// EventWarning marks a per-entity failure the run recovered from,
	// e.g. one unreachable database among many.
	EventWarning EventKind = "warning"
)

// Event is one structured status record of a discovery run.
type Event struct {
	Kind   EventKind `json:"kind"`
	Entity string    `json:"entity"`
	Reason string    `json:"reason,omitempty"`
	Time   time.Time `json:"time"`
}

// Reporter is the status sink the discovery loop feeds. Filtered and
// failed databases are reported here instead of raised, so one bad
// candidate never aborts the run.
type Reporter interface {
	Scanned(entity string)
	Filtered(entity, reason string)
	Warning(entity string, err error)
}

// Summary is a point-in-time view of a run, served by the status endpoint.
type Summary struct {
	RunID     string    `json:"runId"`
	StartedAt time.Time `json:"startedAt"`
	Scanned   int       `json:"scanned"`
	Filtered  int       `json:"filtered"`
	Warnings  int       `json:"warnings"`
	Events    []Event   `json:"events"`
}

// Recorder is the standard Reporter: it records events for the status
// endpoint and logs each one as it arrives. The mutex exists only for the
// status server reading summaries while the single discovery goroutine
// writes; discovery itself is strictly sequential.
type Recorder struct {
	mu      sync.Mutex
	runID   string
	started time.Time
	events  []Event
	log     *logger.Logger
}

// NewRecorder creates a Recorder with a fresh run id.
func NewRecorder(log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.New(nil)
	}
	return &Recorder{
		runID:   uuid.NewString(),
		started: time.Now().UTC(),
		log:     log,
	}
}

// RunID returns the identifier of this discovery run.
func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) Scanned(entity string) {
	r.append(Event{Kind: EventScanned, Entity: entity, Time: time.Now().UTC()})
	r.log.With().Str("entity", entity).Logger().Debug("scanned")
}

func (r *Recorder) Filtered(entity, reason string) {
	r.append(Event{Kind: EventFiltered, Entity: entity, Reason: reason, Time: time.Now().UTC()})
	r.log.InfoWith("filtered", map[string]interface{}{
		"entity": entity,
		"reason": reason,
	})
}

func (r *Recorder) Warning(entity string, err error) {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	r.append(Event{Kind: EventWarning, Entity: entity, Reason: reason, Time: time.Now().UTC()})
	r.log.WarnWith("discovery warning", err, map[string]interface{}{
		"entity": entity,
	})
}

func (r *Recorder) append(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Summary snapshots the run's events and counters.
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Summary{
		RunID:     r.runID,
		StartedAt: r.started,
		Events:    append([]Event(nil), r.events...),
	}
	for _, e := range r.events {
		switch e.Kind {
		case EventScanned:
			s.Scanned++
		case EventFiltered:
			s.Filtered++
		case EventWarning:
			s.Warnings++
		}
	}
	return s
}
