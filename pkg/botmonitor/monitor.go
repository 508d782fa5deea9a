package botmonitor

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	StageInbound = "inbound"
	StageReply   = "reply"
	StageForward = "forward"

	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Event records one processing stage of an inbound webhook.
type Event struct {
	Timestamp  time.Time         `json:"timestamp"`
	TraceID    string            `json:"trace_id"`
	InstanceID string            `json:"instance_id"`
	ChatJID    string            `json:"chat_jid"`
	Stage      string            `json:"stage"`  // inbound | reply | forward
	Kind       string            `json:"kind"`   // event name or matched rule
	Status     string            `json:"status"` // ok | error | skipped
	Error      string            `json:"error,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	DurationMs int64             `json:"duration_ms"`
}

type Stats struct {
	TotalInbound  int64   `json:"total_inbound"`
	TotalReplies  int64   `json:"total_replies"`
	TotalForwards int64   `json:"total_forwards"`
	TotalSkipped  int64   `json:"total_skipped"`
	TotalErrors   int64   `json:"total_errors"`
	RecentEvents  []Event `json:"recent_events"`
}

// Monitor keeps counters plus a ring buffer of the most recent events.
type Monitor struct {
	eventsMu sync.Mutex
	events   []Event
	idx      int
	count    int

	totalInbound  int64
	totalReplies  int64
	totalForwards int64
	totalSkipped  int64
	totalErrors   int64
}

func New(size int) *Monitor {
	if size <= 0 {
		size = 200
	}
	return &Monitor{events: make([]Event, size)}
}

func (m *Monitor) Record(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	switch e.Stage {
	case StageInbound:
		atomic.AddInt64(&m.totalInbound, 1)
	case StageReply:
		if e.Status == StatusOK {
			atomic.AddInt64(&m.totalReplies, 1)
		}
	case StageForward:
		if e.Status == StatusOK {
			atomic.AddInt64(&m.totalForwards, 1)
		}
	}
	switch e.Status {
	case StatusSkipped:
		atomic.AddInt64(&m.totalSkipped, 1)
	case StatusError:
		atomic.AddInt64(&m.totalErrors, 1)
	}
	observe(e)

	m.eventsMu.Lock()
	m.events[m.idx] = e
	m.idx = (m.idx + 1) % len(m.events)
	if m.count < len(m.events) {
		m.count++
	}
	m.eventsMu.Unlock()
}

// GetStats returns the counters and the buffered events, oldest first.
func (m *Monitor) GetStats() Stats {
	m.eventsMu.Lock()
	res := make([]Event, 0, m.count)
	start := (m.idx - m.count + len(m.events)) % len(m.events)
	for i := 0; i < m.count; i++ {
		res = append(res, m.events[(start+i)%len(m.events)])
	}
	m.eventsMu.Unlock()

	return Stats{
		TotalInbound:  atomic.LoadInt64(&m.totalInbound),
		TotalReplies:  atomic.LoadInt64(&m.totalReplies),
		TotalForwards: atomic.LoadInt64(&m.totalForwards),
		TotalSkipped:  atomic.LoadInt64(&m.totalSkipped),
		TotalErrors:   atomic.LoadInt64(&m.totalErrors),
		RecentEvents:  res,
	}
}
