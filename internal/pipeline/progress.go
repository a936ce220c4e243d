package pipeline

import (
	"sort"
	"sync"
	"time"
)

// Status is the overall state of a take's most recent pipeline run.
type Status string

const (
	StatusUnknown    Status = "unknown"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusError      Status = "error"
)

// StageState is the per-stage state inside a progress record.
type StageState string

const (
	StagePending   StageState = "pending"
	StageRunning   StageState = "running"
	StageCompleted StageState = "completed"
)

// Record is a point-in-time snapshot of one take's run, shaped for the
// polling API.
type Record struct {
	Status       Status                `json:"status"`
	Percent      int                   `json:"percent"`
	CurrentStage string                `json:"current_stage,omitempty"`
	Stages       map[string]StageState `json:"stages,omitempty"`
	Logs         []string              `json:"logs,omitempty"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// Tracker holds progress records for concurrently polling clients. It is
// bounded: records expire after a TTL and the map never exceeds maxRecords,
// evicting the stalest entries first, so a long-lived daemon cannot grow it
// without limit.
type Tracker struct {
	mu         sync.Mutex
	records    map[int64]*Record
	ttl        time.Duration
	maxRecords int
	now        func() time.Time
}

// NewTracker builds a tracker with the given TTL and record cap. Non-positive
// values fall back to 4h and 1024.
func NewTracker(ttl time.Duration, maxRecords int) *Tracker {
	if ttl <= 0 {
		ttl = 4 * time.Hour
	}
	if maxRecords <= 0 {
		maxRecords = 1024
	}
	return &Tracker{
		records:    map[int64]*Record{},
		ttl:        ttl,
		maxRecords: maxRecords,
		now:        time.Now,
	}
}

// Begin resets the record for a take at the start of a run. All stages start
// pending and the log starts empty.
func (t *Tracker) Begin(takeID int64, stageNames []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	stages := make(map[string]StageState, len(stageNames))
	for _, name := range stageNames {
		stages[name] = StagePending
	}
	if len(t.records) >= t.maxRecords {
		t.evictLocked(t.now())
	}
	t.records[takeID] = &Record{
		Status:    StatusProcessing,
		Stages:    stages,
		UpdatedAt: t.now(),
	}
}

// StageRunning marks a stage as the current one.
func (t *Tracker) StageRunning(takeID int64, stage string) {
	t.mutate(takeID, func(r *Record) {
		r.CurrentStage = stage
		r.Stages[stage] = StageRunning
	})
}

// StageCompleted marks a stage done and advances the weighted percentage.
func (t *Tracker) StageCompleted(takeID int64, stage string, percent int) {
	t.mutate(takeID, func(r *Record) {
		r.Stages[stage] = StageCompleted
		r.Percent = percent
	})
}

// Log appends a line to the take's progress log.
func (t *Tracker) Log(takeID int64, line string) {
	t.mutate(takeID, func(r *Record) {
		r.Logs = append(r.Logs, line)
	})
}

// Complete marks the run finished.
func (t *Tracker) Complete(takeID int64) {
	t.mutate(takeID, func(r *Record) {
		r.Status = StatusCompleted
		r.Percent = 100
		r.CurrentStage = ""
	})
}

// Fail marks the run errored, recording the failure message in the log.
func (t *Tracker) Fail(takeID int64, message string) {
	t.mutate(takeID, func(r *Record) {
		r.Status = StatusError
		r.CurrentStage = ""
		if message != "" {
			r.Logs = append(r.Logs, "ERROR: "+message)
		}
	})
}

func (t *Tracker) mutate(takeID int64, fn func(*Record)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[takeID]
	if !ok {
		return
	}
	fn(r)
	r.UpdatedAt = t.now()
}

// Snapshot returns a copy of the take's record. Unknown takes report
// StatusUnknown and ok=false.
func (t *Tracker) Snapshot(takeID int64) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	r, ok := t.records[takeID]
	if !ok {
		return Record{Status: StatusUnknown}, false
	}
	out := *r
	out.Stages = make(map[string]StageState, len(r.Stages))
	for name, state := range r.Stages {
		out.Stages[name] = state
	}
	out.Logs = append([]string(nil), r.Logs...)
	return out, true
}

// Len reports how many records are currently held.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

// Evict removes expired records and trims the map back under the cap. It
// returns how many records were dropped. Active runs are never evicted.
func (t *Tracker) Evict(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.evictLocked(now)
}

func (t *Tracker) evictLocked(now time.Time) int {
	dropped := 0
	for id, r := range t.records {
		if r.Status != StatusProcessing && now.Sub(r.UpdatedAt) > t.ttl {
			delete(t.records, id)
			dropped++
		}
	}
	if len(t.records) <= t.maxRecords {
		return dropped
	}
	type entry struct {
		id int64
		at time.Time
	}
	idle := make([]entry, 0, len(t.records))
	for id, r := range t.records {
		if r.Status != StatusProcessing {
			idle = append(idle, entry{id: id, at: r.UpdatedAt})
		}
	}
	sort.Slice(idle, func(i, j int) bool { return idle[i].at.Before(idle[j].at) })
	for _, e := range idle {
		if len(t.records) <= t.maxRecords {
			break
		}
		delete(t.records, e.id)
		dropped++
	}
	return dropped
}
