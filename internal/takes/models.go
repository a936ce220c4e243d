package takes

import (
	"strings"
	"time"
)

// AcceptStatus represents the reviewer's decision on a take.
type AcceptStatus string

const (
	AcceptUnset    AcceptStatus = ""
	AcceptPending  AcceptStatus = "pending"
	AcceptAccepted AcceptStatus = "accepted"
	AcceptRejected AcceptStatus = "rejected"
)

var acceptStatuses = map[AcceptStatus]struct{}{
	AcceptUnset:    {},
	AcceptPending:  {},
	AcceptAccepted: {},
	AcceptRejected: {},
}

// ParseAcceptStatus converts a string into a known AcceptStatus.
func ParseAcceptStatus(value string) (AcceptStatus, bool) {
	normalized := AcceptStatus(strings.ToLower(strings.TrimSpace(value)))
	_, ok := acceptStatuses[normalized]
	return normalized, ok
}

// Metadata namespaces written by pipeline stages.
const (
	NamespaceCV             = "cv"
	NamespaceAudio          = "audio"
	NamespaceNLP            = "nlp"
	NamespaceScoreBreakdown = "score_breakdown"
	NamespaceEmotion        = "emotion"
	ReasoningSummary        = "summary"
)

// Take represents one recorded clip under review, persisted in SQLite.
type Take struct {
	ID              int64
	ProjectID       int64
	FileName        string
	FilePath        string
	DurationSeconds *float64
	ConfidenceScore *float64
	AcceptStatus    AcceptStatus
	AIMetadata      map[string]any
	AIReasoning     map[string]any
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Project is the container takes belong to. One default project is lazily
// created when none exists.
type Project struct {
	ID          int64
	Name        string
	Description string
	Settings    map[string]any
	CreatedAt   time.Time
}

// Duration returns the measured duration, or 0 when not yet analyzed.
func (t *Take) Duration() float64 {
	if t.DurationSeconds == nil {
		return 0
	}
	return *t.DurationSeconds
}

// Confidence returns the scored confidence, or 0 when the scoring stage has
// not run.
func (t *Take) Confidence() float64 {
	if t.ConfidenceScore == nil {
		return 0
	}
	return *t.ConfidenceScore
}

// Processed reports whether any analysis namespace has been persisted.
func (t *Take) Processed() bool {
	return len(t.AIMetadata) > 0
}
