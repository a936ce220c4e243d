package api

import (
	"slate/internal/dashboard"
	"slate/internal/pipeline"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Take describes a take in a transport-friendly format.
type Take struct {
	ID              int64          `json:"id"`
	ProjectID       int64          `json:"projectId"`
	FileName        string         `json:"fileName"`
	FilePath        string         `json:"filePath"`
	DurationSeconds *float64       `json:"durationSeconds,omitempty"`
	ConfidenceScore *float64       `json:"confidenceScore,omitempty"`
	AcceptStatus    string         `json:"acceptStatus,omitempty"`
	AIMetadata      map[string]any `json:"aiMetadata,omitempty"`
	AIReasoning     map[string]any `json:"aiReasoning,omitempty"`
	CreatedAt       string         `json:"createdAt,omitempty"`
	UpdatedAt       string         `json:"updatedAt,omitempty"`
}

// Project describes the active project.
type Project struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Settings    map[string]any `json:"settings,omitempty"`
	CreatedAt   string         `json:"createdAt,omitempty"`
}

// CreateTakeRequest registers a new take for processing.
type CreateTakeRequest struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}

// UpdateTakeRequest carries a reviewer's acceptance decision.
type UpdateTakeRequest struct {
	AcceptStatus string `json:"acceptStatus"`
}

// TakeListResponse wraps a collection of takes.
type TakeListResponse struct {
	Takes []Take `json:"takes"`
}

// TakeResponse wraps a single take.
type TakeResponse struct {
	Take Take `json:"take"`
}

// ProcessResponse acknowledges an asynchronous pipeline run.
type ProcessResponse struct {
	TakeID int64  `json:"takeId"`
	Status string `json:"status"`
}

// StatusResponse wraps a progress record snapshot for polling clients.
type StatusResponse struct {
	TakeID   int64           `json:"takeId"`
	Progress pipeline.Record `json:"progress"`
}

// StatsResponse wraps the dashboard aggregate.
type StatsResponse struct {
	Stats dashboard.Stats `json:"stats"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	DBPath       string `json:"dbPath"`
	LockFilePath string `json:"lockFilePath"`
	TrackedRuns  int    `json:"trackedRuns"`
	TotalTakes   int    `json:"totalTakes"`
}
