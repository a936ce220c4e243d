package pipeline

import (
	"context"

	"slate/internal/analysis"
	"slate/internal/takes"
)

// Policy decides what a stage failure does to the run.
type Policy string

const (
	// PolicyCritical aborts the remaining pipeline and flips the progress
	// record to error.
	PolicyCritical Policy = "critical"
	// PolicyBestEffort stages catch failures internally and report them in
	// their result; the run still completes.
	PolicyBestEffort Policy = "best-effort"
)

// RunFunc executes one stage against a take. It may mutate the take (the
// orchestrator commits it after the stage) and read earlier results from the
// shared context. note appends a line to the take's progress log.
type RunFunc func(ctx context.Context, take *takes.Take, sc *Context, note func(string)) (analysis.Result, error)

// Descriptor is one weighted unit of work in the fixed stage sequence.
type Descriptor struct {
	Name      string
	Namespace string
	Weight    float64
	Policy    Policy
	Run       RunFunc
}
