package pipeline

import (
	"log/slog"

	"slate/internal/analysis"
	"slate/internal/logging"
)

// NamespacedResult is one stage's output as it entered the shared context.
type NamespacedResult struct {
	Namespace string
	Result    analysis.Result
}

// Context accumulates stage outputs across one pipeline run. Each result is
// recorded in order under its namespace and also shallow-merged into a
// flattened top-level view, where later stages may overwrite keys written by
// earlier ones. Every overwrite is logged with the key and both namespaces so
// a shadowed value is traceable instead of silently lost.
type Context struct {
	logger  *slog.Logger
	ordered []NamespacedResult
	flat    map[string]any
	origin  map[string]string
}

// NewContext returns an empty accumulator for one run.
func NewContext(logger *slog.Logger) *Context {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Context{
		logger: logger,
		flat:   map[string]any{},
		origin: map[string]string{},
	}
}

// Add records a stage result under its namespace and merges its keys into the
// flattened view.
func (c *Context) Add(namespace string, result analysis.Result) {
	if result == nil {
		result = analysis.Result{}
	}
	c.ordered = append(c.ordered, NamespacedResult{Namespace: namespace, Result: result})
	c.set(namespace, namespace, map[string]any(result))
	for key, value := range result {
		c.set(namespace, key, value)
	}
}

func (c *Context) set(namespace, key string, value any) {
	if prior, ok := c.origin[key]; ok && prior != namespace {
		c.logger.Debug("context key shadowed",
			logging.String("key", key),
			logging.String("shadowed_namespace", prior),
			logging.String("namespace", namespace),
		)
	}
	c.flat[key] = value
	c.origin[key] = namespace
}

// Result returns the namespaced output of a completed stage, or an empty
// result when that stage has not run.
func (c *Context) Result(namespace string) analysis.Result {
	for i := len(c.ordered) - 1; i >= 0; i-- {
		if c.ordered[i].Namespace == namespace {
			return c.ordered[i].Result
		}
	}
	return analysis.Result{}
}

// String looks a key up in the flattened view.
func (c *Context) String(key, fallback string) string {
	if s, ok := c.flat[key].(string); ok {
		return s
	}
	return fallback
}

// Transcript returns the hoisted audio transcript, or "" before the audio
// stage has run.
func (c *Context) Transcript() string {
	return c.String(analysis.KeyTranscript, "")
}

// Snapshot returns the ordered stage records accumulated so far.
func (c *Context) Snapshot() []NamespacedResult {
	out := make([]NamespacedResult, len(c.ordered))
	copy(out, c.ordered)
	return out
}
