// Package logging provides the slog-based logging stack for Slate.
//
// It offers a pretty console handler for interactive use, a JSON handler for
// machine consumption, attribute helpers shared across packages, and context
// integration so take identifiers, stage names, and request correlation IDs
// recorded via internal/services flow into every log line automatically.
package logging
