// Package pipeline sequences the analysis stages for a take: weighted
// progress, shared context accumulation, per-stage durable commits, and the
// fatal versus best-effort failure split.
package pipeline
