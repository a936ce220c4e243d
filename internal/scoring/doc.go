// Package scoring reduces multi-modal analysis results into a single
// confidence score with a human-readable rationale.
//
// Compute is pure and total: every lookup is defaulted, so it never fails and
// identical inputs always produce identical output.
package scoring
