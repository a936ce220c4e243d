// Package takes manages persistence for recorded takes and their project,
// backed by SQLite.
//
// A Take carries the namespaced AI analysis fields (ai_metadata, ai_reasoning)
// the pipeline enriches stage by stage. Both are always materialized as maps
// so stages can mutate their own namespace without clobbering siblings; the
// store serializes them to JSON columns on every update, which is what gives
// the pipeline its per-stage crash durability.
package takes
