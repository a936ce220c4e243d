// Package indexing turns a processed take into a searchable moment: it
// derives an emotion label, shapes behavioral audio markers into embedding
// features, and hands the result to the embedding generator and similarity
// index.
//
// Indexing is best-effort. Every failure is captured inside the adapter and
// reported in the stage result; it can never abort the pipeline.
package indexing
