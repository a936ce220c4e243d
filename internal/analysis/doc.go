// Package analysis defines the contracts for the external analyzers the
// pipeline drives (visual, audio, script alignment) and the Result mapping
// type their outputs share.
//
// Analyzer outputs are opaque mappings: the pipeline never assumes a field is
// present. Result's typed accessors default on absence so missing upstream
// data degrades scores and features instead of failing a run.
package analysis
