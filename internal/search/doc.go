// Package search defines the contracts for the semantic moment index: the
// embedding generator and the vector similarity index the pipeline hands
// finished moments to. Both are external collaborators; this package only
// fixes the request/payload shapes and the moment identity scheme.
package search
