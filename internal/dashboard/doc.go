// Package dashboard folds the full take list into the aggregate statistics
// the review dashboard polls for.
package dashboard
