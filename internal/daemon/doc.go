// Package daemon runs the long-lived slate service: single-instance lock,
// the HTTP API, and the scheduled progress-record sweep.
package daemon
