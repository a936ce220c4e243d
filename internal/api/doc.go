// Package api defines the transport payloads shared by the daemon's HTTP
// server and the CLI client, plus the client itself. Domain types are
// converted here so wire shapes can evolve without touching the store.
package api
