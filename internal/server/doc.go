// Package server wires and runs the HTTP API together with the background
// workers.
//
// It provides startup and graceful shutdown: once the run context is
// cancelled the HTTP server stops accepting requests, in-flight requests
// are given a grace period, and the workers are cancelled.
package server
