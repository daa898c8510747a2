package server

import "context"

// Server defines the lifecycle contract of the application process.
type Server interface {
	// Run serves requests until ctx is cancelled, then shuts down
	// gracefully.
	Run(ctx context.Context) error
}

// Workers is the set of background workers run next to the HTTP server.
type Workers interface {
	Run(ctx context.Context) error
}
