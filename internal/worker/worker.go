package worker

import (
	"context"
)

// Worker is a long-running background process managed by a WorkerManager.
type Worker interface {
	// Start runs the worker until ctx is canceled or an unrecoverable error occurs.
	Start(ctx context.Context) error

	// Stop signals the worker to shut down.
	Stop() error

	// Name returns the worker's name.
	Name() string
}
