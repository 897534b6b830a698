// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HirePath Authors

// Package capture holds the local half of the jobclip client: the SQLite
// offline queue that spools captures recorded while the server is
// unreachable, the session file that keeps the bearer token between
// invocations, and the terminal quick-add form.
package capture

import (
	"context"
	"time"

	"github.com/hirepath/hirepath-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/capture_queue_mock.go -package=mock

// QueuedCapture is one spooled capture waiting to be delivered to the server.
type QueuedCapture struct {
	ID        int64
	Capture   models.Capture
	CreatedAt time.Time
	Attempts  int
	LastError string
}

// Queue is the offline capture spool. Captures are stored in arrival order
// and drained FIFO by the flush worker.
type Queue interface {
	// Enqueue appends a capture to the spool.
	Enqueue(ctx context.Context, capture models.Capture) error

	// Pending returns up to limit captures in arrival order. A limit of zero
	// or less returns all queued captures.
	Pending(ctx context.Context, limit int) ([]QueuedCapture, error)

	// Remove drops a capture from the spool once it has been delivered or
	// permanently rejected.
	Remove(ctx context.Context, id int64) error

	// MarkFailed records a failed delivery attempt: it increments the
	// attempt counter and stores cause for later inspection.
	MarkFailed(ctx context.Context, id int64, cause string) error

	// Len reports how many captures are waiting in the spool.
	Len(ctx context.Context) (int, error)

	// Close releases the underlying database handle.
	Close() error
}
