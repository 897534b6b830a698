// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HirePath Authors

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/hirepath/hirepath-server/internal/adapter"
	"github.com/hirepath/hirepath-server/internal/capture"
	"github.com/hirepath/hirepath-server/internal/config"
	"github.com/hirepath/hirepath-server/internal/logger"
)

// flushBatchSize caps how many queued captures one flush pass delivers.
const flushBatchSize = 50

// FlushWorker drains the offline capture queue: every interval it takes
// queued captures in arrival order and posts them to the server. Delivered
// captures leave the queue; captures the server permanently rejects (missing
// company or role) are dropped with a warning; transient failures stay
// queued with their attempt counter bumped.
type FlushWorker struct {
	queue    capture.Queue
	client   adapter.APIClient
	interval time.Duration
	logger   *logger.Logger
}

// NewFlushWorker builds a flush worker from the jobclip worker settings.
func NewFlushWorker(queue capture.Queue, client adapter.APIClient, cfg config.ClientWorkers, logger *logger.Logger) *FlushWorker {
	return &FlushWorker{
		queue:    queue,
		client:   client,
		interval: cfg.FlushInterval,
		logger:   logger,
	}
}

// Run implements [Worker]. It starts a goroutine that performs a flush pass
// every interval until the process exits.
func (w *FlushWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for range ticker.C {
			if _, err := w.FlushOnce(context.Background()); err != nil {
				w.logger.Warn().Err(err).Msg("flush pass aborted")
			}
		}
	}()
}

// FlushOnce performs a single flush pass and reports how many captures were
// delivered. The pass stops early on an unauthorized response (a stale token
// fails every remaining capture the same way) and on transport errors.
func (w *FlushWorker) FlushOnce(ctx context.Context) (int, error) {
	pending, err := w.queue.Pending(ctx, flushBatchSize)
	if err != nil {
		return 0, err
	}

	flushed := 0
	for _, item := range pending {
		_, err = w.client.SubmitCapture(ctx, item.Capture)
		if err == nil {
			if err = w.queue.Remove(ctx, item.ID); err != nil {
				return flushed, err
			}
			flushed++
			continue
		}

		if errors.Is(err, adapter.ErrUnauthorized) {
			return flushed, err
		}

		// the server will never accept this capture, no point retrying
		if errors.Is(err, adapter.ErrBadRequest) {
			w.logger.Warn().
				Err(err).
				Int64("capture_id", item.ID).
				Str("company", item.Capture.CompanyName).
				Msg("dropping capture rejected by server")
			if err = w.queue.Remove(ctx, item.ID); err != nil {
				return flushed, err
			}
			continue
		}

		if markErr := w.queue.MarkFailed(ctx, item.ID, err.Error()); markErr != nil {
			return flushed, markErr
		}
		return flushed, err
	}

	return flushed, nil
}
