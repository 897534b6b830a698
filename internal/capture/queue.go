package capture

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hirepath/hirepath-server/internal/config"
	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/models"
)

type sqliteQueue struct {
	db     *sql.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewQueue opens (or creates) the SQLite spool at cfg.Path and ensures the
// captures table exists.
func NewQueue(ctx context.Context, cfg config.ClientQueue, logger *logger.Logger) (Queue, error) {
	db, err := newConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if _, err = db.ExecContext(ctx, createCapturesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create captures table: %w", err)
	}

	return &sqliteQueue{db: db, logger: logger, now: time.Now}, nil
}

func (q *sqliteQueue) Enqueue(ctx context.Context, capture models.Capture) error {
	payload, err := json.Marshal(capture)
	if err != nil {
		return fmt.Errorf("encode capture: %w", err)
	}

	if _, err = q.db.ExecContext(ctx, enqueueCapture, string(payload), q.now().UTC()); err != nil {
		return fmt.Errorf("enqueue capture: %w", err)
	}

	return nil
}

func (q *sqliteQueue) Pending(ctx context.Context, limit int) ([]QueuedCapture, error) {
	if limit <= 0 {
		// sqlite treats a negative LIMIT as "no limit"
		limit = -1
	}

	rows, err := q.db.QueryContext(ctx, pendingCaptures, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending captures: %w", err)
	}
	defer rows.Close()

	var queued []QueuedCapture
	for rows.Next() {
		var (
			item    QueuedCapture
			payload string
		)
		if err = rows.Scan(&item.ID, &payload, &item.CreatedAt, &item.Attempts, &item.LastError); err != nil {
			return nil, fmt.Errorf("scan queued capture: %w", err)
		}
		if err = json.Unmarshal([]byte(payload), &item.Capture); err != nil {
			return nil, fmt.Errorf("decode queued capture %d: %w", item.ID, err)
		}

		queued = append(queued, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate queued captures: %w", err)
	}

	return queued, nil
}

func (q *sqliteQueue) Remove(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, removeCapture, id); err != nil {
		return fmt.Errorf("remove capture %d: %w", id, err)
	}

	return nil
}

func (q *sqliteQueue) MarkFailed(ctx context.Context, id int64, cause string) error {
	if _, err := q.db.ExecContext(ctx, markCaptureFailed, cause, id); err != nil {
		return fmt.Errorf("mark capture %d failed: %w", id, err)
	}

	return nil
}

func (q *sqliteQueue) Len(ctx context.Context) (int, error) {
	var count int
	if err := q.db.QueryRowContext(ctx, countCaptures).Scan(&count); err != nil {
		return 0, fmt.Errorf("count captures: %w", err)
	}

	return count, nil
}

func (q *sqliteQueue) Close() error {
	return q.db.Close()
}
