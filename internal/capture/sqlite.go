package capture

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hirepath/hirepath-server/internal/config"
	"github.com/hirepath/hirepath-server/internal/logger"
)

func newConnectSQLite(ctx context.Context, cfg config.ClientQueue, log *logger.Logger) (*sql.DB, error) {
	// db will be in file
	if err := createQueueFileIfNotExists(cfg.Path); err != nil {
		log.Err(err).Str("func", "newConnectSQLite").Msg("error creating queue file")
		return nil, fmt.Errorf("error creating queue file")
	}

	conn, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		log.Err(err).Str("func", "newConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to queue DB")
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "newConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "newConnectSQLite").Msg("connected to queue database successfully")

	return conn, nil
}

func createQueueFileIfNotExists(dbFile string) error {
	// in-memory databases have no backing file
	if dbFile == ":memory:" || strings.Contains(dbFile, "mode=memory") {
		return nil
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		if dir := filepath.Dir(dbFile); dir != "." {
			if err = os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("error creating queue dir: %w", err)
			}
		}

		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating queue file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
