// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HirePath Authors

package capture

const (
	createCapturesTable = `
		CREATE TABLE IF NOT EXISTS captures (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			payload    TEXT      NOT NULL,
			created_at TIMESTAMP NOT NULL,
			attempts   INTEGER   NOT NULL DEFAULT 0,
			last_error TEXT      NOT NULL DEFAULT ''
		);`

	enqueueCapture = `
		INSERT INTO captures (
			payload,
			created_at
		) VALUES ($1, $2);`

	pendingCaptures = `
		SELECT
			id,
			payload,
			created_at,
			attempts,
			last_error
		FROM captures
		ORDER BY id
		LIMIT $1;`

	removeCapture = `
		DELETE FROM captures
		WHERE id = $1;`

	markCaptureFailed = `
		UPDATE captures SET
			attempts   = attempts + 1,
			last_error = $1
		WHERE id = $2;`

	countCaptures = `
		SELECT COUNT(*) FROM captures;`
)
