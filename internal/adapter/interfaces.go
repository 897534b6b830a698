// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HirePath Authors

// Package adapter provides the transport layer the jobclip client uses to talk
// to the HirePath server.
//
// The primary abstraction is [APIClient], which decouples the capture flow
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPAPIClient]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrBadRequest] for 400).
package adapter

import (
	"context"

	"github.com/hirepath/hirepath-server/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/api_client_mock.go -package=mock

// APIClient defines transport-agnostic communication with the HirePath
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type APIClient interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Login or when a token is restored from disk.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or an
	// empty string if no token has been set yet.
	Token() string

	// Login authenticates with email and password against
	// POST /api/users/login. On success the returned token is stored via
	// SetToken. Returns [ErrUnauthorized] (wrapped) on invalid credentials.
	Login(ctx context.Context, email, password string) (models.AuthResponse, error)

	// SubmitCapture posts a captured job posting to
	// POST /api/applications/extension and returns the application record
	// the server created from it. Requires a valid bearer token. Returns
	// [ErrBadRequest] (wrapped) when the capture is missing company or role,
	// and [ErrUnauthorized] (wrapped) when the token is absent or expired.
	SubmitCapture(ctx context.Context, capture models.Capture) (models.JobApplication, error)

	// Stats fetches the caller's application stats and KPI progress from
	// GET /api/users/stats. Requires a valid bearer token.
	Stats(ctx context.Context) (models.StatsResponse, error)
}
