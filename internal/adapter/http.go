package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/hirepath/hirepath-server/internal/config"
	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/utils"
	"github.com/hirepath/hirepath-server/models"
)

type httpAPIClient struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAPIClient constructs an HTTP/REST implementation of [APIClient].
// It normalises and validates the base URL from adapterCfg.APIAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.APIAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPAPIClient(adapterCfg config.ClientAdapter, logger *logger.Logger) (APIClient, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.APIAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid api address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpAPIClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [APIClient]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpAPIClient) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [APIClient]. It returns the bearer token currently held
// by the client, or an empty string if none has been set.
func (h *httpAPIClient) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login implements [APIClient]. It POSTs the credentials to
// POST /api/users/login. On success the token from the response body is
// stored via SetToken. Returns an error if the request fails or the server
// returns a non-2xx status.
func (h *httpAPIClient) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{Email: email, Password: password}).
		SetResult(&auth).
		Post("/api/users/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	if auth.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("login response carries no token")
	}

	h.SetToken(auth.Token)
	return auth, nil
}

// SubmitCapture implements [APIClient]. It POSTs the capture payload to
// POST /api/applications/extension and decodes the created application from
// the response. Requires a valid bearer token.
func (h *httpAPIClient) SubmitCapture(ctx context.Context, capture models.Capture) (models.JobApplication, error) {
	var created models.JobApplication

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(capture).
		SetResult(&created).
		Post("/api/applications/extension")
	if err != nil {
		return models.JobApplication{}, fmt.Errorf("submit capture request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.JobApplication{}, err
	}

	return created, nil
}

// Stats implements [APIClient]. It GETs GET /api/users/stats and decodes the
// stats, KPI settings, and progress block. Requires a valid bearer token.
func (h *httpAPIClient) Stats(ctx context.Context) (models.StatsResponse, error) {
	var stats models.StatsResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&stats).
		Get("/api/users/stats")
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("stats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatsResponse{}, err
	}

	return stats, nil
}

func (h *httpAPIClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
