package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the jobclip transport layer.
type ClientAdapter struct {
	// APIAddress is the base URL of the HirePath API server.
	APIAddress string
	// RequestTimeout is the default timeout for outbound API requests.
	RequestTimeout time.Duration
	// TokenPath is the file where the session token is kept between runs.
	TokenPath string
}

// ClientQueue contains offline capture queue settings for jobclip.
type ClientQueue struct {
	// Path is the SQLite file holding captures recorded while offline.
	Path string
}

// ClientWorkers contains jobclip background worker settings.
type ClientWorkers struct {
	// FlushInterval defines how often queued captures are retried.
	FlushInterval time.Duration
}

// ClientConfig is the top-level jobclip configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains transport addresses and timeouts.
	Adapter ClientAdapter
	// Queue contains offline capture queue settings.
	Queue ClientQueue
	// Workers contains background flush settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a jobclip-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			APIAddress:     cfg.Capture.APIAddress,
			RequestTimeout: cfg.Capture.RequestTimeout,
			TokenPath:      cfg.Capture.TokenPath,
		},
		Queue: ClientQueue{
			Path: cfg.Capture.QueuePath,
		},
		Workers: ClientWorkers{FlushInterval: cfg.Capture.FlushInterval},
	}

	return clientCfg, clientCfg.validate()
}
