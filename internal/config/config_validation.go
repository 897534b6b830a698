// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HirePath Authors

package config

import "time"

// Fallbacks applied after all sources are merged. Seven days matches the
// lifetime of issued session tokens.
const (
	DefaultTokenDuration = 7 * 24 * time.Hour
	DefaultTokenIssuer   = "hirepath"
	DefaultHTTPAddress   = ":8080"
)

// applyDefaults fills in zero-valued fields that have sensible fallbacks.
// Required secrets (signing key, DSN) have no defaults and are checked by
// the validation methods instead.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
}

// validate checks invariants shared by every consumer of the merged config.
// Consumer-specific requirements live in [StructuredConfig.ValidateServer]
// and [ClientConfig.validate]: the jobclip client has no use for a database
// DSN and the server has no use for a capture queue, so neither can be
// demanded here.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenDuration < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

// ValidateServer checks that all settings required to run the API server are
// present. Called from the server entrypoint after [GetStructuredConfig].
func (cfg *StructuredConfig) ValidateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.APIAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Queue.Path == "" {
		return ErrInvalidQueueConfigs
	}

	if cfg.Workers.FlushInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
