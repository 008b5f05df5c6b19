package api

import (
	"context"

	"github.com/quocvuong92/remote-hub/internal/config"
	"github.com/quocvuong92/remote-hub/internal/constants"
	"github.com/quocvuong92/remote-hub/internal/logging"
)

// Describer produces a short description of a file. The file panel accepts
// any value with this method.
type Describer interface {
	Describe(ctx context.Context, fileName, fileContent string) (string, error)
}

// NewDescriber creates a description service based on configuration.
// Provider selection follows this priority:
//  1. Explicit provider in cfg.Provider ("openai" or "offline")
//  2. Auto-detect: the chat endpoint when endpoint and key are set, otherwise offline
//
// cfg must have been validated.
func NewDescriber(cfg *config.Config) (Describer, error) {
	switch cfg.Provider {
	case constants.ProviderOpenAI:
		if !cfg.HasRemoteDescriber() {
			return nil, config.ErrEndpointNotFound
		}
		return NewChatClient(cfg), nil

	case constants.ProviderOffline:
		return OfflineDescriber{}, nil

	case config.DefaultProvider:
		if cfg.HasRemoteDescriber() {
			return NewChatClient(cfg), nil
		}
		logging.Warn("no description endpoint configured, using offline descriptions")
		return OfflineDescriber{}, nil

	default:
		return nil, config.ErrInvalidProvider
	}
}
