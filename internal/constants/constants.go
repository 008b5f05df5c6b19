// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout is the timeout for a single description request
	DefaultAPITimeout = 60 * time.Second
	// DefaultUploadDelay simulates the time an upload takes before describing starts
	DefaultUploadDelay = 1500 * time.Millisecond
	// DefaultShutdownTimeout bounds graceful HTTP shutdown
	DefaultShutdownTimeout = 10 * time.Second
)

// Application defaults
const (
	AppName              = "remote-hub"
	DefaultListenAddr    = ":8080"
	DefaultModel         = "gpt-4o-mini"
	DefaultMaxUploadSize = "32MB"

	// Connection settings shown by the simulated terminal
	DefaultHost     = "remote-hub"
	DefaultPort     = 22
	DefaultUsername = "user"
)

// Description service providers
const (
	ProviderOpenAI  = "openai"
	ProviderOffline = "offline"
)
