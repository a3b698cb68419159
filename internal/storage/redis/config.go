package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the connection URL, e.g. redis://localhost:6379/0
	URL string

	// Prefix namespaces every key so several deployments can share a server
	Prefix string

	PoolSize    int
	PingTimeout time.Duration

	// GameTTL is how long an untouched game is kept. Zero keeps games forever.
	GameTTL time.Duration
}

// DefaultConfig returns the settings used for a local Redis
func DefaultConfig() Config {
	return Config{
		URL:         "redis://localhost:6379",
		Prefix:      "scrabble",
		PoolSize:    10,
		PingTimeout: 5 * time.Second,
		GameTTL:     7 * 24 * time.Hour,
	}
}
