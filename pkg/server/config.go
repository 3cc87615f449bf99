package server

import "time"

// Config holds the HTTP server configuration.
type Config struct {
	// Address is the listen address (default ":8080").
	Address string

	// ReadTimeout bounds reading an incoming request.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing a response. WebSocket watch connections
	// are exempt after upgrade.
	WriteTimeout time.Duration

	// IdleTimeout bounds keep-alive idle connections.
	IdleTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// WatchWriteTimeout bounds a single websocket push.
	WatchWriteTimeout time.Duration

	// WatchBuffer is the per-connection change buffer. A watcher whose
	// buffer overflows is disconnected rather than blocking propagation.
	WatchBuffer int

	// EnableMetrics mounts the Prometheus /metrics endpoint.
	EnableMetrics bool
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		WatchWriteTimeout: 10 * time.Second,
		WatchBuffer:       64,
		EnableMetrics:     true,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	defaults := DefaultConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaults.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = defaults.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = defaults.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.WatchWriteTimeout == 0 {
		c.WatchWriteTimeout = defaults.WatchWriteTimeout
	}
	if c.WatchBuffer == 0 {
		c.WatchBuffer = defaults.WatchBuffer
	}
	return c
}
