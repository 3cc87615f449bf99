// Package config provides YAML configuration parsing for the ripple server.
//
// Example configuration:
//
//	address: ":8080"
//	shutdown_timeout: 10s
//
//	metrics:
//	  enabled: true
//	  namespace: ripple
//
//	stores:
//	  - name: user
//	    initial:
//	      name: guest
//
//	derived:
//	  - name: ui
//	    deps: [user, cart]
//
// Declarative derived entries merge their dependencies' states shallowly in
// list order; richer compute functions are registered programmatically.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default configuration file name.
const ConfigFileName = "ripple.yaml"

// Config is the root configuration structure.
type Config struct {
	// Address is the HTTP listen address. Defaults to ":8080".
	Address string `yaml:"address"`

	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	// WatchBuffer is the per-watcher change buffer. Defaults to 64.
	WatchBuffer int `yaml:"watch_buffer"`

	// Metrics configures the Prometheus observer and /metrics endpoint.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing configures the OpenTelemetry observer.
	Tracing TracingConfig `yaml:"tracing"`

	// Stores declares seed stores created at startup.
	Stores []StoreConfig `yaml:"stores"`

	// Derived declares derived stores wired at startup.
	Derived []DerivedConfig `yaml:"derived"`
}

// MetricsConfig configures metrics collection.
type MetricsConfig struct {
	// Enabled mounts /metrics and attaches the Prometheus observer.
	// Defaults to true.
	Enabled *bool `yaml:"enabled"`

	// Namespace is the metrics namespace. Defaults to "ripple".
	Namespace string `yaml:"namespace"`
}

// TracingConfig configures tracing.
type TracingConfig struct {
	// Enabled attaches the OpenTelemetry observer. Defaults to false.
	Enabled bool `yaml:"enabled"`

	// TracerName overrides the tracer name. Defaults to "ripple".
	TracerName string `yaml:"tracer_name"`
}

// StoreConfig declares one seed store.
type StoreConfig struct {
	// Name is the registry name. Required, unique.
	Name string `yaml:"name"`

	// Initial is the initial snapshot. May be empty.
	Initial map[string]any `yaml:"initial"`
}

// DerivedConfig declares one derived store.
type DerivedConfig struct {
	// Name is the derived store's name. Required, unique, and distinct
	// from every seed store name.
	Name string `yaml:"name"`

	// Deps are the dependency store names, in compute order. Required.
	Deps []string `yaml:"deps"`
}

// Duration wraps time.Duration for YAML parsing of strings like "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// StdDuration returns the wrapped time.Duration.
func (d Duration) StdDuration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses the configuration file at path, applies defaults,
// and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data, applies defaults, and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.WatchBuffer == 0 {
		c.WatchBuffer = 64
	}
	if c.Metrics.Enabled == nil {
		enabled := true
		c.Metrics.Enabled = &enabled
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "ripple"
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = "ripple"
	}
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, st := range c.Stores {
		if st.Name == "" {
			return fmt.Errorf("stores[%d]: name is required", i)
		}
		if seen[st.Name] {
			return fmt.Errorf("stores[%d]: duplicate store name %q", i, st.Name)
		}
		seen[st.Name] = true
	}

	derivedDeps := make(map[string][]string)
	for i, d := range c.Derived {
		if d.Name == "" {
			return fmt.Errorf("derived[%d]: name is required", i)
		}
		if seen[d.Name] {
			return fmt.Errorf("derived[%d]: name %q already used", i, d.Name)
		}
		seen[d.Name] = true
		if len(d.Deps) == 0 {
			return fmt.Errorf("derived[%d] %q: deps must not be empty", i, d.Name)
		}
		derivedDeps[d.Name] = d.Deps
	}

	// Cycles among declarative derived entries would recurse without bound
	// at runtime; reject them at boot.
	for name := range derivedDeps {
		if hasCycle(name, derivedDeps, map[string]bool{}) {
			return fmt.Errorf("derived %q: cyclic dependency", name)
		}
	}

	return nil
}

// hasCycle walks the declarative derived graph looking for a cycle
// reachable from name.
func hasCycle(name string, deps map[string][]string, onPath map[string]bool) bool {
	if onPath[name] {
		return true
	}
	onPath[name] = true
	defer delete(onPath, name)

	for _, dep := range deps[name] {
		if _, isDerived := deps[dep]; isDerived && hasCycle(dep, deps, onPath) {
			return true
		}
	}
	return false
}
