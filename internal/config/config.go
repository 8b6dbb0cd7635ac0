// Package config provides hierarchical configuration loading for CodeBridge.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the CodeBridge service.
type Config struct {
	Server   Server   `yaml:"server"`
	Editor   Editor   `yaml:"editor"`
	Debounce Debounce `yaml:"debounce"`
	Cache    Cache    `yaml:"cache"`
	NATS     NATS     `yaml:"nats"`
	MCP      MCP      `yaml:"mcp"`
	Logging  Logging  `yaml:"logging"`
}

// Server holds HTTP server configuration for the WebSocket and MCP surface.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Editor holds editor CLI configuration for open-file commands.
type Editor struct {
	Command string `yaml:"command"`
}

// Debounce holds selection debouncing configuration.
type Debounce struct {
	QuietPeriod time.Duration `yaml:"quiet_period"`
}

// Cache holds file content cache configuration for range extraction.
type Cache struct {
	MaxSizeMB int64         `yaml:"max_size_mb"`
	TTL       time.Duration `yaml:"ttl"`
}

// NATS holds optional notification forwarding configuration. Forwarding
// is disabled while URL is empty.
type NATS struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// MCP holds Model Context Protocol server configuration.
type MCP struct {
	APIKey string `yaml:"api_key"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
	Async   bool   `yaml:"async"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "http://localhost:3000",
		},
		Editor: Editor{
			Command: "zed",
		},
		Debounce: Debounce{
			QuietPeriod: 150 * time.Millisecond,
		},
		Cache: Cache{
			MaxSizeMB: 64,
			TTL:       5 * time.Minute,
		},
		NATS: NATS{
			Subject: "editor.notifications",
		},
		Logging: Logging{
			Level:   "info",
			Service: "codebridge",
		},
	}
}
