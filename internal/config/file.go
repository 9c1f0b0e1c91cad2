package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// Server holds the settings of the SSH server.
type Server struct {
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port"`
	HostKeyPath string        `yaml:"hostKeyPath"`
	IdleTimeout time.Duration `yaml:"idleTimeout"` // 0 disables idle disconnects
	LogLevel    string        `yaml:"logLevel"`
}

// DefaultServer returns the built-in server settings.
func DefaultServer() Server {
	return Server{
		Host:        "::",
		Port:        "2222",
		HostKeyPath: "/app/keys/host_key",
		IdleTimeout: 120 * time.Second,
		LogLevel:    "info",
	}
}

// LoadServer builds server settings from the defaults, then the YAML file at
// path (skipped when path is empty), then the SSH_* and LOG_LEVEL environment
// variables.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Server{}, fmt.Errorf("failed to read server config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Server{}, fmt.Errorf("failed to parse server config YAML: %w", err)
		}
	}

	cfg.Host = GetEnv("SSH_HOST", cfg.Host)
	cfg.Port = GetEnv("SSH_PORT", cfg.Port)
	cfg.HostKeyPath = GetEnv("SSH_HOST_KEY", cfg.HostKeyPath)
	cfg.LogLevel = GetEnv("LOG_LEVEL", cfg.LogLevel)
	if v, ok := os.LookupEnv("SSH_IDLE_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Server{}, fmt.Errorf("invalid SSH_IDLE_TIMEOUT: %w", err)
		}
		cfg.IdleTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, fmt.Errorf("invalid server config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings for values the server cannot run with.
func (s Server) Validate() error {
	if s.Port == "" {
		return errors.New("port cannot be empty")
	}
	if s.IdleTimeout < 0 {
		return fmt.Errorf("idleTimeout cannot be negative, got %v", s.IdleTimeout)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (s Server) Level() log.Level {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
