package control

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/core-tools/hsu-svcctl/pkg/errors"
	"github.com/core-tools/hsu-svcctl/pkg/logging"

	"gopkg.in/yaml.v3"
)

// ConnectionConfig describes how the tool reaches the supervisor daemon
type ConnectionConfig struct {
	// ServerPath is the supervisor executable to spawn for a local session
	ServerPath string `yaml:"server_path,omitempty"`

	// AttachPort attaches to an already running local supervisor
	AttachPort int `yaml:"attach_port,omitempty"`

	// RemoteAddress is a host:port of a remote supervisor ctl gateway.
	// When set it takes precedence over the local options.
	RemoteAddress string `yaml:"remote_address,omitempty"`

	LogLevel string `yaml:"log_level,omitempty"`

	// Ping retry behavior while the connection comes up
	RetryAttempts int           `yaml:"retry_attempts,omitempty"`
	RetryInterval time.Duration `yaml:"retry_interval,omitempty"`

	// RequestTimeout bounds every control request
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
}

// DefaultConnectionConfigFile returns the well-known connection config path
func DefaultConnectionConfigFile() string {
	switch runtime.GOOS {
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = "C:\\ProgramData"
		}
		return filepath.Join(programData, "hsu", "config", "ctl.yaml")

	default:
		return "/etc/hsu/config/ctl.yaml"
	}
}

// DefaultConnectionConfig returns the configuration used when no file exists
func DefaultConnectionConfig() ConnectionConfig {
	var config ConnectionConfig
	setConnectionConfigDefaults(&config)
	return config
}

// LoadConnectionConfig loads the tool's connection configuration from a YAML
// file. An empty path selects the well-known location, whose absence just
// yields the defaults; an explicitly given path must exist.
func LoadConnectionConfig(path string) (*ConnectionConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConnectionConfigFile()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			config := DefaultConnectionConfig()
			return &config, nil
		}
		return nil, errors.NewIOError("failed to read connection configuration file", err).WithContext("path", path)
	}

	var config ConnectionConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.NewDecodeError("failed to parse YAML connection configuration", err).WithContext("path", path)
	}

	setConnectionConfigDefaults(&config)

	if err := ValidateConnectionConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateConnectionConfig validates the connection configuration structure
func ValidateConnectionConfig(config *ConnectionConfig) error {
	if config == nil {
		return errors.NewValidationError("connection configuration cannot be nil", nil)
	}

	if !logging.ValidLogLevel(config.LogLevel) {
		return errors.NewValidationError(
			"invalid log level: "+config.LogLevel, nil,
		).WithContext("valid_levels", "debug, info, warn, error")
	}

	if config.RemoteAddress != "" {
		if err := ValidateNetworkAddress(config.RemoteAddress); err != nil {
			return errors.NewValidationError("invalid remote supervisor address", err)
		}
	}

	if config.AttachPort != 0 {
		if err := ValidatePort(config.AttachPort); err != nil {
			return errors.NewValidationError("invalid attach port", err)
		}
	}

	if err := ValidateTimeout(config.RetryInterval, "retry interval"); err != nil {
		return err
	}
	if err := ValidateTimeout(config.RequestTimeout, "request"); err != nil {
		return err
	}

	return nil
}

// setConnectionConfigDefaults applies default values to configuration
func setConnectionConfigDefaults(config *ConnectionConfig) {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.RetryAttempts == 0 {
		config.RetryAttempts = 10
	}
	if config.RetryInterval == 0 {
		config.RetryInterval = 1 * time.Second
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = 30 * time.Second
	}
}
