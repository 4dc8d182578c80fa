package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/vitetags/internal/domain"
)

// Default values
const (
	DefaultRoot              = "."
	DefaultConfigurationName = "default"
	DefaultMode              = domain.ModeProduction

	// Build defaults
	DefaultPublicDirectory = "public"
	DefaultBuildPath       = "build"
	DefaultManifestName    = "manifest.json"

	// Dev server defaults
	DefaultDevServerURL = "http://localhost:5173"
	DefaultPingTimeout  = time.Second

	// Cache defaults
	CacheBackendMemory  = "memory"
	CacheBackendBadger  = "badger"
	DefaultCacheEnabled = false
	DefaultCacheBackend = CacheBackendMemory
	DefaultCacheTTL     = time.Hour
	DefaultCacheSize    = 512

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	// EnvPrefix prefixes every environment variable read by the loader
	EnvPrefix = "VITETAGS"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vitetags"
	}
	return filepath.Join(home, ".vitetags")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultConfiguration returns the settings of a fresh configuration
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Name:            DefaultConfigurationName,
		Mode:            DefaultMode,
		BuildPath:       DefaultBuildPath,
		PublicDirectory: DefaultPublicDirectory,
		DevServer: DevServerConfig{
			URL:         DefaultDevServerURL,
			PingTimeout: DefaultPingTimeout,
		},
	}
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Root:    DefaultRoot,
		Default: DefaultConfigurationName,
		Configurations: map[string]*Configuration{
			DefaultConfigurationName: DefaultConfiguration(),
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			Backend:   DefaultCacheBackend,
			TTL:       DefaultCacheTTL,
			Size:      DefaultCacheSize,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
