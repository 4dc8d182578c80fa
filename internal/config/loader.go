package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile is an explicit config file. When empty, config.yaml is
	// searched in the working directory and ConfigDir().
	ConfigFile string
	// EnvFiles are dotenv files loaded before environment binding.
	// Missing files are ignored. Defaults to ".env".
	EnvFiles []string
}

// Load loads configuration from file, environment, and defaults
func Load(opts LoadOptions) (*Config, error) {
	cfg, _, err := LoadWithViper(opts)
	return cfg, err
}

// LoadWithViper loads configuration and returns the viper instance
// This is useful for merging CLI flags later
func LoadWithViper(opts LoadOptions) (*Config, *viper.Viper, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, nil, err
	}

	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
	}

	// Read config file (ignore if not found, unless it was asked for)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, nil, err
		}
	}

	// Environment variables (VITETAGS_*)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, err
	}

	// Relative roots are anchored at the config file's directory
	if used := v.ConfigFileUsed(); used != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(used), cfg.Root)
	}

	// Validate and apply per-configuration defaults
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return &cfg, v, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("root", DefaultRoot)
	v.SetDefault("default", DefaultConfigurationName)
	v.SetDefault("mode", "")
	v.SetDefault("app_url", "")
	v.SetDefault("asset_host", "")

	// Cache defaults
	v.SetDefault("cache.enabled", DefaultCacheEnabled)
	v.SetDefault("cache.backend", DefaultCacheBackend)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cache.size", DefaultCacheSize)
	v.SetDefault("cache.directory", CacheDir())

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		// Existing environment variables take precedence over the file
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

// EnsureCacheDir creates the cache directory if it doesn't exist
func EnsureCacheDir() error {
	return os.MkdirAll(CacheDir(), 0755)
}
