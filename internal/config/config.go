package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/quantmind-br/vitetags/internal/domain"
	"github.com/quantmind-br/vitetags/internal/paths"
)

// Config represents the application configuration
type Config struct {
	Root           string                    `mapstructure:"root" yaml:"root"`
	Default        string                    `mapstructure:"default" yaml:"default"`
	Mode           string                    `mapstructure:"mode" yaml:"mode"`
	AppURL         string                    `mapstructure:"app_url" yaml:"app_url"`
	AssetHost      string                    `mapstructure:"asset_host" yaml:"asset_host"`
	Configurations map[string]*Configuration `mapstructure:"configurations" yaml:"configurations"`
	Cache          CacheConfig               `mapstructure:"cache" yaml:"cache"`
	Logging        LoggingConfig             `mapstructure:"logging" yaml:"logging"`
}

// Configuration is one named set of build settings. Several may coexist,
// for example one per front-end application.
type Configuration struct {
	Name            string              `mapstructure:"-" yaml:"-"`
	Mode            domain.Mode         `mapstructure:"mode" yaml:"mode"`
	AppURL          string              `mapstructure:"app_url" yaml:"app_url"`
	BuildPath       string              `mapstructure:"build_path" yaml:"build_path"`
	PublicDirectory string              `mapstructure:"public_directory" yaml:"public_directory"`
	ManifestPath    string              `mapstructure:"manifest_path" yaml:"manifest_path"`
	AssetHost       string              `mapstructure:"asset_host" yaml:"asset_host"`
	WatchManifest   bool                `mapstructure:"watch_manifest" yaml:"watch_manifest"`
	Entrypoints     EntrypointsConfig   `mapstructure:"entrypoints" yaml:"entrypoints"`
	DevServer       DevServerConfig     `mapstructure:"dev_server" yaml:"dev_server"`
	TagAttributes   TagAttributesConfig `mapstructure:"tag_attributes" yaml:"tag_attributes"`
	Aliases         map[string]string   `mapstructure:"aliases" yaml:"aliases"`
	Commands        []string            `mapstructure:"commands" yaml:"commands"`
}

// EntrypointsConfig lists the source files loaded as entry points
type EntrypointsConfig struct {
	Paths []string `mapstructure:"paths" yaml:"paths"`
	SSR   string   `mapstructure:"ssr" yaml:"ssr"`
}

// DevServerConfig contains dev server settings
type DevServerConfig struct {
	URL                     string        `mapstructure:"url" yaml:"url"`
	PingBeforeUsingManifest bool          `mapstructure:"ping_before_using_manifest" yaml:"ping_before_using_manifest"`
	PingTimeout             time.Duration `mapstructure:"ping_timeout" yaml:"ping_timeout"`
	PingRetries             int           `mapstructure:"ping_retries" yaml:"ping_retries"`
	HTTPS                   bool          `mapstructure:"https" yaml:"https"`
	CertificateDirs         []string      `mapstructure:"certificate_dirs" yaml:"certificate_dirs"`
}

// TagAttributesConfig contains extra attributes added to generated tags
type TagAttributesConfig struct {
	Script map[string]string `mapstructure:"script" yaml:"script"`
	Style  map[string]string `mapstructure:"style" yaml:"style"`
}

// CacheConfig contains rendered output cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Backend   string        `mapstructure:"backend" yaml:"backend"` // "memory" or "badger"
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Size      int           `mapstructure:"size" yaml:"size"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration and fills in per-configuration defaults
func (c *Config) Validate() error {
	if c.Root == "" {
		c.Root = DefaultRoot
	}
	if c.Default == "" {
		c.Default = DefaultConfigurationName
	}
	if c.Mode != "" {
		if _, ok := domain.ParseMode(c.Mode); !ok {
			return fmt.Errorf("invalid mode %q", c.Mode)
		}
	}
	if len(c.Configurations) == 0 {
		c.Configurations = map[string]*Configuration{DefaultConfigurationName: DefaultConfiguration()}
	}

	normalized := make(map[string]*Configuration, len(c.Configurations))
	for name, cfg := range c.Configurations {
		if cfg == nil {
			cfg = &Configuration{}
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return fmt.Errorf("configuration name cannot be empty")
		}
		cfg.Name = name
		if err := cfg.validate(c); err != nil {
			return fmt.Errorf("configuration %q: %w", name, err)
		}
		normalized[name] = cfg
	}
	c.Configurations = normalized
	c.Default = strings.ToLower(c.Default)

	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = DefaultCacheBackend
	case CacheBackendMemory, CacheBackendBadger:
	default:
		return fmt.Errorf("invalid cache.backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < time.Second {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Size < 1 {
		c.Cache.Size = DefaultCacheSize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}

func (c *Configuration) validate(parent *Config) error {
	mode := string(c.Mode)
	if mode == "" {
		mode = parent.Mode
	}
	if mode == "" {
		c.Mode = DefaultMode
	} else {
		m, ok := domain.ParseMode(mode)
		if !ok {
			return fmt.Errorf("invalid mode %q", mode)
		}
		c.Mode = m
	}

	if c.AppURL == "" {
		c.AppURL = parent.AppURL
	}
	if c.AssetHost == "" {
		c.AssetHost = parent.AssetHost
	}
	if c.PublicDirectory == "" {
		c.PublicDirectory = DefaultPublicDirectory
	}
	if c.DevServer.URL == "" {
		c.DevServer.URL = DefaultDevServerURL
	}
	if c.DevServer.PingTimeout <= 0 {
		c.DevServer.PingTimeout = DefaultPingTimeout
	}
	if c.DevServer.PingRetries < 0 {
		c.DevServer.PingRetries = 0
	}
	return nil
}

// Get returns the named configuration. An empty name selects the default one.
func (c *Config) Get(name string) (*Configuration, error) {
	if name == "" {
		name = c.Default
	}
	if cfg, ok := c.Configurations[strings.ToLower(name)]; ok {
		return cfg, nil
	}
	return nil, domain.NewConfigurationError(name, c.Names())
}

// Names returns the configuration names in sorted order
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Configurations))
	for name := range c.Configurations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsDevelopment reports whether assets are served by the dev server
func (c *Configuration) IsDevelopment() bool {
	return c.Mode == domain.ModeDevelopment
}

// ManifestFile returns the manifest location relative to the project root
func (c *Configuration) ManifestFile() string {
	if c.ManifestPath != "" {
		return filepath.FromSlash(c.ManifestPath)
	}
	return filepath.Join(filepath.FromSlash(c.PublicDirectory), filepath.FromSlash(c.BuildPath), DefaultManifestName)
}

// BasePath returns the public base path of the build. An explicit manifest
// location anchors the base to the manifest's directory under the public
// directory. Fails with domain.ErrNoBuildPath when the base is empty.
func (c *Configuration) BasePath() (string, error) {
	base := c.BuildPath
	if c.ManifestPath != "" {
		derived, err := paths.BasePathFromManifest(c.PublicDirectory, c.ManifestPath)
		if err != nil {
			return "", err
		}
		base = derived
	}
	if paths.IsEmptyBase(base) {
		return "", fmt.Errorf("%w: configuration %q", domain.ErrNoBuildPath, c.Name)
	}
	return paths.NormalizeBase(base), nil
}

// FindEntrypoint matches name against the configured entry point paths.
// An exact match (ignoring "./" and leading slashes) wins; otherwise the
// first entry point ending with name on a path segment boundary is used.
func (c *Configuration) FindEntrypoint(name string) (string, bool) {
	want := normalizeEntry(name)
	if want == "" {
		return "", false
	}
	for _, p := range c.Entrypoints.Paths {
		if normalizeEntry(p) == want {
			return p, true
		}
	}
	for _, p := range c.Entrypoints.Paths {
		if strings.HasSuffix(normalizeEntry(p), "/"+want) {
			return p, true
		}
	}
	return "", false
}

func normalizeEntry(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return strings.TrimLeft(p, "/")
}
