package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/vitetags/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		check   func(*testing.T, *Config)
		wantErr bool
	}{
		{
			name: "empty config gets a default configuration",
			cfg:  &Config{},
			check: func(t *testing.T, c *Config) {
				require.Contains(t, c.Configurations, DefaultConfigurationName)
				def := c.Configurations[DefaultConfigurationName]
				assert.Equal(t, DefaultBuildPath, def.BuildPath)
				assert.Equal(t, domain.ModeProduction, def.Mode)
				assert.Equal(t, DefaultConfigurationName, c.Default)
			},
		},
		{
			name: "per-configuration defaults",
			cfg:  &Config{Configurations: map[string]*Configuration{"app": {}}},
			check: func(t *testing.T, c *Config) {
				app := c.Configurations["app"]
				assert.Equal(t, "app", app.Name)
				assert.Equal(t, DefaultPublicDirectory, app.PublicDirectory)
				assert.Equal(t, DefaultDevServerURL, app.DevServer.URL)
				assert.Equal(t, DefaultPingTimeout, app.DevServer.PingTimeout)
				assert.Empty(t, app.BuildPath)
			},
		},
		{
			name: "top-level values are inherited",
			cfg: &Config{
				Mode:      "dev",
				AppURL:    "http://localhost",
				AssetHost: "https://cdn.example.com",
				Configurations: map[string]*Configuration{
					"app":   {},
					"admin": {Mode: "production", AppURL: "http://admin.test"},
				},
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, domain.ModeDevelopment, c.Configurations["app"].Mode)
				assert.Equal(t, "http://localhost", c.Configurations["app"].AppURL)
				assert.Equal(t, "https://cdn.example.com", c.Configurations["app"].AssetHost)
				assert.Equal(t, domain.ModeProduction, c.Configurations["admin"].Mode)
				assert.Equal(t, "http://admin.test", c.Configurations["admin"].AppURL)
			},
		},
		{
			name: "names are case-insensitive",
			cfg:  &Config{Default: "App", Configurations: map[string]*Configuration{"App": {}}},
			check: func(t *testing.T, c *Config) {
				assert.Contains(t, c.Configurations, "app")
				assert.Equal(t, "app", c.Default)
			},
		},
		{
			name: "negative retries clamp to zero",
			cfg: &Config{Configurations: map[string]*Configuration{
				"app": {DevServer: DevServerConfig{PingRetries: -1}},
			}},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 0, c.Configurations["app"].DevServer.PingRetries)
			},
		},
		{
			name: "cache defaults",
			cfg:  &Config{Cache: CacheConfig{TTL: time.Millisecond}},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultCacheBackend, c.Cache.Backend)
				assert.Equal(t, DefaultCacheTTL, c.Cache.TTL)
				assert.Equal(t, DefaultCacheSize, c.Cache.Size)
			},
		},
		{
			name:    "invalid top-level mode",
			cfg:     &Config{Mode: "staging"},
			wantErr: true,
		},
		{
			name:    "invalid configuration mode",
			cfg:     &Config{Configurations: map[string]*Configuration{"app": {Mode: "staging"}}},
			wantErr: true,
		},
		{
			name:    "invalid cache backend",
			cfg:     &Config{Cache: CacheConfig{Backend: "redis"}},
			wantErr: true,
		},
		{
			name:    "blank configuration name",
			cfg:     &Config{Configurations: map[string]*Configuration{"  ": {}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, tt.cfg)
			}
		})
	}
}

func TestConfig_Get(t *testing.T) {
	cfg := &Config{Configurations: map[string]*Configuration{"app": {}, "admin": {}}, Default: "app"}
	require.NoError(t, cfg.Validate())

	got, err := cfg.Get("")
	require.NoError(t, err)
	assert.Equal(t, "app", got.Name)

	got, err = cfg.Get("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Name)

	_, err = cfg.Get("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigurationNotFound)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "missing", cfgErr.Name)
	assert.Equal(t, []string{"admin", "app"}, cfgErr.Available)
}

func TestConfiguration_BasePath(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Configuration
		want    string
		wantErr error
	}{
		{name: "build path", cfg: Configuration{BuildPath: "build", PublicDirectory: "public"}, want: "/build/"},
		{name: "trailing slash", cfg: Configuration{BuildPath: "with/trailing/slash/"}, want: "/with/trailing/slash/"},
		{name: "windows separators", cfg: Configuration{BuildPath: `\assets\build\`}, want: "/assets/build/"},
		{
			name: "derived from manifest location",
			cfg:  Configuration{PublicDirectory: "public", ManifestPath: "public/with-css/manifest.json"},
			want: "/with-css/",
		},
		{name: "empty build path", cfg: Configuration{BuildPath: ""}, wantErr: domain.ErrNoBuildPath},
		{name: "slashes only", cfg: Configuration{BuildPath: "//"}, wantErr: domain.ErrNoBuildPath},
		{
			name:    "manifest in public root",
			cfg:     Configuration{PublicDirectory: "public", ManifestPath: "public/manifest.json"},
			wantErr: domain.ErrNoBuildPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.BasePath()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfiguration_ManifestFile(t *testing.T) {
	c := Configuration{PublicDirectory: "public", BuildPath: "build"}
	assert.Equal(t, filepath.Join("public", "build", "manifest.json"), c.ManifestFile())

	c.ManifestPath = "public/with-css/manifest.json"
	assert.Equal(t, filepath.FromSlash("public/with-css/manifest.json"), c.ManifestFile())
}

func TestConfiguration_FindEntrypoint(t *testing.T) {
	c := Configuration{Entrypoints: EntrypointsConfig{Paths: []string{
		"resources/scripts/main.ts",
		"./resources/css/app.css",
		"admin/main.ts",
	}}}

	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{name: "exact", input: "resources/scripts/main.ts", want: "resources/scripts/main.ts", found: true},
		{name: "leading slash", input: "/resources/scripts/main.ts", want: "resources/scripts/main.ts", found: true},
		{name: "dot slash in config", input: "resources/css/app.css", want: "./resources/css/app.css", found: true},
		{name: "suffix first in order", input: "main.ts", want: "resources/scripts/main.ts", found: true},
		{name: "exact beats suffix", input: "admin/main.ts", want: "admin/main.ts", found: true},
		{name: "partial segment is not a match", input: "in.ts", found: false},
		{name: "unknown", input: "missing.ts", found: false},
		{name: "empty", input: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.FindEntrypoint(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDefault tests default configuration
func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultConfigurationName, cfg.Default)
	require.Contains(t, cfg.Configurations, DefaultConfigurationName)
	assert.Equal(t, DefaultBuildPath, cfg.Configurations[DefaultConfigurationName].BuildPath)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultCacheBackend, cfg.Cache.Backend)
	assert.Contains(t, cfg.Cache.Directory, "cache")
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.NoError(t, cfg.Validate())
}

func TestConfigDir(t *testing.T) {
	assert.Contains(t, ConfigDir(), "vitetags")
	assert.True(t, strings.HasSuffix(CacheDir(), "cache"))
	assert.Contains(t, ConfigFilePath(), "config.yaml")
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
default: app
app_url: http://localhost
configurations:
  app:
    build_path: build
    entrypoints:
      paths:
        - resources/scripts/main.ts
      ssr: resources/scripts/ssr.ts
    dev_server:
      url: http://localhost:3000
      ping_before_using_manifest: true
      ping_timeout: 250ms
    tag_attributes:
      script:
        defer: ""
    aliases:
      "@": resources
    commands:
      - php artisan vite:config
  admin:
    mode: development
    manifest_path: public/admin/manifest.json
cache:
  enabled: true
  backend: memory
logging:
  level: debug
  format: json
`)

	cfg, err := Load(LoadOptions{ConfigFile: path, EnvFiles: []string{filepath.Join(t.TempDir(), "none.env")}})
	require.NoError(t, err)

	assert.Equal(t, "app", cfg.Default)
	assert.Equal(t, filepath.Dir(path), cfg.Root)

	app, err := cfg.Get("")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeProduction, app.Mode)
	assert.Equal(t, "http://localhost", app.AppURL)
	assert.Equal(t, []string{"resources/scripts/main.ts"}, app.Entrypoints.Paths)
	assert.Equal(t, "resources/scripts/ssr.ts", app.Entrypoints.SSR)
	assert.Equal(t, "http://localhost:3000", app.DevServer.URL)
	assert.True(t, app.DevServer.PingBeforeUsingManifest)
	assert.Equal(t, 250*time.Millisecond, app.DevServer.PingTimeout)
	assert.Equal(t, map[string]string{"defer": ""}, app.TagAttributes.Script)
	assert.Equal(t, "resources", app.Aliases["@"])
	assert.Equal(t, []string{"php artisan vite:config"}, app.Commands)

	admin, err := cfg.Get("admin")
	require.NoError(t, err)
	assert.True(t, admin.IsDevelopment())
	assert.Equal(t, DefaultDevServerURL, admin.DevServer.URL)

	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestLoad_InvalidMode(t *testing.T) {
	path := writeConfig(t, "configurations:\n  app:\n    mode: staging\n")

	_, err := Load(LoadOptions{ConfigFile: path})
	assert.Error(t, err)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "configurations:\n  app:\n    build_path: build\n")
	t.Setenv("VITETAGS_APP_URL", "https://example.com")
	t.Setenv("VITETAGS_LOGGING_LEVEL", "warn")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)

	app, err := cfg.Get("app")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", app.AppURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeConfig(t, "configurations:\n  app:\n    build_path: build\n")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("VITETAGS_ASSET_HOST=https://cdn.example.com\n"), 0644))

	// Registers cleanup, then leaves the variable unset for the dotenv file
	t.Setenv("VITETAGS_ASSET_HOST", "")
	require.NoError(t, os.Unsetenv("VITETAGS_ASSET_HOST"))

	cfg, err := Load(LoadOptions{ConfigFile: path, EnvFiles: []string{envFile}})
	require.NoError(t, err)

	app, err := cfg.Get("app")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", app.AssetHost)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := writeConfig(t, "configurations:\n  app:\n    build_path: build\n")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("VITETAGS_APP_URL=http://from-file\n"), 0644))
	t.Setenv("VITETAGS_APP_URL", "http://from-env")

	cfg, err := Load(LoadOptions{ConfigFile: path, EnvFiles: []string{envFile}})
	require.NoError(t, err)

	app, err := cfg.Get("app")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", app.AppURL)
}

// TestEnsureConfigDir tests creating config directory
func TestEnsureConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, EnsureConfigDir())
	info, err := os.Stat(ConfigDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, EnsureCacheDir())
	info, err = os.Stat(CacheDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
