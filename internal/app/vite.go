// Package app exposes the tag resolution operations to host applications.
//
// Every operation takes the name of a configuration explicitly; there is no
// ambient active configuration, so several configurations can be resolved
// concurrently through the same Vite value.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/quantmind-br/vitetags/internal/cache"
	"github.com/quantmind-br/vitetags/internal/chunks"
	"github.com/quantmind-br/vitetags/internal/config"
	"github.com/quantmind-br/vitetags/internal/devserver"
	"github.com/quantmind-br/vitetags/internal/domain"
	"github.com/quantmind-br/vitetags/internal/manifest"
	"github.com/quantmind-br/vitetags/internal/paths"
	"github.com/quantmind-br/vitetags/internal/tags"
	"github.com/quantmind-br/vitetags/internal/utils"
)

// Options contains options for creating a Vite facade
type Options struct {
	Config *config.Config
	Logger *utils.Logger
	// Format is the output format of tag operations: "html" or "urls"
	Format string
	// Store overrides the manifest store. One is created when nil.
	Store *manifest.Store
	// Cache overrides the rendered output cache. When nil, one is created
	// from the cache section of the config if it is enabled.
	Cache domain.Cache
	// Pinger overrides the dev server reachability check
	Pinger domain.Pinger
	// Certificates overrides local certificate discovery
	Certificates domain.CertificateProvider
}

// Vite resolves entry points into tags for any of the loaded configurations
type Vite struct {
	config *config.Config
	logger *utils.Logger
	format string
	store  *manifest.Store
	cache  domain.Cache
	pinger domain.Pinger
	certs  domain.CertificateProvider

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	resolvers map[string]*resolverSet
}

// resolverSet holds what is derived once from one configuration
type resolverSet struct {
	cfg          *config.Configuration
	renderer     tags.Renderer
	paths        *paths.Resolver
	dev          *devserver.Resolver
	pinger       domain.Pinger
	manifestFile string

	pingMu    sync.Mutex
	decided   bool
	reachable bool
}

// New creates a Vite facade
func New(opts Options) (*Vite, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if _, err := tags.ForFormat(opts.Format, tags.Options{}); err != nil {
		return nil, err
	}

	logger := utils.OrNop(opts.Logger)

	store := opts.Store
	if store == nil {
		var err error
		store, err = manifest.NewStore(manifest.StoreOptions{Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("failed to create manifest store: %w", err)
		}
	}

	c := opts.Cache
	if c == nil && opts.Config.Cache.Enabled {
		var err error
		c, err = cache.New(cache.Options{
			Backend:   opts.Config.Cache.Backend,
			Directory: opts.Config.Cache.Directory,
			Size:      opts.Config.Cache.Size,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Vite{
		config:    opts.Config,
		logger:    logger,
		format:    opts.Format,
		store:     store,
		cache:     c,
		pinger:    opts.Pinger,
		certs:     opts.Certificates,
		ctx:       ctx,
		cancel:    cancel,
		resolvers: make(map[string]*resolverSet),
	}, nil
}

// Close stops manifest watchers and releases the cache
func (v *Vite) Close() error {
	v.cancel()
	errs := []error{v.store.Close()}
	if v.cache != nil {
		errs = append(errs, v.cache.Close())
	}
	return errors.Join(errs...)
}

// Configuration returns the named configuration
func (v *Vite) Configuration(name string) (*config.Configuration, error) {
	return v.config.Get(name)
}

func (v *Vite) resolverSet(name string) (*resolverSet, error) {
	cfg, err := v.config.Get(name)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if rs, ok := v.resolvers[cfg.Name]; ok {
		return rs, nil
	}

	renderer, err := tags.ForFormat(v.format, tags.Options{
		ScriptAttributes: cfg.TagAttributes.Script,
		StyleAttributes:  cfg.TagAttributes.Style,
	})
	if err != nil {
		return nil, err
	}

	manifestFile := cfg.ManifestFile()
	if !filepath.IsAbs(manifestFile) {
		manifestFile = filepath.Join(v.config.Root, manifestFile)
	}

	rs := &resolverSet{
		cfg:          cfg,
		renderer:     renderer,
		paths:        paths.NewResolver(cfg.AppURL),
		manifestFile: manifestFile,
	}

	if cfg.IsDevelopment() {
		certs := v.certs
		if certs == nil && cfg.DevServer.HTTPS {
			certs = devserver.NewLocalCertificates(cfg.DevServer.CertificateDirs...)
		}
		rs.dev, err = devserver.NewResolver(devserver.Options{
			URL:          cfg.DevServer.URL,
			Certificates: certs,
			Logger:       v.logger.WithConfiguration(cfg.Name),
		})
		if err != nil {
			return nil, fmt.Errorf("configuration %q: %w", cfg.Name, err)
		}

		rs.pinger = v.pinger
		if rs.pinger == nil {
			rs.pinger = devserver.NewHTTPPinger(devserver.PingerOptions{
				Timeout: cfg.DevServer.PingTimeout,
				Retries: cfg.DevServer.PingRetries,
				Logger:  v.logger,
			})
		}
	}

	v.resolvers[cfg.Name] = rs
	return rs, nil
}

// useDevServer reports whether the configuration resolves against the dev
// server. With ping_before_using_manifest, an unreachable server falls back
// to the manifest. The outcome is remembered for the configuration, unless
// the ping failed only because ctx was cancelled or timed out.
func (v *Vite) useDevServer(ctx context.Context, rs *resolverSet) bool {
	if rs.dev == nil {
		return false
	}
	if !rs.cfg.DevServer.PingBeforeUsingManifest {
		return true
	}

	rs.pingMu.Lock()
	defer rs.pingMu.Unlock()

	if rs.decided {
		return rs.reachable
	}

	err := rs.pinger.Ping(ctx, rs.dev.BaseURL())
	if err != nil && ctx.Err() != nil {
		v.logger.WithConfiguration(rs.cfg.Name).Debug().
			Err(err).
			Msg("Dev server ping interrupted, using the build manifest for this call")
		return false
	}

	rs.decided = true
	rs.reachable = err == nil
	if err != nil {
		v.logger.WithConfiguration(rs.cfg.Name).Warn().
			Err(err).
			Msg("Dev server unreachable, using the build manifest")
	}
	return rs.reachable
}

// chunkResolver checks the build path and returns the production resolver.
// It fails with domain.ErrNoBuildPath before the manifest is read.
func (v *Vite) chunkResolver(rs *resolverSet) (*chunks.Resolver, error) {
	base, err := rs.cfg.BasePath()
	if err != nil {
		return nil, err
	}
	return chunks.NewResolver(chunks.Options{
		Paths:     rs.paths,
		BasePath:  base,
		AssetHost: rs.cfg.AssetHost,
		Logger:    v.logger.WithConfiguration(rs.cfg.Name),
	}), nil
}

func (v *Vite) loadManifest(rs *resolverSet) (*manifest.Manifest, error) {
	m, err := v.store.Load(rs.manifestFile)
	if err != nil {
		return nil, err
	}
	if rs.cfg.WatchManifest {
		if err := v.store.Watch(v.ctx, rs.manifestFile); err != nil {
			v.logger.WithManifest(rs.manifestFile).Warn().Err(err).Msg("Cannot watch manifest")
		}
	}
	return m, nil
}

// production resolves the build path, then the manifest
func (v *Vite) production(rs *resolverSet) (*chunks.Resolver, *manifest.Manifest, error) {
	cr, err := v.chunkResolver(rs)
	if err != nil {
		return nil, nil, err
	}
	m, err := v.loadManifest(rs)
	if err != nil {
		return nil, nil, err
	}
	return cr, m, nil
}

// Manifest returns the loaded manifest of a configuration
func (v *Vite) Manifest(ctx context.Context, name string) (*manifest.Manifest, error) {
	rs, err := v.resolverSet(name)
	if err != nil {
		return nil, err
	}
	_, m, err := v.production(rs)
	return m, err
}
