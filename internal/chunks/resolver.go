// Package chunks resolves manifest entries into the ordered set of tags
// needed to load them in production.
package chunks

import (
	"github.com/quantmind-br/vitetags/internal/domain"
	"github.com/quantmind-br/vitetags/internal/manifest"
	"github.com/quantmind-br/vitetags/internal/paths"
	"github.com/quantmind-br/vitetags/internal/utils"
)

// Options contains options for creating a Resolver
type Options struct {
	Paths     *paths.Resolver
	BasePath  string
	AssetHost string
	Logger    *utils.Logger
}

// Resolver turns manifest entries into tags rooted at a base path
type Resolver struct {
	paths     *paths.Resolver
	basePath  string
	assetHost string
	logger    *utils.Logger
}

// NewResolver creates a chunk resolver
func NewResolver(opts Options) *Resolver {
	if opts.Paths == nil {
		opts.Paths = paths.NewResolver("")
	}
	return &Resolver{
		paths:     opts.Paths,
		basePath:  opts.BasePath,
		assetHost: opts.AssetHost,
		logger:    utils.OrNop(opts.Logger).WithComponent("chunks"),
	}
}

// URL resolves a build-relative file to its public URL
func (r *Resolver) URL(file string) string {
	return r.paths.Resolve(r.basePath, r.assetHost, file)
}

// Resolve computes the tags of the entry named name (a manifest key or a
// source path). The main tag is a stylesheet when the built file is CSS and
// a module script otherwise. Styles are the entry's own stylesheets in
// declaration order. Preloads cover the statically imported chunks and the
// stylesheets they pull in. Dynamic imports only become prefetch URLs.
func (r *Resolver) Resolve(m *manifest.Manifest, name string) (*domain.ResolvedEntry, error) {
	key, entry, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}
	if entry.File == "" {
		return nil, domain.NewEntryError(name, m.Path())
	}

	res := &domain.ResolvedEntry{
		Name: key,
		Main: domain.Tag{Kind: entry.Kind(), URL: r.URL(entry.File)},
	}

	own := make(map[string]bool, len(entry.CSS))
	for _, css := range entry.CSS {
		own[css] = true
		res.Styles = append(res.Styles, domain.Tag{Kind: domain.KindStyle, URL: r.URL(css)})
	}

	g := Walk(m, key)
	for _, d := range g.Dangling {
		r.logger.Warn().
			Str("manifest", m.Path()).
			Str("from", d.From).
			Str("key", d.Key).
			Bool("dynamic", d.Dynamic).
			Msg("Skipping dangling manifest reference")
	}

	seenFiles := map[string]bool{entry.File: true}
	for _, k := range g.Chunks {
		chunk, _ := m.Lookup(k)
		if chunk.File == "" || seenFiles[chunk.File] {
			continue
		}
		seenFiles[chunk.File] = true
		res.Preloads = append(res.Preloads, domain.Tag{
			Kind:    chunk.Kind(),
			URL:     r.URL(chunk.File),
			Preload: true,
		})
	}
	for _, css := range g.CSS {
		if own[css] {
			continue
		}
		res.Preloads = append(res.Preloads, domain.Tag{Kind: domain.KindStyle, URL: r.URL(css), Preload: true})
	}

	for _, k := range g.Dynamic {
		chunk, _ := m.Lookup(k)
		if chunk.File != "" {
			res.Prefetch = append(res.Prefetch, r.URL(chunk.File))
		}
	}

	for _, asset := range entry.Assets {
		res.Assets = append(res.Assets, r.URL(asset))
	}

	r.logger.Debug().
		Str("entry", key).
		Int("styles", len(res.Styles)).
		Int("preloads", len(res.Preloads)).
		Int("prefetch", len(res.Prefetch)).
		Msg("Entry resolved")

	return res, nil
}

// StyleURLs returns the URLs of every stylesheet needed by the entry,
// its own first, then those pulled in through static imports
func (r *Resolver) StyleURLs(m *manifest.Manifest, name string) ([]string, error) {
	key, _, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}

	css := CollectCSS(m, key)
	urls := make([]string, 0, len(css))
	for _, c := range css {
		urls = append(urls, r.URL(c))
	}
	return urls, nil
}
