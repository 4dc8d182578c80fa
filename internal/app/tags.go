package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quantmind-br/vitetags/internal/cache"
	"github.com/quantmind-br/vitetags/internal/domain"
	"github.com/quantmind-br/vitetags/internal/tags"
)

// ClientScriptTag returns the dev server client tag, or "" when the
// configuration resolves against the build manifest
func (v *Vite) ClientScriptTag(ctx context.Context, name string) (string, error) {
	rs, err := v.resolverSet(name)
	if err != nil {
		return "", err
	}
	if !v.useDevServer(ctx, rs) {
		return "", nil
	}
	return tags.Render(rs.renderer, rs.dev.ClientTag()), nil
}

// ReactRefreshTag returns the inline React refresh preamble in development,
// or "" in production
func (v *Vite) ReactRefreshTag(ctx context.Context, name string) (string, error) {
	rs, err := v.resolverSet(name)
	if err != nil {
		return "", err
	}
	if !v.useDevServer(ctx, rs) {
		return "", nil
	}
	return rs.renderer.InlineModule(rs.dev.ReactRefreshPreamble()), nil
}

// Tag returns the main tag of an entry followed by its own style tags
func (v *Vite) Tag(ctx context.Context, name, entry string) (string, error) {
	rs, err := v.resolverSet(name)
	if err != nil {
		return "", err
	}

	if v.useDevServer(ctx, rs) {
		res, err := v.devEntry(rs, entry)
		if err != nil {
			return "", err
		}
		return tags.Render(rs.renderer, res.Main), nil
	}

	cr, m, err := v.production(rs)
	if err != nil {
		return "", err
	}
	res, err := cr.Resolve(m, manifestName(rs, entry))
	if err != nil {
		return "", err
	}
	return tags.Join(tags.RenderEntry(rs.renderer, res, false)), nil
}

// StyleTags returns a style tag for every stylesheet an entry needs,
// including those pulled in by its static imports. In development only
// stylesheet entries produce a tag; the dev server injects the rest.
func (v *Vite) StyleTags(ctx context.Context, name, entry string) (string, error) {
	rs, err := v.resolverSet(name)
	if err != nil {
		return "", err
	}

	if v.useDevServer(ctx, rs) {
		res, err := v.devEntry(rs, entry)
		if err != nil {
			return "", err
		}
		if res.Main.Kind != domain.KindStyle {
			return "", nil
		}
		return tags.Render(rs.renderer, res.Main), nil
	}

	cr, m, err := v.production(rs)
	if err != nil {
		return "", err
	}
	urls, err := cr.StyleURLs(m, manifestName(rs, entry))
	if err != nil {
		return "", err
	}
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		out = append(out, rs.renderer.StyleTag(u))
	}
	return tags.Join(out), nil
}

// Tags returns every tag needed to load the given entries, or all configured
// entry points when none are given. In development the dev server client
// comes first. In production each entry contributes its main tag, its styles
// and its preloads; stylesheets of imported chunks are linked as stylesheets.
// Duplicate tags are emitted once.
func (v *Vite) Tags(ctx context.Context, name string, entries ...string) (string, error) {
	rs, err := v.resolverSet(name)
	if err != nil {
		return "", err
	}
	lines, err := v.entryLines(ctx, rs, rs.renderer, cache.PrefixTags, v.format, entries)
	if err != nil {
		return "", err
	}
	return tags.Join(lines), nil
}

// URLs is Tags as a list of bare URLs
func (v *Vite) URLs(ctx context.Context, name string, entries ...string) ([]string, error) {
	rs, err := v.resolverSet(name)
	if err != nil {
		return nil, err
	}
	return v.entryLines(ctx, rs, tags.URLRenderer{}, cache.PrefixURLs, tags.FormatURLs, entries)
}

// AssetURL returns the public URL of a file. In production a path that is a
// manifest key resolves to its hashed output file; any other path is taken
// as relative to the build directory.
func (v *Vite) AssetURL(ctx context.Context, name, path string) (string, error) {
	rs, err := v.resolverSet(name)
	if err != nil {
		return "", err
	}

	if v.useDevServer(ctx, rs) {
		return rs.dev.URL(path), nil
	}

	cr, err := v.chunkResolver(rs)
	if err != nil {
		return "", err
	}

	if m, err := v.loadManifest(rs); err == nil {
		if _, entry, err := m.Resolve(path); err == nil && entry.File != "" {
			return cr.URL(entry.File), nil
		}
	} else if !errors.Is(err, domain.ErrManifestNotFound) {
		return "", err
	}
	return cr.URL(path), nil
}

func (v *Vite) entryLines(ctx context.Context, rs *resolverSet, r tags.Renderer, prefix, format string, entries []string) ([]string, error) {
	if len(entries) == 0 {
		entries = rs.cfg.Entrypoints.Paths
	}

	if v.useDevServer(ctx, rs) {
		lines := []string{tags.Render(r, rs.dev.ClientTag())}
		for _, e := range entries {
			res, err := v.devEntry(rs, e)
			if err != nil {
				return nil, err
			}
			lines = append(lines, tags.Render(r, res.Main))
		}
		return dedupe(lines), nil
	}

	cr, m, err := v.production(rs)
	if err != nil {
		return nil, err
	}

	key := cache.OutputKey(prefix, fingerprint(rs), m.Digest(), format, entries)
	if lines, ok := v.cachedLines(ctx, key); ok {
		return lines, nil
	}

	var lines []string
	for _, e := range entries {
		res, err := cr.Resolve(m, manifestName(rs, e))
		if err != nil {
			return nil, err
		}
		lines = append(lines, tags.RenderEntry(r, res, true)...)
	}
	lines = dedupe(lines)

	v.storeLines(ctx, key, lines)
	return lines, nil
}

// devEntry resolves an entry that must be one of the configured entry points
func (v *Vite) devEntry(rs *resolverSet, entry string) (*domain.ResolvedEntry, error) {
	path, ok := rs.cfg.FindEntrypoint(entry)
	if !ok {
		return nil, domain.NewEntryError(entry, rs.dev.BaseURL())
	}
	return rs.dev.Resolve(path), nil
}

// manifestName maps a short entry name onto its configured entry point path
func manifestName(rs *resolverSet, entry string) string {
	if path, ok := rs.cfg.FindEntrypoint(entry); ok {
		return path
	}
	return entry
}

func (v *Vite) cachedLines(ctx context.Context, key string) ([]string, bool) {
	if v.cache == nil {
		return nil, false
	}
	data, err := v.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			v.logger.Debug().Err(err).Msg("Cache read failed")
		}
		return nil, false
	}
	v.logger.Debug().Str("key", key).Msg("Cache hit")
	if len(data) == 0 {
		return []string{}, true
	}
	return strings.Split(string(data), "\n"), true
}

func (v *Vite) storeLines(ctx context.Context, key string, lines []string) {
	if v.cache == nil {
		return
	}
	if err := v.cache.Set(ctx, key, []byte(strings.Join(lines, "\n")), v.config.Cache.TTL); err != nil {
		v.logger.Debug().Err(err).Msg("Cache write failed")
	}
}

// fingerprint identifies the settings that shape rendered output
func fingerprint(rs *resolverSet) string {
	return fmt.Sprintf("%+v", *rs.cfg)
}

func dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
