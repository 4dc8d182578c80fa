// Package devserver resolves entry points against a running dev server.
//
// In development nothing is read from the build manifest: every entry point
// is served from its source path by the dev server, and the page also loads
// the dev server's client runtime for hot module replacement.
package devserver

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/quantmind-br/vitetags/internal/domain"
	"github.com/quantmind-br/vitetags/internal/paths"
	"github.com/quantmind-br/vitetags/internal/utils"
)

// Well-known dev server paths
const (
	ClientPath       = "@vite/client"
	ReactRefreshPath = "@react-refresh"
)

const reactRefreshPreamble = `import RefreshRuntime from %q
RefreshRuntime.injectIntoGlobalHook(window)
window.$RefreshReg$ = () => {}
window.$RefreshSig$ = () => (type) => type
window.__vite_plugin_react_preamble_installed__ = true`

// Options contains options for creating a Resolver
type Options struct {
	URL          string
	Certificates domain.CertificateProvider
	Logger       *utils.Logger
}

// Resolver builds dev server URLs for entry points
type Resolver struct {
	baseURL string
	secure  bool
}

// NewResolver creates a dev server resolver. When a certificate provider
// reports a local certificate for the server host, the base URL is switched
// to https; nothing else about tag generation changes.
func NewResolver(opts Options) (*Resolver, error) {
	raw := strings.TrimSpace(opts.URL)
	if raw == "" {
		return nil, fmt.Errorf("dev server url is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid dev server url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid dev server url %q: scheme and host are required", raw)
	}

	logger := utils.OrNop(opts.Logger).WithComponent("devserver")
	if u.Scheme == "http" && opts.Certificates != nil {
		if cert, ok := opts.Certificates.Lookup(u.Hostname()); ok {
			u.Scheme = "https"
			logger.Debug().
				Str("host", u.Hostname()).
				Str("cert", cert.CertFile).
				Msg("Local certificate found, using https")
		}
	}

	return &Resolver{
		baseURL: paths.TrimOrigin(u.String()),
		secure:  u.Scheme == "https",
	}, nil
}

// BaseURL returns the dev server origin without a trailing slash
func (r *Resolver) BaseURL() string {
	return r.baseURL
}

// Secure reports whether the dev server is addressed over https
func (r *Resolver) Secure() bool {
	return r.secure
}

// URL joins a source path to the dev server origin
func (r *Resolver) URL(path string) string {
	return paths.Join(r.baseURL, path)
}

// Resolve returns the tag loading a source entry point from the dev server.
// Stylesheet sources load through a link tag, everything else as a module.
func (r *Resolver) Resolve(path string) *domain.ResolvedEntry {
	kind := domain.KindScript
	if domain.IsStyleSource(path) {
		kind = domain.KindStyle
	}
	return &domain.ResolvedEntry{
		Name: path,
		Main: domain.Tag{Kind: kind, URL: r.URL(path)},
	}
}

// ClientTag returns the tag of the dev server's client runtime
func (r *Resolver) ClientTag() domain.Tag {
	return domain.Tag{Kind: domain.KindScript, URL: r.URL(ClientPath)}
}

// ReactRefreshPreamble returns the inline module that installs the React
// refresh runtime. It must run before any React component module.
func (r *Resolver) ReactRefreshPreamble() string {
	return fmt.Sprintf(reactRefreshPreamble, r.URL(ReactRefreshPath))
}
