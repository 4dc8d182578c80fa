// Package paths turns build-relative file paths into absolute asset URLs.
//
// Base paths are normalized to exactly one leading and one trailing slash,
// whatever mix of slashes, backslashes and empty segments the caller passed.
// Relative paths are joined without doubling or dropping separators, so
// "/app.js" and "app.js" resolve to the same URL.
package paths

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrOutsidePublicDir indicates a manifest stored outside the public web root
var ErrOutsidePublicDir = errors.New("manifest is outside the public directory")

// Resolver resolves build-relative paths against a base path and origin
type Resolver struct {
	// AppURL is the application's own origin. Empty yields root-relative URLs.
	AppURL string
}

// NewResolver creates a resolver anchored at the given application origin
func NewResolver(appURL string) *Resolver {
	return &Resolver{AppURL: appURL}
}

// Resolve joins origin, base path and relative path into one URL.
// A non-empty assetHost replaces the application origin.
func (r *Resolver) Resolve(basePath, assetHost, relativePath string) string {
	origin := r.AppURL
	if assetHost != "" {
		origin = assetHost
	}
	return TrimOrigin(origin) + NormalizeBase(basePath) + EncodePath(relativePath)
}

// Join appends a relative path to an origin URL with exactly one slash between them
func Join(origin, relativePath string) string {
	return TrimOrigin(origin) + "/" + EncodePath(relativePath)
}

// TrimOrigin removes trailing slashes from an origin
func TrimOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}

// NormalizeBase returns base with exactly one leading and one trailing slash
// and no empty segments. An empty base normalizes to "/".
func NormalizeBase(base string) string {
	segments := splitSegments(base)
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/") + "/"
}

// IsEmptyBase reports whether base has no path segments at all
func IsEmptyBase(base string) bool {
	return len(splitSegments(base)) == 0
}

// EncodePath normalizes a relative path: leading slashes are dropped,
// backslashes become slashes, segments are NFC-normalized and percent-encoded.
// Segments that are already encoded are not encoded twice. A query string or
// fragment is passed through untouched.
func EncodePath(p string) string {
	p, suffix := splitSuffix(p)
	trailing := strings.HasSuffix(strings.ReplaceAll(p, `\`, "/"), "/")

	segments := splitSegments(p)
	for i, seg := range segments {
		segments[i] = encodeSegment(seg)
	}

	out := strings.Join(segments, "/")
	if trailing && out != "" {
		out += "/"
	}
	return out + suffix
}

// BasePathFromManifest derives the public base path of a build from the
// location of its manifest: the public directory prefix is stripped and the
// containing directory becomes the base.
func BasePathFromManifest(publicDir, manifestPath string) (string, error) {
	public := cleanSlashes(publicDir)
	manifest := cleanSlashes(manifestPath)

	if path.IsAbs(public) != path.IsAbs(manifest) {
		absPublic, err := filepath.Abs(publicDir)
		if err != nil {
			return "", err
		}
		absManifest, err := filepath.Abs(manifestPath)
		if err != nil {
			return "", err
		}
		public, manifest = cleanSlashes(absPublic), cleanSlashes(absManifest)
	}

	var rel string
	switch {
	case public == ".":
		rel = manifest
	case strings.HasPrefix(manifest, public+"/"):
		rel = strings.TrimPrefix(manifest, public+"/")
	case public == "/":
		rel = strings.TrimPrefix(manifest, "/")
	default:
		return "", fmt.Errorf("%w: %s not under %s", ErrOutsidePublicDir, manifestPath, publicDir)
	}

	dir := path.Dir(rel)
	if dir == "." {
		return "/", nil
	}
	return NormalizeBase(dir), nil
}

func cleanSlashes(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}

func splitSegments(p string) []string {
	parts := strings.Split(strings.ReplaceAll(p, `\`, "/"), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

func splitSuffix(p string) (string, string) {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		return p[:i], p[i:]
	}
	return p, ""
}

func encodeSegment(seg string) string {
	if decoded, err := url.PathUnescape(seg); err == nil {
		seg = decoded
	}
	return url.PathEscape(norm.NFC.String(seg))
}
