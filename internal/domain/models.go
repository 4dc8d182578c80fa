package domain

import (
	"path"
	"strings"
)

// Mode selects where assets are served from
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// ParseMode parses a mode string, accepting common short forms
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev", "local":
		return ModeDevelopment, true
	case "production", "prod", "build":
		return ModeProduction, true
	default:
		return "", false
	}
}

// TagKind is the closed set of tag variants
type TagKind int

const (
	KindScript TagKind = iota
	KindStyle
)

func (k TagKind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindStyle:
		return "style"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind as its name
func (k TagKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

var styleExtensions = map[string]bool{
	".css":  true,
	".scss": true,
	".sass": true,
	".less": true,
	".styl": true,
	".pcss": true,
}

// KindForFile decides the tag kind of a built file from its extension
func KindForFile(file string) TagKind {
	if strings.EqualFold(path.Ext(stripQuery(file)), ".css") {
		return KindStyle
	}
	return KindScript
}

// IsStyleSource reports whether a source file is a stylesheet (any preprocessor)
func IsStyleSource(file string) bool {
	return styleExtensions[strings.ToLower(path.Ext(stripQuery(file)))]
}

func stripQuery(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		return p[:i]
	}
	return p
}

// Tag is one resolved asset reference
type Tag struct {
	Kind    TagKind `json:"kind"`
	URL     string  `json:"url"`
	Preload bool    `json:"preload,omitempty"`
}

// ResolvedEntry is the ordered set of tags needed to load one entry point
type ResolvedEntry struct {
	Name     string   `json:"name"`
	Main     Tag      `json:"main"`
	Styles   []Tag    `json:"styles,omitempty"`
	Preloads []Tag    `json:"preloads,omitempty"`
	Prefetch []string `json:"prefetch,omitempty"`
	Assets   []string `json:"assets,omitempty"`
}

// StyleURLs returns the URLs of the style tags in order
func (r *ResolvedEntry) StyleURLs() []string {
	urls := make([]string, 0, len(r.Styles))
	for _, t := range r.Styles {
		urls = append(urls, t.URL)
	}
	return urls
}

// URLs returns every URL of the entry in tag order
func (r *ResolvedEntry) URLs() []string {
	urls := make([]string, 0, 1+len(r.Styles)+len(r.Preloads))
	urls = append(urls, r.Main.URL)
	urls = append(urls, r.StyleURLs()...)
	for _, t := range r.Preloads {
		urls = append(urls, t.URL)
	}
	return urls
}
