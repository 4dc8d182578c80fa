// Package tags formats resolved asset URLs as markup.
//
// Rendering is pure string formatting: resolution decides which URLs are
// needed and in which order, a Renderer decides how they are written out.
package tags

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/quantmind-br/vitetags/internal/domain"
)

// Output formats
const (
	FormatHTML = "html"
	FormatURLs = "urls"
)

// Renderer writes tags for resolved URLs
type Renderer interface {
	ScriptTag(url string) string
	StyleTag(url string) string
	PreloadTag(url string, kind domain.TagKind) string
	InlineModule(code string) string
}

// Options configures renderers
type Options struct {
	ScriptAttributes map[string]string
	StyleAttributes  map[string]string
}

// ForFormat returns the renderer for an output format name
func ForFormat(format string, opts Options) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatHTML, "":
		return NewHTMLRenderer(opts), nil
	case FormatURLs, "url":
		return URLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use %s or %s)", format, FormatHTML, FormatURLs)
	}
}

// Render dispatches a tag to the matching renderer method
func Render(r Renderer, tag domain.Tag) string {
	if tag.Preload {
		return r.PreloadTag(tag.URL, tag.Kind)
	}
	switch tag.Kind {
	case domain.KindStyle:
		return r.StyleTag(tag.URL)
	case domain.KindScript:
		return r.ScriptTag(tag.URL)
	}
	return ""
}

// RenderEntry renders the main tag, the style tags and, when asked, the
// preload tags of an entry, in that order. Stylesheets reached through
// imports are in the preload set but are written as stylesheet tags, since a
// style preload alone is never applied to the page.
func RenderEntry(r Renderer, entry *domain.ResolvedEntry, withPreloads bool) []string {
	out := make([]string, 0, 1+len(entry.Styles)+len(entry.Preloads))
	out = append(out, Render(r, entry.Main))
	for _, t := range entry.Styles {
		out = append(out, Render(r, t))
	}
	if withPreloads {
		for _, t := range entry.Preloads {
			if t.Kind == domain.KindStyle {
				out = append(out, r.StyleTag(t.URL))
				continue
			}
			out = append(out, Render(r, t))
		}
	}
	return out
}

// Join concatenates rendered tags one per line, skipping empty ones
func Join(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// HTMLRenderer renders HTML5 tags through golang.org/x/net/html, which takes
// care of attribute escaping. URLs are written as given and never re-encoded.
type HTMLRenderer struct {
	scriptAttrs []html.Attribute
	styleAttrs  []html.Attribute
}

// NewHTMLRenderer creates an HTML renderer. Extra attributes are emitted
// sorted by name after the built-in ones; they cannot replace src or href.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{
		scriptAttrs: extraAttributes(opts.ScriptAttributes, "src", "type"),
		styleAttrs:  extraAttributes(opts.StyleAttributes, "href", "rel"),
	}
}

// ScriptTag renders <script type="module" src="...">
func (r *HTMLRenderer) ScriptTag(url string) string {
	attrs := []html.Attribute{{Key: "type", Val: "module"}, {Key: "src", Val: url}}
	return render(element(atom.Script, append(attrs, r.scriptAttrs...)))
}

// StyleTag renders <link rel="stylesheet" href="...">
func (r *HTMLRenderer) StyleTag(url string) string {
	attrs := []html.Attribute{{Key: "rel", Val: "stylesheet"}, {Key: "href", Val: url}}
	return render(element(atom.Link, append(attrs, r.styleAttrs...)))
}

// PreloadTag renders a modulepreload link for scripts and a style preload for stylesheets
func (r *HTMLRenderer) PreloadTag(url string, kind domain.TagKind) string {
	var attrs []html.Attribute
	switch kind {
	case domain.KindStyle:
		attrs = []html.Attribute{{Key: "rel", Val: "preload"}, {Key: "as", Val: "style"}, {Key: "href", Val: url}}
	default:
		attrs = []html.Attribute{{Key: "rel", Val: "modulepreload"}, {Key: "href", Val: url}}
	}
	return render(element(atom.Link, attrs))
}

// InlineModule renders an inline <script type="module"> with code as its body
func (r *HTMLRenderer) InlineModule(code string) string {
	n := element(atom.Script, append([]html.Attribute{{Key: "type", Val: "module"}}, r.scriptAttrs...))
	n.AppendChild(&html.Node{Type: html.TextNode, Data: code})
	return render(n)
}

// URLRenderer emits bare URLs, one per tag
type URLRenderer struct{}

func (URLRenderer) ScriptTag(url string) string { return url }

func (URLRenderer) StyleTag(url string) string { return url }

func (URLRenderer) PreloadTag(url string, _ domain.TagKind) string { return url }

// InlineModule has no URL form
func (URLRenderer) InlineModule(string) string { return "" }

func element(a atom.Atom, attrs []html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func render(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

func extraAttributes(attrs map[string]string, reserved ...string) []html.Attribute {
	if len(attrs) == 0 {
		return nil
	}

	skip := make(map[string]bool, len(reserved))
	for _, k := range reserved {
		skip[k] = true
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || skip[k] {
			continue
		}
		skip[k] = true
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]html.Attribute, 0, len(keys))
	for _, k := range keys {
		out = append(out, html.Attribute{Key: k, Val: lookupFold(attrs, k)})
	}
	return out
}

func lookupFold(attrs map[string]string, key string) string {
	if v, ok := attrs[key]; ok {
		return v
	}
	for k, v := range attrs {
		if strings.EqualFold(strings.TrimSpace(k), key) {
			return v
		}
	}
	return ""
}
