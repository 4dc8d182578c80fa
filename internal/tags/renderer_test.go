package tags

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/vitetags/internal/domain"
)

func parse(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestHTMLRenderer_ScriptTag(t *testing.T) {
	r := NewHTMLRenderer(Options{})

	out := r.ScriptTag("http://localhost/build/assets/main.js")

	assert.Equal(t, `<script type="module" src="http://localhost/build/assets/main.js"></script>`, out)
}

func TestHTMLRenderer_StyleTag(t *testing.T) {
	r := NewHTMLRenderer(Options{})

	out := r.StyleTag("http://localhost/build/assets/main.css")

	doc := parse(t, out)
	link := doc.Find(`link[rel="stylesheet"]`)
	require.Equal(t, 1, link.Length())
	href, _ := link.Attr("href")
	assert.Equal(t, "http://localhost/build/assets/main.css", href)
}

func TestHTMLRenderer_PreloadTag(t *testing.T) {
	r := NewHTMLRenderer(Options{})

	script := parse(t, r.PreloadTag("/build/assets/vendor.js", domain.KindScript))
	href, ok := script.Find(`link[rel="modulepreload"]`).Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/build/assets/vendor.js", href)

	style := parse(t, r.PreloadTag("/build/assets/shared.css", domain.KindStyle))
	link := style.Find(`link[rel="preload"][as="style"]`)
	require.Equal(t, 1, link.Length())
	href, _ = link.Attr("href")
	assert.Equal(t, "/build/assets/shared.css", href)
}

func TestHTMLRenderer_EscapesAttributes(t *testing.T) {
	r := NewHTMLRenderer(Options{})

	out := r.ScriptTag(`/assets/app.js?v=1&x="y"`)

	assert.Contains(t, out, `&amp;`)
	assert.NotContains(t, out, `"y"`)

	src, _ := parse(t, out).Find("script").Attr("src")
	assert.Equal(t, `/assets/app.js?v=1&x="y"`, src)
}

func TestHTMLRenderer_DoesNotReencode(t *testing.T) {
	r := NewHTMLRenderer(Options{})

	out := r.StyleTag("/assets/my%20file.css")

	assert.Contains(t, out, `href="/assets/my%20file.css"`)
}

func TestHTMLRenderer_ExtraAttributes(t *testing.T) {
	r := NewHTMLRenderer(Options{
		ScriptAttributes: map[string]string{
			"crossorigin": "anonymous",
			"Defer":       "",
			"src":         "/evil.js",
		},
		StyleAttributes: map[string]string{
			"media": "print",
			"href":  "/evil.css",
		},
	})

	script := r.ScriptTag("/app.js")
	assert.Equal(t, `<script type="module" src="/app.js" crossorigin="anonymous" defer=""></script>`, script)

	style := parse(t, r.StyleTag("/app.css")).Find("link")
	href, _ := style.Attr("href")
	media, _ := style.Attr("media")
	assert.Equal(t, "/app.css", href)
	assert.Equal(t, "print", media)
}

func TestHTMLRenderer_InlineModule(t *testing.T) {
	r := NewHTMLRenderer(Options{})

	out := r.InlineModule(`import x from "/a.js"; if (1 < 2) x()`)

	assert.Equal(t, `<script type="module">import x from "/a.js"; if (1 < 2) x()</script>`, out)
}

func TestURLRenderer(t *testing.T) {
	r := URLRenderer{}

	assert.Equal(t, "/a.js", r.ScriptTag("/a.js"))
	assert.Equal(t, "/a.css", r.StyleTag("/a.css"))
	assert.Equal(t, "/b.js", r.PreloadTag("/b.js", domain.KindScript))
	assert.Empty(t, r.InlineModule("code"))
}

func TestRender_Dispatch(t *testing.T) {
	r := NewHTMLRenderer(Options{})

	tests := []struct {
		name     string
		tag      domain.Tag
		expected string
	}{
		{"script", domain.Tag{Kind: domain.KindScript, URL: "/a.js"}, r.ScriptTag("/a.js")},
		{"style", domain.Tag{Kind: domain.KindStyle, URL: "/a.css"}, r.StyleTag("/a.css")},
		{"preload script", domain.Tag{Kind: domain.KindScript, URL: "/b.js", Preload: true}, r.PreloadTag("/b.js", domain.KindScript)},
		{"preload style", domain.Tag{Kind: domain.KindStyle, URL: "/b.css", Preload: true}, r.PreloadTag("/b.css", domain.KindStyle)},
		{"unknown kind", domain.Tag{Kind: domain.TagKind(42), URL: "/x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(r, tt.tag))
		})
	}
}

func TestRenderEntry(t *testing.T) {
	entry := &domain.ResolvedEntry{
		Main:     domain.Tag{Kind: domain.KindScript, URL: "/main.js"},
		Styles:   []domain.Tag{{Kind: domain.KindStyle, URL: "/a.css"}, {Kind: domain.KindStyle, URL: "/b.css"}},
		Preloads: []domain.Tag{{Kind: domain.KindScript, URL: "/vendor.js", Preload: true}},
	}

	assert.Equal(t, []string{"/main.js", "/a.css", "/b.css"}, RenderEntry(URLRenderer{}, entry, false))
	assert.Equal(t, []string{"/main.js", "/a.css", "/b.css", "/vendor.js"}, RenderEntry(URLRenderer{}, entry, true))
}

func TestRenderEntry_ImportedStylesAreApplied(t *testing.T) {
	entry := &domain.ResolvedEntry{
		Main:   domain.Tag{Kind: domain.KindScript, URL: "/build/main.js"},
		Styles: []domain.Tag{{Kind: domain.KindStyle, URL: "/build/main.css"}},
		Preloads: []domain.Tag{
			{Kind: domain.KindScript, URL: "/build/vendor.js", Preload: true},
			{Kind: domain.KindStyle, URL: "/build/vendor.css", Preload: true},
		},
	}

	doc := parse(t, Join(RenderEntry(NewHTMLRenderer(Options{}), entry, true)))

	var sheets []string
	doc.Find(`link[rel="stylesheet"]`).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		sheets = append(sheets, href)
	})
	assert.Equal(t, []string{"/build/main.css", "/build/vendor.css"}, sheets)
	assert.Equal(t, 0, doc.Find(`link[rel="preload"][as="style"]`).Length())

	href, ok := doc.Find(`link[rel="modulepreload"]`).Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/build/vendor.js", href)

	// A single entry tag keeps the imported stylesheet out
	doc = parse(t, Join(RenderEntry(NewHTMLRenderer(Options{}), entry, false)))
	assert.Equal(t, 1, doc.Find(`link[rel="stylesheet"]`).Length())
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "a\nb", Join([]string{"a", "", "b"}))
	assert.Equal(t, "", Join(nil))
}

func TestForFormat(t *testing.T) {
	r, err := ForFormat("html", Options{})
	require.NoError(t, err)
	assert.IsType(t, &HTMLRenderer{}, r)

	r, err = ForFormat("URLS", Options{})
	require.NoError(t, err)
	assert.IsType(t, URLRenderer{}, r)

	_, err = ForFormat("xml", Options{})
	assert.Error(t, err)
}
