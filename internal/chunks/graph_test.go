package chunks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/vitetags/internal/domain"
)

func TestWalk_Diamond(t *testing.T) {
	m := loadManifest(t, `{
		"root": {"file": "root.js", "css": ["root.css"], "imports": ["x", "y"]},
		"x": {"file": "x.js", "css": ["x.css"], "imports": ["shared"]},
		"y": {"file": "y.js", "css": ["y.css"], "imports": ["shared"]},
		"shared": {"file": "shared.js", "css": ["s.css"]}
	}`)

	g := Walk(m, "root")

	assert.Equal(t, []string{"root.css", "x.css", "s.css", "y.css"}, g.CSS)
	assert.Equal(t, []string{"x", "shared", "y"}, g.Chunks)
	assert.Empty(t, g.Dangling)

	count := 0
	for _, css := range g.CSS {
		if css == "s.css" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestWalk_Cycle(t *testing.T) {
	m := loadManifest(t, `{
		"a": {"file": "a.js", "css": ["a.css"], "imports": ["b"]},
		"b": {"file": "b.js", "css": ["b.css"], "imports": ["a", "b"]}
	}`)

	g := Walk(m, "a")

	assert.Equal(t, []string{"a.css", "b.css"}, g.CSS)
	assert.Equal(t, []string{"b"}, g.Chunks)

	// Starting from the other side of the cycle
	g = Walk(m, "b")
	assert.Equal(t, []string{"b.css", "a.css"}, g.CSS)
	assert.Equal(t, []string{"a"}, g.Chunks)
}

func TestWalk_SharedCSSAcrossPaths(t *testing.T) {
	m := loadManifest(t, `{
		"root": {"file": "root.js", "css": ["common.css"], "imports": ["x"]},
		"x": {"file": "x.js", "css": ["common.css", "x.css"]}
	}`)

	assert.Equal(t, []string{"common.css", "x.css"}, CollectCSS(m, "root"))
}

func TestWalk_DynamicImportsNotTraversed(t *testing.T) {
	m := loadManifest(t, `{
		"root": {"file": "root.js", "imports": ["x"], "dynamicImports": ["lazy", "x"]},
		"x": {"file": "x.js", "dynamicImports": ["lazy2"]},
		"lazy": {"file": "lazy.js", "css": ["lazy.css"], "imports": ["deep"]},
		"lazy2": {"file": "lazy2.js", "css": ["lazy2.css"]},
		"deep": {"file": "deep.js", "css": ["deep.css"]}
	}`)

	g := Walk(m, "root")

	assert.Empty(t, g.CSS)
	assert.Equal(t, []string{"x"}, g.Chunks)
	// x is statically loaded already, so it is not a prefetch candidate
	assert.Equal(t, []string{"lazy", "lazy2"}, g.Dynamic)
}

func TestWalk_Dangling(t *testing.T) {
	m := loadManifest(t, `{
		"root": {"file": "root.js", "css": ["root.css"], "imports": ["ghost", "real"], "dynamicImports": ["phantom"]},
		"real": {"file": "real.js", "css": ["real.css"]}
	}`)

	g := Walk(m, "root")

	assert.Equal(t, []string{"root.css", "real.css"}, g.CSS)
	require.Len(t, g.Dangling, 2)
	assert.Equal(t, "phantom", g.Dangling[0].Key)
	assert.True(t, g.Dangling[0].Dynamic)
	assert.Equal(t, "ghost", g.Dangling[1].Key)
	assert.Equal(t, "root", g.Dangling[1].From)
	assert.ErrorIs(t, g.Dangling[1], domain.ErrDanglingReference)
	assert.False(t, domain.IsFatal(g.Dangling[1]))
}

func TestWalk_UnknownRoot(t *testing.T) {
	m := loadManifest(t, `{}`)

	g := Walk(m, "nope")

	assert.Equal(t, "nope", g.Root)
	assert.Empty(t, g.CSS)
	assert.Empty(t, g.Chunks)
}

func TestWalk_ImportDeclarationOrder(t *testing.T) {
	// File order differs from import order; traversal follows imports
	m := loadManifest(t, `{
		"c": {"file": "c.js", "css": ["c.css"]},
		"b": {"file": "b.js", "css": ["b.css"]},
		"a": {"file": "a.js", "css": ["a.css"]},
		"root": {"file": "root.js", "imports": ["a", "b", "c"]}
	}`)

	for i := 0; i < 20; i++ {
		assert.Equal(t, []string{"a.css", "b.css", "c.css"}, CollectCSS(m, "root"))
	}
}
