package chunks

import (
	"github.com/quantmind-br/vitetags/internal/domain"
	"github.com/quantmind-br/vitetags/internal/manifest"
)

// Graph is the static import closure of one manifest entry
type Graph struct {
	// Root is the manifest key the walk started from
	Root string
	// Chunks lists statically imported keys in depth-first order, root excluded
	Chunks []string
	// CSS lists every stylesheet of the closure once, first occurrence wins
	CSS []string
	// Dynamic lists dynamically imported keys outside the static closure
	Dynamic []string
	// Dangling collects import edges that point outside the manifest
	Dangling []*domain.DanglingReferenceError
}

// Walk computes the static import closure of key. Only imports are
// followed; dynamic imports are recorded but never entered. Every key is
// visited at most once, so cycles terminate. The walk keeps all state local
// and is safe to run concurrently on the same manifest.
func Walk(m *manifest.Manifest, key string) *Graph {
	g := &Graph{Root: key}

	root, ok := m.Lookup(key)
	if !ok {
		return g
	}

	visited := map[string]bool{key: true}
	seenCSS := make(map[string]bool)
	seenDynamic := make(map[string]bool)
	var dynamic []string

	var visit func(key string, e *manifest.Entry)
	visit = func(key string, e *manifest.Entry) {
		for _, css := range e.CSS {
			if !seenCSS[css] {
				seenCSS[css] = true
				g.CSS = append(g.CSS, css)
			}
		}

		for _, dyn := range e.DynamicImports {
			if _, ok := m.Lookup(dyn); !ok {
				g.Dangling = append(g.Dangling, &domain.DanglingReferenceError{From: key, Key: dyn, Dynamic: true})
				continue
			}
			if !seenDynamic[dyn] {
				seenDynamic[dyn] = true
				dynamic = append(dynamic, dyn)
			}
		}

		for _, imp := range e.Imports {
			if visited[imp] {
				continue
			}
			child, ok := m.Lookup(imp)
			if !ok {
				g.Dangling = append(g.Dangling, &domain.DanglingReferenceError{From: key, Key: imp})
				continue
			}
			visited[imp] = true
			g.Chunks = append(g.Chunks, imp)
			visit(imp, child)
		}
	}
	visit(key, root)

	for _, dyn := range dynamic {
		if !visited[dyn] {
			g.Dynamic = append(g.Dynamic, dyn)
		}
	}

	return g
}

// CollectCSS returns the deduplicated stylesheets of key's static import closure
func CollectCSS(m *manifest.Manifest, key string) []string {
	return Walk(m, key).CSS
}
