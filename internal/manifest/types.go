package manifest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/quantmind-br/vitetags/internal/domain"
)

// Entry is one node of the manifest graph
type Entry struct {
	File           string   `json:"file" yaml:"file"`
	Src            string   `json:"src,omitempty" yaml:"src,omitempty"`
	IsEntry        bool     `json:"isEntry,omitempty" yaml:"isEntry,omitempty"`
	IsDynamicEntry bool     `json:"isDynamicEntry,omitempty" yaml:"isDynamicEntry,omitempty"`
	CSS            []string `json:"css,omitempty" yaml:"css,omitempty"`
	Imports        []string `json:"imports,omitempty" yaml:"imports,omitempty"`
	DynamicImports []string `json:"dynamicImports,omitempty" yaml:"dynamicImports,omitempty"`
	Assets         []string `json:"assets,omitempty" yaml:"assets,omitempty"`
}

// Kind returns the tag kind of the entry's built file
func (e *Entry) Kind() domain.TagKind {
	return domain.KindForFile(e.File)
}

// Manifest is an immutable, ordered view of a loaded build manifest.
// It is safe for concurrent use.
type Manifest struct {
	path    string
	digest  string
	keys    []string
	entries map[string]*Entry

	srcOnce sync.Once
	bySrc   map[string]string
}

// New builds a manifest from entries listed in keys order.
// Every key must have an entry.
func New(path string, keys []string, entries map[string]*Entry) (*Manifest, error) {
	if len(keys) != len(entries) {
		return nil, fmt.Errorf("%w: %d keys for %d entries", ErrInvalidFormat, len(keys), len(entries))
	}
	for _, k := range keys {
		if entries[k] == nil {
			return nil, fmt.Errorf("%w: no entry for key %q", ErrInvalidFormat, k)
		}
	}
	return &Manifest{
		path:    path,
		keys:    append([]string(nil), keys...),
		entries: entries,
	}, nil
}

// Path returns the location the manifest was loaded from
func (m *Manifest) Path() string {
	return m.path
}

// Digest returns the SHA-256 of the manifest bytes, empty when built in memory
func (m *Manifest) Digest() string {
	return m.digest
}

// Len returns the number of entries
func (m *Manifest) Len() int {
	return len(m.keys)
}

// Keys returns the entry keys in file order
func (m *Manifest) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Lookup returns the entry stored under key
func (m *Manifest) Lookup(key string) (*Entry, bool) {
	e, ok := m.entries[key]
	return e, ok
}

// Get returns the entry stored under key or an EntryNotFound error
func (m *Manifest) Get(key string) (*Entry, error) {
	if e, ok := m.entries[key]; ok {
		return e, nil
	}
	return nil, domain.NewEntryError(key, m.path)
}

// Resolve finds an entry by key or by its source path, tolerating
// leading "./" and "/" on the name. It returns the matched key.
func (m *Manifest) Resolve(name string) (string, *Entry, error) {
	if e, ok := m.entries[name]; ok {
		return name, e, nil
	}

	trimmed := strings.TrimLeft(strings.TrimPrefix(strings.ReplaceAll(name, `\`, "/"), "./"), "/")
	if e, ok := m.entries[trimmed]; ok {
		return trimmed, e, nil
	}

	m.srcOnce.Do(m.indexSources)
	if key, ok := m.bySrc[trimmed]; ok {
		return key, m.entries[key], nil
	}

	return "", nil, domain.NewEntryError(name, m.path)
}

// Each calls fn for every entry in file order
func (m *Manifest) Each(fn func(key string, e *Entry)) {
	for _, k := range m.keys {
		fn(k, m.entries[k])
	}
}

// EntryPoints returns the keys flagged as top-level entries, in file order
func (m *Manifest) EntryPoints() []string {
	var keys []string
	for _, k := range m.keys {
		if m.entries[k].IsEntry {
			keys = append(keys, k)
		}
	}
	return keys
}

func (m *Manifest) indexSources() {
	m.bySrc = make(map[string]string, len(m.keys))
	for _, k := range m.keys {
		src := m.entries[k].Src
		if src == "" {
			continue
		}
		if _, exists := m.bySrc[src]; !exists {
			m.bySrc[src] = k
		}
	}
}
