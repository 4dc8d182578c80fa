package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/vitetags/internal/domain"
)

// Loader reads manifest files
type Loader struct{}

// NewLoader creates a new manifest loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses a manifest file from the given path
func (l *Loader) Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NewManifestError(path, ErrFileNotFound)
		}
		return nil, domain.NewManifestError(path, fmt.Errorf("failed to read manifest file: %w", err))
	}

	return l.LoadFromBytes(data, path)
}

// LoadFromBytes parses a manifest from raw bytes. The format is picked from
// the extension of path; files without an extension are read as JSON.
func (l *Loader) LoadFromBytes(data []byte, path string) (*Manifest, error) {
	var (
		keys    []string
		entries map[string]*Entry
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		keys, entries, err = decodeJSON(data)
	case ".yaml", ".yml":
		keys, entries, err = decodeYAML(data)
	default:
		return nil, domain.NewManifestError(path, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext))
	}
	if err != nil {
		return nil, domain.NewManifestError(path, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	m, err := New(path, keys, entries)
	if err != nil {
		return nil, domain.NewManifestError(path, err)
	}

	sum := sha256.Sum256(data)
	m.digest = hex.EncodeToString(sum[:])
	return m, nil
}

// decodeJSON walks the top-level object token by token to keep key order
func decodeJSON(data []byte) ([]string, map[string]*Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected an object, got %v", tok)
	}

	var keys []string
	entries := make(map[string]*Entry)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected a key, got %v", tok)
		}

		var e *Entry
		if err := dec.Decode(&e); err != nil {
			return nil, nil, fmt.Errorf("entry %q: %w", key, err)
		}
		if e == nil {
			continue
		}
		if _, dup := entries[key]; !dup {
			keys = append(keys, key)
		}
		entries[key] = e
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, errors.New("trailing data after manifest object")
	}

	return keys, entries, nil
}

func decodeYAML(data []byte) ([]string, map[string]*Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil, errors.New("empty document")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("expected a mapping at line %d", root.Line)
	}

	var keys []string
	entries := make(map[string]*Entry)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		value := root.Content[i+1]
		if value.Tag == "!!null" {
			continue
		}

		var e Entry
		if err := value.Decode(&e); err != nil {
			return nil, nil, fmt.Errorf("entry %q: %w", key, err)
		}
		if _, dup := entries[key]; !dup {
			keys = append(keys, key)
		}
		entries[key] = &e
	}

	return keys, entries, nil
}
