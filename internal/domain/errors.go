package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrConfigurationNotFound indicates the requested named configuration does not exist
	ErrConfigurationNotFound = errors.New("configuration not found")

	// ErrManifestNotFound indicates the manifest file is missing or cannot be parsed
	ErrManifestNotFound = errors.New("manifest not found")

	// ErrNoBuildPath indicates production mode is active without a build path
	ErrNoBuildPath = errors.New("no build path configured")

	// ErrEntryNotFound indicates the entry is absent from the manifest or entry point list
	ErrEntryNotFound = errors.New("entry not found")

	// ErrDanglingReference indicates an import key does not resolve within the manifest
	ErrDanglingReference = errors.New("dangling manifest reference")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")

	// ErrDevServerUnreachable indicates the dev server did not answer a ping
	ErrDevServerUnreachable = errors.New("dev server unreachable")
)

// ConfigurationError reports a lookup of an unknown configuration name
type ConfigurationError struct {
	Name      string
	Available []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("configuration %q not found", e.Name)
	}
	return fmt.Sprintf("configuration %q not found (available: %v)", e.Name, e.Available)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfigurationNotFound
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(name string, available []string) *ConfigurationError {
	return &ConfigurationError{Name: name, Available: available}
}

// ManifestError reports a manifest that could not be read or parsed
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("manifest not found at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("manifest not found at %s", e.Path)
}

// Is makes errors.Is(err, ErrManifestNotFound) match regardless of the cause
func (e *ManifestError) Is(target error) bool {
	return target == ErrManifestNotFound
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// NewManifestError creates a new ManifestError
func NewManifestError(path string, err error) *ManifestError {
	return &ManifestError{Path: path, Err: err}
}

// EntryError reports an entry missing from a manifest or entry point list
type EntryError struct {
	Entry  string
	Source string // manifest path or dev server URL
}

func (e *EntryError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("entry %q not found", e.Entry)
	}
	return fmt.Sprintf("entry %q not found in %s", e.Entry, e.Source)
}

func (e *EntryError) Unwrap() error {
	return ErrEntryNotFound
}

// NewEntryError creates a new EntryError
func NewEntryError(entry, source string) *EntryError {
	return &EntryError{Entry: entry, Source: source}
}

// DanglingReferenceError describes an import edge pointing outside the manifest
type DanglingReferenceError struct {
	From    string
	Key     string
	Dynamic bool
}

func (e *DanglingReferenceError) Error() string {
	kind := "import"
	if e.Dynamic {
		kind = "dynamic import"
	}
	return fmt.Sprintf("%s %q of %q does not resolve within the manifest", kind, e.Key, e.From)
}

func (e *DanglingReferenceError) Unwrap() error {
	return ErrDanglingReference
}

// IsFatal reports whether err aborts a resolution call.
// Dangling references are diagnostics only.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrDanglingReference)
}
