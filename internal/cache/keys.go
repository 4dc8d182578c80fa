package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KeyPrefix constants for different cached outputs
const (
	PrefixTags     = "tags"
	PrefixURLs     = "urls"
	PrefixStyles   = "styles"
	PrefixManifest = "manifest"
)

// GenerateKey generates a cache key from its parts
// The key is a SHA256 hash of the NUL-joined parts
func GenerateKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// GenerateKeyWithPrefix generates a cache key with a readable prefix
func GenerateKeyWithPrefix(prefix string, parts ...string) string {
	return prefix + ":" + GenerateKey(parts...)
}

// OutputKey generates the key of a rendered output. The manifest digest
// is part of the key so a rebuilt manifest never serves stale tags.
func OutputKey(prefix, configuration, digest, format string, entries []string) string {
	parts := append([]string{configuration, digest, format}, entries...)
	return GenerateKeyWithPrefix(prefix, parts...)
}
