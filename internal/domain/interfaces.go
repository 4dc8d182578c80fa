package domain

import (
	"context"
	"time"
)

// Cache defines the interface for rendered output caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}

// Certificate is a certificate/key pair found on disk
type Certificate struct {
	CertFile string
	KeyFile  string
}

// CertificateProvider discovers local TLS certificates for a dev server host
type CertificateProvider interface {
	// Lookup returns the certificate for host, or false if none is installed
	Lookup(host string) (Certificate, bool)
}

// Pinger checks whether a dev server answers
type Pinger interface {
	Ping(ctx context.Context, url string) error
}
