package cache

import (
	"fmt"
	"time"

	"github.com/quantmind-br/vitetags/internal/domain"
)

// Ensure both backends implement domain.Cache
var (
	_ domain.Cache = (*BadgerCache)(nil)
	_ domain.Cache = (*MemoryCache)(nil)
)

// Backend names
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Options contains cache configuration options
type Options struct {
	Backend   string
	Directory string
	InMemory  bool
	Size      int
	Logger    bool
}

// DefaultOptions returns default cache options
func DefaultOptions() Options {
	return Options{
		Backend: BackendMemory,
		Size:    DefaultMemorySize,
	}
}

// New creates the cache backend named in opts
func New(opts Options) (domain.Cache, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryCache(opts.Size)
	case BackendBadger:
		return NewBadgerCache(opts)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}
