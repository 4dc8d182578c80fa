package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/quantmind-br/vitetags/internal/utils"
)

// DefaultStoreSize bounds the number of manifests kept in memory
const DefaultStoreSize = 64

// StoreOptions contains options for creating a Store
type StoreOptions struct {
	Size   int
	Loader *Loader
	Logger *utils.Logger
}

// Store memoizes loaded manifests per path for the lifetime of the process.
// Concurrent first loads of the same path share a single parse. Failed loads
// are not remembered, so a manifest that appears later is picked up.
// A load that overlaps an invalidation of its path is returned to its
// callers but not kept.
type Store struct {
	load   func(path string) (*Manifest, error)
	logger *utils.Logger
	cache  *lru.Cache[string, *Manifest]
	group  singleflight.Group

	genMu sync.Mutex
	gens  map[string]uint64

	watchMu sync.Mutex
	watcher *fsnotify.Watcher
	watched map[string]bool
}

// NewStore creates a manifest store
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultStoreSize
	}
	if opts.Loader == nil {
		opts.Loader = NewLoader()
	}

	cache, err := lru.New[string, *Manifest](opts.Size)
	if err != nil {
		return nil, err
	}

	return &Store{
		load:    opts.Loader.Load,
		logger:  utils.OrNop(opts.Logger).WithComponent("manifest"),
		cache:   cache,
		gens:    make(map[string]uint64),
		watched: make(map[string]bool),
	}, nil
}

// Load returns the manifest at path, parsing it on first use
func (s *Store) Load(path string) (*Manifest, error) {
	key := storeKey(path)
	if m, ok := s.cache.Get(key); ok {
		return m, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if m, ok := s.cache.Get(key); ok {
			return m, nil
		}

		gen := s.generation(key)
		m, err := s.load(path)
		if err != nil {
			return nil, err
		}

		if !s.keep(key, gen, m) {
			s.logger.Debug().Str("path", path).Msg("Manifest changed while loading, not cached")
			return m, nil
		}
		s.logger.Debug().
			Str("path", path).
			Int("entries", m.Len()).
			Str("digest", m.Digest()).
			Msg("Manifest loaded")
		return m, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Manifest), nil
}

// Invalidate forgets the manifest at path so the next Load re-reads it
func (s *Store) Invalidate(path string) {
	key := storeKey(path)

	s.genMu.Lock()
	s.gens[key]++
	removed := s.cache.Remove(key)
	s.genMu.Unlock()

	s.group.Forget(key)
	if removed {
		s.logger.Debug().Str("path", path).Msg("Manifest invalidated")
	}
}

func (s *Store) generation(key string) uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.gens[key]
}

// keep caches m unless key was invalidated since generation gen
func (s *Store) keep(key string, gen uint64, m *Manifest) bool {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.gens[key] != gen {
		return false
	}
	s.cache.Add(key, m)
	return true
}

// Len returns the number of manifests held in memory
func (s *Store) Len() int {
	return s.cache.Len()
}

// Watch invalidates the manifest at path whenever the file changes on disk.
// The containing directory is watched so atomic rename-writes are seen.
// Watching stops when ctx is done or the store is closed.
func (s *Store) Watch(ctx context.Context, path string) error {
	key := storeKey(path)

	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.watched[key] {
		return nil
	}

	if s.watcher == nil {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create manifest watcher: %w", err)
		}
		s.watcher = watcher
		go s.runWatcher(ctx, watcher)
	}

	if err := s.watcher.Add(filepath.Dir(key)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	s.watched[key] = true
	return nil
}

func (s *Store) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			_ = s.closeWatcher(watcher)
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			key := storeKey(event.Name)
			s.watchMu.Lock()
			watched := s.watched[key]
			s.watchMu.Unlock()

			if watched {
				s.Invalidate(key)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn().Err(err).Msg("Manifest watcher error")
		}
	}
}

// Close stops watching
func (s *Store) Close() error {
	s.watchMu.Lock()
	watcher := s.watcher
	s.watchMu.Unlock()

	if watcher == nil {
		return nil
	}
	return s.closeWatcher(watcher)
}

func (s *Store) closeWatcher(watcher *fsnotify.Watcher) error {
	s.watchMu.Lock()
	defer s.watchMu.Unlock()

	if s.watcher != watcher {
		return nil
	}
	s.watcher = nil
	s.watched = make(map[string]bool)
	return watcher.Close()
}

func storeKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
