// Package store is the durable key-value store shared by the session and theme settings.
//
// Values live in a single JSON document at where.Store(), read and written through gache
// so the file follows the swappable filesystem backend.
package store

import (
	"fmt"
	"sync"

	"github.com/colorcarnival/carnival/filesystem"
	"github.com/colorcarnival/carnival/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Store is a string to string map persisted as one document.
type Store struct {
	mu     sync.Mutex
	cacher *gache.Cache[map[string]string]
}

// Open creates a store backed by the document at path.
func Open(path string) *Store {
	return &Store{
		cacher: gache.New[map[string]string](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

var (
	defaultStore *Store
	defaultOnce  sync.Once
)

// Default returns the store at where.Store(), opened on first use.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = Open(where.Store())
	})
	return defaultStore
}

func (s *Store) load() (map[string]string, error) {
	cached, expired, err := s.cacher.Get()
	if err != nil {
		return nil, fmt.Errorf("read store: %w", err)
	}
	if expired || cached == nil {
		return make(map[string]string), nil
	}
	return cached, nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (mo.Option[string], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return mo.None[string](), err
	}

	value, ok := values[key]
	return mo.TupleToOption(value, ok), nil
}

// Set stores every pair of values in a single write.
func (s *Store) Set(values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return err
	}

	for k, v := range values {
		current[k] = v
	}

	return s.save(current)
}

// Delete removes every key in a single write. Missing keys are ignored.
func (s *Store) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return err
	}

	if !lo.SomeBy(keys, func(k string) bool { return lo.HasKey(current, k) }) {
		return nil
	}

	for _, k := range keys {
		delete(current, k)
	}

	return s.save(current)
}

// Keys returns the stored keys.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load()
	if err != nil {
		return nil, err
	}
	return lo.Keys(current), nil
}

func (s *Store) save(values map[string]string) error {
	if err := s.cacher.Set(values); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}
