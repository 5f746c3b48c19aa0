// internal/store/store.go
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Collection names. Each one maps to <dir>/<name>.json.
const (
	ColProductos     = "productos"
	ColMarcas        = "marcas"
	ColConfiguracion = "configuracion"
)

// Store persists each collection as a single JSON file rewritten in full on
// every mutation. One mutex per collection guards the read-modify-write
// sequence, so writers to the same collection serialize while unrelated
// collections stay independent.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(dir string) *Store {
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// readFile decodes the collection file into out. A missing or unparsable
// file leaves out untouched: a fresh installation has no data files yet, so
// both cases mean "empty collection" rather than an error.
func (s *Store) readFile(name string, out interface{}) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		logrus.WithError(err).WithField("collection", name).Warn("Unparsable collection file, treating as empty")
	}
}

func (s *Store) writeFile(name string, v interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", name, err)
	}
	return nil
}

// Read loads the named collection under its lock.
func Read[T any](s *Store, name string) (T, error) {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	var out T
	s.readFile(name, &out)
	return out, nil
}

// Update runs a read-modify-write cycle under the collection's lock. fn
// receives the current contents and returns the replacement to persist; a
// non-nil error aborts without writing.
func Update[T any](s *Store, name string, fn func(T) (T, error)) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()

	var current T
	s.readFile(name, &current)

	next, err := fn(current)
	if err != nil {
		return err
	}
	return s.writeFile(name, next)
}
