package fixtures

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

//go:embed data/*.json
var embedded embed.FS

// ErrFixtureNotFound is returned (wrapped) when a store has no fixture with the requested name.
var ErrFixtureNotFound = errors.New("fixture not found")

// Store reads expected-response snapshots. Each fixture is read from the underlying file system
// at most once; every later Load returns the same bytes, so comparisons cannot drift within a
// run even if the file changes on disk.
type Store struct {
	fsys  fs.FS
	cache map[string][]byte
	lock  sync.Mutex
}

// NewStore returns a Store that reads from fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{fsys: fsys, cache: make(map[string][]byte)}
}

// DefaultStore returns a Store for the fixtures that are built into the program.
func DefaultStore() *Store {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // the embed pattern guarantees that the directory exists
	}
	return NewStore(sub)
}

// NewDirStore returns a Store that reads fixtures from a directory on disk.
func NewDirStore(dir string) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("fixture directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fixture directory %s is not a directory", dir)
	}
	return NewStore(os.DirFS(dir)), nil
}

// Load returns the raw content of a fixture. The name may omit the ".json" extension.
func (s *Store) Load(name string) ([]byte, error) {
	fileName := name
	if path.Ext(fileName) == "" {
		fileName += ".json"
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if data, ok := s.cache[fileName]; ok {
		return append([]byte(nil), data...), nil
	}
	data, err := fs.ReadFile(s.fsys, fileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFixtureNotFound, fileName)
		}
		return nil, fmt.Errorf("error reading fixture %s: %w", fileName, err)
	}
	s.cache[fileName] = data
	return append([]byte(nil), data...), nil
}

// LoadJSON returns a fixture as a parsed JSON document.
func (s *Store) LoadJSON(name string) (ldvalue.Value, error) {
	data, err := s.Load(name)
	if err != nil {
		return ldvalue.Null(), err
	}
	var value ldvalue.Value
	if err := jsonAPI.Unmarshal(data, &value); err != nil {
		return ldvalue.Null(), fmt.Errorf("fixture %s is not valid JSON: %w", name, err)
	}
	return value, nil
}

// Decode reads a fixture into v using the given codec.
func (s *Store) Decode(name string, codec *Codec, v interface{}) error {
	data, err := s.Load(name)
	if err != nil {
		return err
	}
	if err := codec.Unmarshal(data, v); err != nil {
		return fmt.Errorf("fixture %s: %w", name, err)
	}
	return nil
}
