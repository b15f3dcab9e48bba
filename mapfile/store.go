package mapfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/game/types"
)

// ErrInvalidName is returned for map names that would escape the maps
// directory.
var ErrInvalidName = errors.New("invalid map name")

// Store loads and saves maps by name inside one directory.
type Store struct {
	dir string
	log zerolog.Logger
}

// NewStore returns a store rooted at dir.
func NewStore(dir string, log zerolog.Logger) *Store {
	return &Store{dir: dir, log: log.With().Str("component", "maps").Logger()}
}

// Dir returns the maps directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path joins name to the maps directory. Names containing path separators
// or parent references are rejected.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", errors.Wrapf(ErrInvalidName, "%q", name)
	}
	return filepath.Join(s.dir, name), nil
}

// Load decodes the named map. A missing file yields an error matching
// fs.ErrNotExist; a short file yields ErrTruncatedMap.
func (s *Store) Load(name string) (*Layout, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open map %q", name)
	}
	defer f.Close()

	l, res, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode map %q", name)
	}
	if res.SpawnMarkers > 1 {
		spawn, _ := l.Spawn()
		s.log.Warn().Str("map", name).Int("markers", res.SpawnMarkers).
			Int("x", spawn.X).Int("y", spawn.Y).Msg("multiple spawn markers, keeping the last")
	}
	if res.Unknown > 0 {
		s.log.Debug().Str("map", name).Int("chars", res.Unknown).Msg("unknown tile characters read as empty")
	}
	s.log.Info().Str("map", name).Msg("map loaded")
	return l, nil
}

// LoadPlayable loads the named map and requires a spawn tile.
func (s *Store) LoadPlayable(name string) (*Layout, error) {
	l, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	if _, ok := l.Spawn(); !ok {
		return nil, errors.Wrapf(ErrMissingSpawn, "map %q", name)
	}
	return l, nil
}

// Save encodes l under name. The file is written to a temporary name and
// renamed into place so a failed write never leaves a partial map behind.
func (s *Store) Save(name string, l *Layout) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(err, "create maps directory")
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return errors.Wrapf(err, "create map %q", name)
	}
	if err := Encode(tmp, l); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "save map %q", name)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "save map %q", name)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "save map %q", name)
	}
	s.log.Info().Str("map", name).Msg("map saved")
	return nil
}

// EnsureStarter saves an open map with a centred spawn under name unless
// that file already exists. It reports whether the map was created.
func (s *Store) EnsureStarter(name string) (bool, error) {
	path, err := s.Path(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return false, errors.Wrapf(err, "stat map %q", name)
	}
	l := NewLayout()
	l.Set(types.Point{X: types.GridWidth / 2, Y: types.GridHeight / 2}, Spawn)
	if err := s.Save(name, l); err != nil {
		return false, err
	}
	return true, nil
}

// List returns the names of the regular files in the maps directory.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(err, "list maps")
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
