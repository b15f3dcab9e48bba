// Package config loads the TOML settings shared by the game and the map
// editor. Command-line flags override values from the file.
package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/game"
)

// DefaultPath is the configuration file used when -config is not given.
const DefaultPath = "serpens.toml"

// Backends.
const (
	BackendRaylib   = "raylib"
	BackendTerminal = "terminal"
)

// Config holds every tunable of both programs.
type Config struct {
	MapsDir    string `toml:"maps_dir"`
	DefaultMap string `toml:"default_map"`
	DataDir    string `toml:"data_dir"`

	Backend      string `toml:"backend"`
	CellSize     int    `toml:"cell_size"`
	StatusHeight int    `toml:"status_height"`

	StartSpeed    int     `toml:"start_speed"`
	SpeedFloor    int     `toml:"speed_floor"`
	InitialExtend int     `toml:"initial_extend"`
	BonusCeiling  int     `toml:"bonus_ceiling"`
	BonusFloor    int     `toml:"bonus_floor"`
	SpecialChance float64 `toml:"special_chance"`
	FoodScore     int     `toml:"food_score"`

	SoundDir string `toml:"sound_dir"`
	Music    string `toml:"music"`

	LogLevel string `toml:"log_level"`
	// Seed of 0 means seed from the clock.
	Seed uint64 `toml:"seed"`
}

// Default returns the built-in configuration.
func Default() Config {
	s := game.DefaultSettings()
	return Config{
		MapsDir:       "maps",
		DefaultMap:    "default.txt",
		DataDir:       "data",
		Backend:       BackendRaylib,
		CellSize:      20,
		StatusHeight:  40,
		StartSpeed:    s.StartSpeed,
		SpeedFloor:    s.SpeedFloor,
		InitialExtend: s.InitialExtend,
		BonusCeiling:  s.BonusCeiling,
		BonusFloor:    s.BonusFloor,
		SpecialChance: s.SpecialChance,
		FoodScore:     s.FoodScore,
		SoundDir:      ".",
		LogLevel:      "info",
	}
}

// Load reads path over the defaults. A missing file is created with the
// defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, Save(path, cfg)
	}
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create config directory")
		}
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch {
	case c.MapsDir == "":
		return errors.New("maps_dir is empty")
	case c.StartSpeed <= 0 || c.SpeedFloor <= 0:
		return errors.Errorf("speeds must be positive, got start %d floor %d", c.StartSpeed, c.SpeedFloor)
	case c.SpeedFloor > c.StartSpeed:
		return errors.Errorf("speed_floor %d above start_speed %d", c.SpeedFloor, c.StartSpeed)
	case c.InitialExtend < 0:
		return errors.Errorf("initial_extend %d is negative", c.InitialExtend)
	case c.BonusFloor < 0 || c.BonusFloor > c.BonusCeiling:
		return errors.Errorf("bonus_floor %d outside [0, %d]", c.BonusFloor, c.BonusCeiling)
	case c.SpecialChance < 0 || c.SpecialChance > 1:
		return errors.Errorf("special_chance %v outside [0, 1]", c.SpecialChance)
	case c.CellSize <= 0 || c.StatusHeight < 0:
		return errors.Errorf("bad cell_size %d or status_height %d", c.CellSize, c.StatusHeight)
	case c.Backend != BackendRaylib && c.Backend != BackendTerminal:
		return errors.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}

// Settings returns the game rules part of the configuration.
func (c Config) Settings() game.Settings {
	return game.Settings{
		StartSpeed:    c.StartSpeed,
		SpeedFloor:    c.SpeedFloor,
		InitialExtend: c.InitialExtend,
		BonusCeiling:  c.BonusCeiling,
		BonusFloor:    c.BonusFloor,
		FoodScore:     c.FoodScore,
		SpecialChance: c.SpecialChance,
	}
}

// Level returns the parsed log level, info if it does not parse.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Parse parses args with fs, loads the file named by -config and applies
// the flags that were given on top of it.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	path := fs.String("config", DefaultPath, "configuration file, created if missing")
	maps := fs.String("maps", "", "maps directory")
	mapName := fs.String("map", "", "map played from the menu")
	backend := fs.String("backend", "", "raylib or terminal")
	speed := fs.Int("speed", 0, "starting speed in moves per second")
	seed := fs.Uint64("seed", 0, "random seed, 0 for clock based")
	level := fs.String("log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg, err := Load(*path)
	if err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "maps":
			cfg.MapsDir = *maps
		case "map":
			cfg.DefaultMap = *mapName
		case "backend":
			cfg.Backend = *backend
		case "speed":
			cfg.StartSpeed = *speed
		case "seed":
			cfg.Seed = *seed
		case "log-level":
			cfg.LogLevel = *level
		}
	})
	return cfg, cfg.Validate()
}

// Logger builds the program logger at the configured level. The terminal
// backend owns the screen, so its log goes to a file in the data directory
// instead of stderr. The returned closer releases that file.
func (c Config) Logger(program string) (zerolog.Logger, io.Closer, error) {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	var closer io.Closer = nopCloser{}
	if c.Backend == BackendTerminal {
		if err := os.MkdirAll(c.DataDir, 0o755); err != nil {
			return zerolog.Nop(), closer, errors.Wrap(err, "create data directory")
		}
		path := filepath.Join(c.DataDir, program+".log")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), closer, errors.Wrap(err, "open log file")
		}
		out = zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.RFC3339}
		closer = f
	}
	log := zerolog.New(out).Level(c.Level()).With().Timestamp().Str("program", program).Logger()
	return log, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
