// Package launch opens the presentation backend for both binaries.
package launch

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"serpens/config"
	"serpens/ui"
	"serpens/ui/terminal"
	"serpens/ui/window"
)

// Backend opens the presentation backend named in cfg.
func Backend(cfg config.Config, title string, log zerolog.Logger) (ui.Backend, error) {
	switch cfg.Backend {
	case config.BackendTerminal:
		t, err := terminal.Open(log)
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.BackendRaylib:
		w, err := window.Open(window.Options{
			Title:        title,
			CellSize:     cfg.CellSize,
			StatusHeight: cfg.StatusHeight,
			SoundDir:     cfg.SoundDir,
			Music:        cfg.Music,
		}, log)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
	return nil, errors.Errorf("unknown backend %q", cfg.Backend)
}
