package panel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// LoadFile reads parameter values from a JSON or TOML (.toml) file:
//
//	materialColor = "#E94560"
//	particleMaterialColor = "#0F3460"
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("panel: read %s: %w", path, err)
	}

	values := make(map[string]string)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &values)
	} else {
		err = json.Unmarshal(data, &values)
	}
	if err != nil {
		return nil, fmt.Errorf("panel: parse %s: %w", path, err)
	}
	return values, nil
}

// submitFile queues every registered parameter found in the file.
func (p *Panel) submitFile(path string) error {
	values, err := LoadFile(path)
	if err != nil {
		return err
	}
	for _, cp := range p.params {
		if hex, ok := values[cp.name]; ok {
			p.Submit(cp.name, hex)
		}
	}
	return nil
}

// Watch loads path once, then resubmits its values every time the file is
// written or replaced, until ctx is done. The directory is watched rather
// than the file so editors that save via rename are picked up.
// Registered parameters must not change while Watch runs.
func (p *Panel) Watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("panel: watch %s: %w", path, err)
	}
	if err := p.submitFile(abs); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("panel: watch %s: %w", path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("panel: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := p.submitFile(abs); err != nil {
				// Editors often truncate before writing; the next event reloads.
				p.log.Debug("parameter file reload failed", "path", abs, "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.log.Warn("parameter watcher error", "err", err)
		}
	}
}
