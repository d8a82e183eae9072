package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/browsey/browsey/pkg/fspath"
	"github.com/browsey/browsey/pkg/logging"
)

// TOMLReader is a Reader backed by a settings.toml file on disk. Writes
// are applied atomically (via fspath.WriteFileAtomic) so a crash mid-save
// never leaves behind a truncated settings file.
type TOMLReader struct {
	mu     sync.RWMutex
	path   string
	logger *logging.Logger

	settings Settings
}

// LoadTOMLReader reads path into a TOMLReader. A missing file is not an
// error: the reader starts with zero-value Settings, matching the
// original store's "all preferences optional, absent means unset"
// behavior.
func LoadTOMLReader(path string, logger *logging.Logger) (*TOMLReader, error) {
	r := &TOMLReader{path: path, logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, newError(ErrorCodeIO, "unable to read settings file %s: %s", path, err.Error())
	}

	var settings Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, newError(ErrorCodeMalformed, "unable to parse settings file %s: %s", path, err.Error())
	}
	r.settings = settings
	return r, nil
}

func (r *TOMLReader) RclonePath() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings.RclonePath
}

func (r *TOMLReader) Settings() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

func (r *TOMLReader) SetSettings(settings Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.save(settings); err != nil {
		return err
	}
	r.settings = settings
	return nil
}

func (r *TOMLReader) DefaultView() View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings.DefaultView
}

func (r *TOMLReader) SetDefaultView(view View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.settings
	next.DefaultView = view
	if err := r.save(next); err != nil {
		return err
	}
	r.settings = next
	return nil
}

// save must be called with r.mu held.
func (r *TOMLReader) save(settings Settings) error {
	encoded, err := toml.Marshal(settings)
	if err != nil {
		return newError(ErrorCodeMalformed, "unable to encode settings: %s", err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0700); err != nil {
		return newError(ErrorCodeIO, "unable to create settings directory for %s: %s", r.path, err.Error())
	}

	if err := fspath.WriteFileAtomic(r.path, encoded, 0600, r.logger); err != nil {
		return newError(ErrorCodeIO, "unable to write settings file %s: %s", r.path, err.Error())
	}
	return nil
}
