package config

import "sync"

// View is one of the UI's listing layouts, persisted as the user's
// preferred default.
type View string

const (
	ViewList View = "list"
	ViewGrid View = "grid"
)

// Settings is the persisted set of user preferences backed by the TOML
// settings file. Field names mirror the original Rust settings store's
// keys (columnWidths, showHidden, hiddenFilesLast, foldersFirst,
// defaultView, startDir, rclonePath) but collapse what was there a
// duplicated store/load pair for defaultView into a single field.
type Settings struct {
	ColumnWidths    []float64 `toml:"column_widths"`
	ShowHidden      bool      `toml:"show_hidden"`
	HiddenFilesLast bool      `toml:"hidden_files_last"`
	FoldersFirst    bool      `toml:"folders_first"`
	DefaultView     View      `toml:"default_view"`
	StartDir        string    `toml:"start_dir"`
	RclonePath      string    `toml:"rclone_path"`
}

// Reader is the minimal key/value settings contract the rest of the
// module depends on: the configured rclone binary path, plus read/write
// access to the full Settings record. pkg/rclone and pkg/engine only
// need RclonePath; cmd/browsey and any future settings UI need the rest.
type Reader interface {
	// RclonePath returns the configured rclone binary path, or "" if
	// unset (callers fall back to resolving "rclone" on PATH).
	RclonePath() string

	// Settings returns a copy of the full persisted settings record.
	Settings() Settings

	// SetSettings persists a full replacement of the settings record.
	SetSettings(Settings) error

	// DefaultView returns the user's persisted default listing view.
	DefaultView() View

	// SetDefaultView persists the user's default listing view.
	SetDefaultView(View) error
}

// Static is an in-memory Reader, for callers (tests, and any command
// path that hasn't resolved a real settings file) that only need an
// already-known configuration rather than one backed by disk.
type Static struct {
	mu       sync.RWMutex
	settings Settings
}

// NewStatic returns a Static reader seeded with settings.
func NewStatic(settings Settings) *Static {
	return &Static{settings: settings}
}

func (s *Static) RclonePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.RclonePath
}

func (s *Static) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Static) SetSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

func (s *Static) DefaultView() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.DefaultView
}

func (s *Static) SetDefaultView(view View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.DefaultView = view
	return nil
}
