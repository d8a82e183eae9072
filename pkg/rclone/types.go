package rclone

// EntryKind distinguishes a directory entry from a regular file. rclone's
// lsjson payload carries this as an IsDir boolean; the broker translates it
// into this enum at the parsing boundary so downstream code never touches
// the wire shape directly.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDir
)

// Capabilities describes what operations a remote or entry supports. Every
// entry produced by this broker reports the core v1 capability set; rclone
// doesn't expose per-entry capability negotiation, so there is currently
// only one value in practice; the field exists so a future provider can
// report a narrower set without an API break.
type Capabilities struct {
	Read   bool
	Write  bool
	Delete bool
}

// CoreReadWrite is the capability set every rclone-backed remote currently
// reports.
func CoreReadWrite() Capabilities {
	return Capabilities{Read: true, Write: true, Delete: true}
}

// Entry is a single directory entry or stat result.
type Entry struct {
	Name         string
	Path         string
	Kind         EntryKind
	Size         *int64
	Modified     string
	Capabilities Capabilities
}

// Remote describes one configured rclone remote.
type Remote struct {
	ID           string
	Label        string
	Provider     string
	RootPath     string
	Capabilities Capabilities
}
