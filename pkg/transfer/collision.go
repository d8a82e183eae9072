package transfer

// CollisionPolicy selects how a transfer handles a destination path that
// already exists.
type CollisionPolicy int

const (
	// Skip leaves the existing destination untouched and performs no
	// filesystem operation for that entry.
	Skip CollisionPolicy = iota
	// Overwrite stages the existing destination to backup (a Deleted
	// journal entry) and then writes over it.
	Overwrite
	// RenameSuffix picks the lowest -1, -2, ... suffix that doesn't exist
	// and writes there instead.
	RenameSuffix
	// MergeForDirs recurses into a directory collision instead of treating
	// it as a file-level conflict; meaningless for a file-type collision.
	MergeForDirs
)

// Mode selects whether a paste operation copies or cuts (moves) its
// sources.
type Mode int

const (
	Copy Mode = iota
	Cut
)
