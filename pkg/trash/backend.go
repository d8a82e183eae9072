package trash

// nativeBackend is the OS-native trash (XDG Trash on Linux/macOS, Recycle
// Bin on Windows — see native_windows.go for why the latter isn't wired).
// MoveToTrash returning a non-nil error is the coordinator's signal to fall
// back to staging; Restore/Purge/List operate only on items this backend
// itself produced (identified by Item.Fallback == false).
type nativeBackend interface {
	MoveToTrash(path string) (Item, error)
	List() ([]Item, error)
	Restore(item Item) error
	Purge(item Item) error
}
