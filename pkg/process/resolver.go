package process

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// wellKnownDirectories lists the platform-specific directories probed, in
// order, before falling back to the OS PATH. Windows has no well-known list:
// PATH search is the only mechanism.
var wellKnownDirectories = map[string][]string{
	"linux": {
		"/usr/bin",
		"/bin",
		"/usr/local/bin",
		"/snap/bin",
		"/run/current-system/sw/bin",
		"/var/lib/flatpak/exports/bin",
		"/app/bin",
	},
	"darwin": {
		"/usr/bin",
		"/bin",
		"/usr/local/bin",
		"/opt/homebrew/bin",
	},
}

// windowsExecutableSuffixes lists the suffixes accepted, in addition to
// ExecutableName's own ".exe", when matching candidates on Windows.
var windowsExecutableSuffixes = []string{".exe", ".cmd", ".bat", ".com"}

// Resolver locates trusted executables by name, guarding against PATH
// shadowing by a differently-named or non-executable binary.
type Resolver struct {
	// goos overrides runtime.GOOS, used only for testing cross-platform
	// behavior on a single host.
	goos string
}

// NewResolver creates a Resolver for the current operating system.
func NewResolver() *Resolver {
	return &Resolver{goos: runtime.GOOS}
}

// Resolve searches the platform's well-known directories, then the OS PATH,
// for an executable matching name. It returns ("", false) if name is empty
// or all whitespace, or if no match is found.
func (r *Resolver) Resolve(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}

	for _, dir := range wellKnownDirectories[r.goos] {
		if path, ok := r.findInDirectory(dir, trimmed); ok {
			return path, true
		}
	}

	if path, err := lookPath(trimmed); err == nil {
		if resolved, ok := r.ResolveExplicit(path); ok {
			return resolved, true
		}
	}

	return "", false
}

// ResolveExplicit validates an explicit path supplied by the caller (e.g.
// from configuration), requiring it to canonicalize to a regular,
// executable file. It returns ("", false) if the path doesn't qualify.
func (r *Resolver) ResolveExplicit(path string) (string, bool) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", false
	}

	canonical, err := filepath.EvalSymlinks(trimmed)
	if err != nil {
		return "", false
	}

	info, err := os.Stat(canonical)
	if err != nil || info.IsDir() || !info.Mode().IsRegular() {
		return "", false
	}

	if !r.isExecutable(canonical, info) {
		return "", false
	}

	return canonical, true
}

// findInDirectory looks for a case-insensitive filename match for name within
// dir, accepting only entries that canonicalize to a regular, executable
// file.
func (r *Resolver) findInDirectory(dir, name string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	candidates := r.candidateNames(name)

	for _, entry := range entries {
		entryName := entry.Name()
		for _, candidate := range candidates {
			if !strings.EqualFold(entryName, candidate) {
				continue
			}
			full := filepath.Join(dir, entryName)
			if resolved, ok := r.ResolveExplicit(full); ok {
				return resolved, true
			}
		}
	}

	return "", false
}

// candidateNames returns the acceptable on-disk filenames for a logical
// binary name, accounting for Windows' extra executable suffixes.
func (r *Resolver) candidateNames(name string) []string {
	if r.goos != "windows" {
		return []string{ExecutableName(name, r.goos)}
	}

	candidates := make([]string, 0, len(windowsExecutableSuffixes)+1)
	candidates = append(candidates, ExecutableName(name, r.goos))
	for _, suffix := range windowsExecutableSuffixes {
		if suffix == ".exe" {
			continue
		}
		candidates = append(candidates, name+suffix)
	}
	return candidates
}

// isExecutable reports whether info's permission bits grant execute access
// on POSIX. On Windows, any regular file matching an accepted suffix is
// considered executable (Windows has no execute permission bit).
func (r *Resolver) isExecutable(path string, info os.FileInfo) bool {
	if r.goos == "windows" {
		lower := strings.ToLower(path)
		for _, suffix := range windowsExecutableSuffixes {
			if strings.HasSuffix(lower, suffix) {
				return true
			}
		}
		return false
	}
	return info.Mode().Perm()&0111 != 0
}
