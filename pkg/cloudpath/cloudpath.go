// Package cloudpath implements the cloud path model: parsing, validating,
// and deriving the "remote:rel/path" strings rclone addresses.
package cloudpath

import (
	"fmt"
	"strings"
)

// ErrorCode classifies cloud path validation failures.
type ErrorCode string

const (
	ErrorCodeInvalidPath ErrorCode = "invalid_path"
)

// Error is the typed error returned by cloud path operations.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string     { return e.Message }
func (e *Error) ErrorCode() string { return string(e.Code) }

func newError(format string, args ...interface{}) *Error {
	return &Error{Code: ErrorCodeInvalidPath, Message: fmt.Sprintf(format, args...)}
}

// Path is a parsed "remote:a/b/c" address: a remote name and the ordered
// path components beneath its root.
type Path struct {
	Remote   string
	Segments []string
}

// Parse parses a "remote:rel/path" string. The remote must be non-empty and
// ASCII alphanumeric/underscore/hyphen; segments must contain no "/" or nul
// byte (both are structurally excluded by splitting on "/", except nul,
// which is checked explicitly). The root form ("remote:") has zero
// segments.
func Parse(raw string) (Path, error) {
	colon := strings.IndexByte(raw, ':')
	if colon < 0 {
		return Path{}, newError("cloud path missing ':' separator: %s", raw)
	}

	remote := raw[:colon]
	if !isValidRemoteName(remote) {
		return Path{}, newError("invalid remote name: %s", remote)
	}

	rel := raw[colon+1:]
	if strings.ContainsRune(rel, 0) {
		return Path{}, newError("cloud path contains a nul byte: %s", raw)
	}

	var segments []string
	if rel != "" {
		for _, segment := range strings.Split(rel, "/") {
			if segment == "" {
				continue
			}
			segments = append(segments, segment)
		}
	}

	return Path{Remote: remote, Segments: segments}, nil
}

// String serializes a Path back to its "remote:a/b/c" wire form.
func (p Path) String() string {
	return p.Remote + ":" + strings.Join(p.Segments, "/")
}

// IsRoot reports whether p refers to the remote's root.
func (p Path) IsRoot() bool {
	return len(p.Segments) == 0
}

// Child validates name as a single path component (non-empty, no "/", no
// nul byte) and returns a new Path with it appended.
func (p Path) Child(name string) (Path, error) {
	if name == "" {
		return Path{}, newError("child path component must not be empty")
	}
	if strings.ContainsRune(name, '/') {
		return Path{}, newError("child path component must not contain '/': %s", name)
	}
	if strings.ContainsRune(name, 0) {
		return Path{}, newError("child path component must not contain a nul byte: %s", name)
	}

	segments := make([]string, len(p.Segments), len(p.Segments)+1)
	copy(segments, p.Segments)
	segments = append(segments, name)
	return Path{Remote: p.Remote, Segments: segments}, nil
}

// Parent returns p's parent path and true, or the zero Path and false if p
// is already the remote's root.
func (p Path) Parent() (Path, bool) {
	if p.IsRoot() {
		return Path{}, false
	}
	segments := make([]string, len(p.Segments)-1)
	copy(segments, p.Segments[:len(p.Segments)-1])
	return Path{Remote: p.Remote, Segments: segments}, true
}

// Name returns the final path component, or "" for the root.
func (p Path) Name() string {
	if p.IsRoot() {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

func isValidRemoteName(remote string) bool {
	if remote == "" {
		return false
	}
	for _, r := range remote {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
