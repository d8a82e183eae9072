package process

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestResolveEmptyName tests that Resolve rejects empty and whitespace-only
// names without touching the filesystem.
func TestResolveEmptyName(t *testing.T) {
	r := NewResolver()
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, ok := r.Resolve(name); ok {
			t.Errorf("Resolve(%q) unexpectedly succeeded", name)
		}
	}
}

// TestResolveExplicitRejectsDirectory tests that ResolveExplicit refuses to
// resolve a directory, even an executable-looking one.
func TestResolveExplicitRejectsDirectory(t *testing.T) {
	r := NewResolver()
	if _, ok := r.ResolveExplicit(t.TempDir()); ok {
		t.Error("ResolveExplicit unexpectedly accepted a directory")
	}
}

// TestResolveExplicitRequiresExecuteBit tests that on POSIX, a regular file
// lacking any execute bit is rejected.
func TestResolveExplicitRequiresExecuteBit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute-bit semantics don't apply on Windows")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "not-executable")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatalf("unable to write test file: %s", err)
	}

	if _, ok := (&Resolver{goos: "linux"}).ResolveExplicit(path); ok {
		t.Error("ResolveExplicit unexpectedly accepted a non-executable file")
	}
}

// TestResolveExplicitAcceptsExecutable tests that a regular file with an
// execute bit set resolves successfully on POSIX.
func TestResolveExplicitAcceptsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute-bit semantics don't apply on Windows")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "tool")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("unable to write test file: %s", err)
	}

	resolved, ok := (&Resolver{goos: "linux"}).ResolveExplicit(path)
	if !ok {
		t.Fatal("ResolveExplicit unexpectedly rejected an executable file")
	}
	if resolved == "" {
		t.Error("ResolveExplicit returned an empty path on success")
	}
}

// TestFindInDirectoryCaseInsensitive tests that a differently-cased filename
// in a well-known directory is still matched.
func TestFindInDirectoryCaseInsensitive(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("execute-bit semantics don't apply on Windows")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "RClone")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("unable to write test file: %s", err)
	}

	r := &Resolver{goos: "linux"}
	resolved, ok := r.findInDirectory(dir, "rclone")
	if !ok {
		t.Fatal("findInDirectory failed to match case-insensitively")
	}
	if filepath.Base(resolved) != "RClone" {
		t.Errorf("resolved to unexpected file: %s", resolved)
	}
}

// TestCandidateNamesWindows tests that Windows candidate names include the
// accepted executable suffixes.
func TestCandidateNamesWindows(t *testing.T) {
	r := &Resolver{goos: "windows"}
	candidates := r.candidateNames("rclone")

	expected := map[string]bool{
		"rclone.exe": false,
		"rclone.cmd": false,
		"rclone.bat": false,
		"rclone.com": false,
	}
	for _, c := range candidates {
		if _, ok := expected[c]; ok {
			expected[c] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected candidate %q not produced", name)
		}
	}
}
