package cloudpath

import "testing"

// TestParseRoot tests that a remote with no relative path parses to the
// root form with zero segments.
func TestParseRoot(t *testing.T) {
	p, err := Parse("gdrive:")
	if err != nil {
		t.Fatalf("unable to parse: %s", err)
	}
	if p.Remote != "gdrive" || !p.IsRoot() {
		t.Errorf("expected root path for gdrive, got %+v", p)
	}
	if got := p.String(); got != "gdrive:" {
		t.Errorf("expected 'gdrive:', got %q", got)
	}
}

// TestParseNestedPath tests that a multi-segment relative path parses into
// ordered segments and round-trips through String.
func TestParseNestedPath(t *testing.T) {
	p, err := Parse("onedrive-1:Documents/Reports/2026")
	if err != nil {
		t.Fatalf("unable to parse: %s", err)
	}
	want := []string{"Documents", "Reports", "2026"}
	if len(p.Segments) != len(want) {
		t.Fatalf("expected %d segments, got %d", len(want), len(p.Segments))
	}
	for i, seg := range want {
		if p.Segments[i] != seg {
			t.Errorf("segment %d: expected %q, got %q", i, seg, p.Segments[i])
		}
	}
	if got := p.String(); got != "onedrive-1:Documents/Reports/2026" {
		t.Errorf("round-trip mismatch: %q", got)
	}
}

// TestParseRejectsMissingSeparator tests that a string without ':' is
// rejected.
func TestParseRejectsMissingSeparator(t *testing.T) {
	if _, err := Parse("no-separator-here"); err == nil {
		t.Fatal("expected error for missing separator")
	}
}

// TestParseRejectsInvalidRemoteName tests that a remote name with an
// invalid character (here a space) is rejected.
func TestParseRejectsInvalidRemoteName(t *testing.T) {
	if _, err := Parse("bad remote:path"); err == nil {
		t.Fatal("expected error for invalid remote name")
	}
}

// TestChildValidatesComponent tests that Child rejects a component
// containing a path separator and accepts a valid one.
func TestChildValidatesComponent(t *testing.T) {
	root, _ := Parse("gdrive:")

	if _, err := root.Child("a/b"); err == nil {
		t.Fatal("expected error for component containing '/'")
	}

	child, err := root.Child("Documents")
	if err != nil {
		t.Fatalf("unable to create child: %s", err)
	}
	if child.String() != "gdrive:Documents" {
		t.Errorf("unexpected child path: %s", child.String())
	}
}

// TestParentOfRootFails tests that Parent reports false for the root path.
func TestParentOfRootFails(t *testing.T) {
	root, _ := Parse("gdrive:")
	if _, ok := root.Parent(); ok {
		t.Error("expected Parent to fail for root path")
	}
}

// TestParentAndName tests that Name returns the last segment and Parent
// drops it.
func TestParentAndName(t *testing.T) {
	p, _ := Parse("gdrive:a/b/c")
	if p.Name() != "c" {
		t.Errorf("expected name 'c', got %q", p.Name())
	}
	parent, ok := p.Parent()
	if !ok {
		t.Fatal("expected Parent to succeed")
	}
	if parent.String() != "gdrive:a/b" {
		t.Errorf("expected parent 'gdrive:a/b', got %q", parent.String())
	}
}
