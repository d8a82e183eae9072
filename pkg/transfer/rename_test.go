package transfer

import "testing"

func TestRenameCandidateDeterministic(t *testing.T) {
	base := "/x/report.pdf"
	cases := []struct {
		n    int
		want string
	}{
		{0, "/x/report.pdf"},
		{1, "/x/report-1.pdf"},
		{2, "/x/report-2.pdf"},
	}
	for _, c := range cases {
		if got := RenameCandidate(base, c.n); got != c.want {
			t.Errorf("RenameCandidate(%q, %d) = %q, want %q", base, c.n, got, c.want)
		}
	}
}

func TestRenameCandidateRepeatableWithoutFilesystem(t *testing.T) {
	first := RenameCandidate("/a/b/name.tar.gz", 3)
	second := RenameCandidate("/a/b/name.tar.gz", 3)
	if first != second {
		t.Errorf("expected repeated calls to be identical, got %q and %q", first, second)
	}
}

func TestRenameCandidateNoExtension(t *testing.T) {
	if got := RenameCandidate("/a/README", 1); got != "/a/README-1" {
		t.Errorf("expected /a/README-1, got %q", got)
	}
}
