package transfer

import (
	"path/filepath"
	"strconv"
	"strings"
)

// RenameCandidate computes the nth collision-avoidance candidate name for
// base, without touching the filesystem: candidate 0 is base itself,
// candidate n>0 inserts "-n" before the extension. It is a pure function of
// (base, n) — the same inputs always produce the same output, and no
// filesystem probe backs it, since the actual claim on the name happens at
// O_CREAT|O_EXCL write time, not here.
func RenameCandidate(base string, n int) string {
	if n == 0 {
		return base
	}

	dir := filepath.Dir(base)
	name := filepath.Base(base)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidateName := stem + "-" + strconv.Itoa(n) + ext
	if dir == "." {
		return candidateName
	}
	return filepath.Join(dir, candidateName)
}
