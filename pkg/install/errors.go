package install

import (
	"fmt"
	"strings"
)

// MissingFilesError lists every overlay path absent from the install
// tree and not whitelisted.
type MissingFilesError struct {
	Root  string
	Paths []string
}

func (e *MissingFilesError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"%d file(s) missing from %s:", len(e.Paths), e.Root,
	)
	for _, p := range e.Paths {
		fmt.Fprintf(&b, "\n  %s", p)
	}
	return b.String()
}

// StructuralMismatchError means the files to remove and the manifest
// to rewrite disagree on how many directories the subtree has.
type StructuralMismatchError struct {
	NeedsRemove int
	Canonical   int
}

func (e *StructuralMismatchError) Error() string {
	return fmt.Sprintf(
		"needs remove dir count [%d] not equal to manifest dir count [%d]",
		e.NeedsRemove, e.Canonical,
	)
}
