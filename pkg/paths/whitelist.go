package paths

import (
	"strings"
)

// Whitelist holds relative paths that may be missing from an
// install tree. Matching is exact and case-sensitive.
type Whitelist struct {
	entries map[string]struct{}
}

func NewWhitelist(entries []string) *Whitelist {
	w := &Whitelist{entries: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if e == "" {
			continue
		}
		w.entries[e] = struct{}{}
	}
	return w
}

// ParseWhitelist reads one path per line.
func ParseWhitelist(text string) *Whitelist {
	var entries []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		entries = append(entries, line)
	}
	return NewWhitelist(entries)
}

func (w *Whitelist) Contains(relPath string) bool {
	if w == nil {
		return false
	}
	_, ok := w.entries[relPath]
	return ok
}

func (w *Whitelist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.entries)
}
