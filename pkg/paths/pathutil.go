package paths

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

func ValidateRelPath(p string) error {
	if p == "" {
		return fmt.Errorf("empty path")
	}
	if strings.ContainsRune(p, 0) {
		return fmt.Errorf("path contains null byte")
	}
	if path.IsAbs(p) || strings.HasPrefix(p, `\`) ||
		filepath.VolumeName(p) != "" {
		return fmt.Errorf("absolute path not allowed: %s", p)
	}
	cleaned := path.Clean(strings.ReplaceAll(p, `\`, "/"))
	if cleaned == "." {
		return fmt.Errorf("path resolves to current directory")
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf(
			"path escapes base directory: %s", p,
		)
	}
	return nil
}

// CleanRelPath normalizes an archive name: forward slashes, no
// leading "./", no trailing slash.
func CleanRelPath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	return p
}

// StripPrefix removes root from p component-wise. It reports false
// when p is not root and does not live under it. The remainder is
// empty when p is root itself.
func StripPrefix(p, root string) (string, bool) {
	root = strings.Trim(root, "/")
	if root == "" || root == "." {
		return p, true
	}
	if p == root {
		return "", true
	}
	rest, ok := strings.CutPrefix(p, root+"/")
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(rest, "/"), true
}

// Join maps a slash-separated relative path under dir.
func Join(dir, rel string) (string, error) {
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if !IsWithinDir(dir, full) {
		return "", fmt.Errorf("path escapes dir: %s", rel)
	}
	return full, nil
}

func IsWithinDir(dir, full string) bool {
	rel, err := filepath.Rel(dir, full)
	if err != nil {
		return false
	}
	return rel != ".." &&
		!strings.HasPrefix(rel, "../") &&
		!filepath.IsAbs(rel)
}
