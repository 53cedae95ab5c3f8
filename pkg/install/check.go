package install

import (
	"log/slog"
	"time"

	"github.com/tqbf/langswap/pkg/manifest"
)

// Check verifies that every entry of view exists under the install
// root or is whitelisted. All missing paths are reported together.
func (e *Engine) Check(view manifest.View) error {
	start := time.Now()
	slog.Info("checking install tree",
		"root", e.cfg.InstallRoot,
		"count", view.Len(),
	)

	var missing []string
	for _, entry := range view.Entries {
		if entry.Rel == "" {
			continue
		}
		if e.present(entry.Rel) ||
			e.cfg.Whitelist.Contains(entry.Rel) {
			continue
		}
		missing = append(missing, entry.Rel)
	}
	if len(missing) > 0 {
		return &MissingFilesError{
			Root:  e.cfg.InstallRoot,
			Paths: missing,
		}
	}

	logDone("checked install tree", start)
	return nil
}

func (e *Engine) present(rel string) bool {
	target, err := e.target(rel)
	if err != nil {
		return false
	}
	_, err = e.fs.Stat(target)
	return err == nil
}
