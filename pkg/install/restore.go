package install

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tqbf/langswap/pkg/manifest"
)

// Restore deletes the files listed by needsRemove and then rewrites
// every item of canonical. It refuses to start when the two disagree
// on the number of directories.
func (e *Engine) Restore(
	needsRemove manifest.View,
	canonical *manifest.Manifest,
) error {
	start := time.Now()
	slog.Info("restoring original files",
		"root", e.cfg.InstallRoot,
	)

	removeDirs := needsRemove.DirCount()
	canonicalDirs := canonical.DirCount()
	if removeDirs != canonicalDirs {
		return &StructuralMismatchError{
			NeedsRemove: removeDirs,
			Canonical:   canonicalDirs,
		}
	}

	if err := e.removeFiles(needsRemove); err != nil {
		return err
	}
	if err := e.rewrite(canonical); err != nil {
		return err
	}

	logDone("restored original files", start)
	return nil
}

func (e *Engine) removeFiles(view manifest.View) error {
	p := e.batch().WithFirstError()
	for _, entry := range view.Entries {
		if !view.Item(entry).IsFile {
			continue
		}
		p.Go(func() error {
			target, err := e.target(entry.Rel)
			if err != nil {
				return err
			}
			info, err := e.fs.Stat(target)
			if err != nil || !info.Mode().IsRegular() {
				return nil
			}
			if err := e.fs.Remove(target); err != nil {
				return fmt.Errorf("remove %s: %w", entry.Rel, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}
	slog.Debug("removed language files",
		"count", view.FileCount(),
	)
	return nil
}

func (e *Engine) rewrite(m *manifest.Manifest) error {
	jobs := make([]writeJob, 0, m.Len())
	for i := range m.Items {
		jobs = append(jobs, writeJob{
			item: &m.Items[i],
			rel:  m.Items[i].Lower,
		})
	}
	return e.writeAll(jobs)
}
