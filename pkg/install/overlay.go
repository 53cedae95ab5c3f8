package install

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tqbf/langswap/pkg/manifest"
)

// Overlay writes every entry of view under the install root,
// directories before files. Within each pass all writes are launched
// before any result is inspected; the first error is returned and
// writes that already succeeded stay.
func (e *Engine) Overlay(view manifest.View) error {
	start := time.Now()
	slog.Info("installing language files",
		"root", e.cfg.InstallRoot,
		"count", view.Len(),
	)

	jobs := make([]writeJob, 0, view.Len())
	for _, entry := range view.Entries {
		jobs = append(jobs, writeJob{
			item: view.Item(entry),
			rel:  entry.Rel,
		})
	}
	if err := e.writeAll(jobs); err != nil {
		return err
	}

	logDone("installed language files", start)
	return nil
}

type writeJob struct {
	item *manifest.Item
	rel  string
}

// writeAll runs two batches: directory items, then file items. A
// file therefore never races the directory entry that creates its
// parent. Each batch returns its first error.
func (e *Engine) writeAll(jobs []writeJob) error {
	for _, dirs := range []bool{true, false} {
		p := e.batch().WithFirstError()
		for _, job := range jobs {
			if job.item.IsDir != dirs {
				continue
			}
			p.Go(func() error {
				target, err := e.target(job.rel)
				if err != nil {
					return err
				}
				return e.writeItem(job.item, target)
			})
		}
		if err := p.Wait(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) writeItem(item *manifest.Item, target string) error {
	switch {
	case item.IsFile:
		return e.writeFile(item.Bytes, target)
	case item.IsDir:
		if _, err := e.fs.Stat(target); err == nil {
			return nil
		}
		if err := e.fs.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", target, err)
		}
	}
	return nil
}

func (e *Engine) writeFile(data []byte, target string) error {
	if err := e.fillParent(filepath.Dir(target)); err != nil {
		return err
	}

	f, err := e.fs.OpenFile(
		target,
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC,
		0o644,
	)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil {
		return fmt.Errorf("write %s: %w", target, writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", target, closeErr)
	}
	return nil
}

// fillParent creates parent only when its own parent already exists.
// Whole new directory trees are never created for a file; the open
// that follows reports the missing path instead.
func (e *Engine) fillParent(parent string) error {
	if _, err := e.fs.Stat(parent); err == nil {
		return nil
	}
	if _, err := e.fs.Stat(filepath.Dir(parent)); err != nil {
		return nil
	}
	err := e.fs.Mkdir(parent, 0o755)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("mkdir %s: %w", parent, err)
	}
	return nil
}
