package install

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/tqbf/langswap/pkg/manifest"
	"github.com/tqbf/langswap/pkg/pack"
)

type snapshotKind int

const (
	snapshotSkip snapshotKind = iota
	snapshotDir
	snapshotFile
)

type snapshot struct {
	kind snapshotKind
	data []byte
}

// Backup captures the current install-tree state of every entry in
// view and writes it to BackupPath. Reads run concurrently and all
// read failures are reported; the archive is assembled in view order.
func (e *Engine) Backup(view manifest.View) error {
	start := time.Now()
	dest := e.BackupPath()
	slog.Info("backing up install tree",
		"root", e.cfg.InstallRoot,
		"dest", dest,
	)

	// One slot per entry; each goroutine owns its slot.
	results := make([]snapshot, view.Len())
	p := e.batch()
	for i, entry := range view.Entries {
		p.Go(func() error {
			snap, err := e.snapshot(entry.Rel)
			if err != nil {
				return err
			}
			results[i] = snap
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return fmt.Errorf("read install tree: %w", err)
	}

	records := make([]pack.Record, 0, len(results))
	for i, entry := range view.Entries {
		switch results[i].kind {
		case snapshotDir:
			records = append(records, pack.DirRecord(entry.Rel))
		case snapshotFile:
			records = append(records,
				pack.FileRecord(entry.Rel, results[i].data),
			)
		}
	}

	data, err := pack.Marshal(records)
	if err != nil {
		return fmt.Errorf("build backup: %w", err)
	}
	if err := e.persist(dest, data); err != nil {
		return err
	}

	slog.Info("backed up",
		"count", len(records),
		"size", len(data),
		"elapsed", time.Since(start),
	)
	return nil
}

func (e *Engine) snapshot(rel string) (snapshot, error) {
	target, err := e.target(rel)
	if err != nil {
		return snapshot{}, err
	}
	info, err := e.fs.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) &&
			e.cfg.Whitelist.Contains(rel) {
			return snapshot{kind: snapshotSkip}, nil
		}
		return snapshot{}, fmt.Errorf("stat %s: %w", rel, err)
	}
	if info.IsDir() {
		return snapshot{kind: snapshotDir}, nil
	}
	data, err := afero.ReadFile(e.fs, target)
	if err != nil {
		return snapshot{}, fmt.Errorf("read %s: %w", rel, err)
	}
	return snapshot{kind: snapshotFile, data: data}, nil
}

// persist writes data next to dest and renames it into place so a
// crash never leaves a truncated archive behind.
func (e *Engine) persist(dest string, data []byte) error {
	if err := e.fs.MkdirAll(e.cfg.BackupDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	tmp, err := afero.TempFile(
		e.fs, e.cfg.BackupDir, BackupName+".*.tmp",
	)
	if err != nil {
		return fmt.Errorf("create temp backup: %w", err)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		e.discard(tmpName)
		if writeErr != nil {
			return fmt.Errorf("write backup: %w", writeErr)
		}
		return fmt.Errorf("close backup: %w", closeErr)
	}

	if err := e.fs.Rename(tmpName, dest); err != nil {
		e.discard(tmpName)
		return fmt.Errorf("rename backup: %w", err)
	}
	return nil
}

func (e *Engine) discard(tmpName string) {
	if err := e.fs.Remove(tmpName); err != nil {
		slog.Debug("remove temp backup",
			"path", tmpName, "err", err,
		)
	}
}
