package install

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/tqbf/langswap/pkg/manifest"
	"github.com/tqbf/langswap/pkg/paths"
)

const BackupName = "language.zip"

// Config describes one install tree. InstallRoot receives overlay
// writes, BackupDir holds BackupName, and Subtree is the language
// root inside Archive, e.g. "language/zh_cn_hans". Workers bounds
// each batch; zero runs one goroutine per entry. Fs defaults to the
// OS filesystem.
type Config struct {
	InstallRoot string
	BackupDir   string
	Subtree     string
	Archive     []byte
	Whitelist   *paths.Whitelist
	Workers     int
	Fs          afero.Fs
}

type Engine struct {
	cfg Config
	fs  afero.Fs
}

func New(cfg Config) (*Engine, error) {
	if cfg.InstallRoot == "" {
		return nil, fmt.Errorf("missing install root")
	}
	if cfg.BackupDir == "" {
		return nil, fmt.Errorf("missing backup dir")
	}
	if cfg.Subtree == "" {
		return nil, fmt.Errorf("missing subtree")
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative")
	}
	fsys := cfg.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Engine{cfg: cfg, fs: fsys}, nil
}

func (e *Engine) BackupPath() string {
	return filepath.Join(e.cfg.BackupDir, BackupName)
}

// Inspect decodes the source archive and filters it to the language
// subtree without touching the install tree.
func (e *Engine) Inspect() (manifest.View, error) {
	m, err := manifest.FromBytes(e.cfg.Archive)
	if err != nil {
		return manifest.View{}, fmt.Errorf("source archive: %w", err)
	}
	return m.FilterSubtree(e.cfg.Subtree), nil
}

// Apply checks the install tree, backs up everything the overlay
// will touch, then writes the overlay.
func (e *Engine) Apply() error {
	view, err := e.Inspect()
	if err != nil {
		return err
	}
	if err := e.Check(view); err != nil {
		return err
	}
	if err := e.Backup(view); err != nil {
		return err
	}
	return e.Overlay(view)
}

// Revert removes the overlay files named by the source archive and
// rewrites the backed up originals.
func (e *Engine) Revert() error {
	needsRemove, err := e.Inspect()
	if err != nil {
		return err
	}
	canonical, err := manifest.Load(e.fs, e.BackupPath())
	if err != nil {
		return fmt.Errorf("backup archive: %w", err)
	}
	return e.Restore(needsRemove, canonical)
}

func (e *Engine) target(rel string) (string, error) {
	return paths.Join(e.cfg.InstallRoot, rel)
}

func (e *Engine) batch() *pool.ErrorPool {
	p := pool.New().WithErrors()
	if e.cfg.Workers > 0 {
		p = p.WithMaxGoroutines(e.cfg.Workers)
	}
	return p
}

func logDone(msg string, start time.Time) {
	slog.Info(msg, "elapsed", time.Since(start))
}
