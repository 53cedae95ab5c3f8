package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/tqbf/langswap/pkg/pack"
	"github.com/tqbf/langswap/pkg/paths"
)

const testSubtree = "language/zh_cn_hans"

func makeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

// snapshotTree maps every path under dir to its contents, or to
// "<dir>" for directories.
func snapshotTree(t *testing.T, fsys afero.Fs, dir string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := afero.Walk(fsys, dir,
		func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(dir, p)
			if err != nil {
				return err
			}
			if rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)
			if info.IsDir() {
				tree[rel] = "<dir>"
				return nil
			}
			data, err := afero.ReadFile(fsys, p)
			if err != nil {
				return err
			}
			tree[rel] = string(data)
			return nil
		},
	)
	require.NoError(t, err)
	return tree
}

func buildArchive(t *testing.T, records ...pack.Record) []byte {
	t.Helper()
	data, err := pack.Marshal(records)
	require.NoError(t, err)
	return data
}

type testEnv struct {
	fs      afero.Fs
	root    string
	backup  string
	archive []byte
}

func newOSEnv(t *testing.T, archive []byte) testEnv {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "game")
	require.NoError(t, os.MkdirAll(root, 0o755))
	return testEnv{
		fs:      afero.NewOsFs(),
		root:    root,
		backup:  filepath.Join(base, "backup"),
		archive: archive,
	}
}

func newMemEnv(t *testing.T, archive []byte) testEnv {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/game", 0o755))
	return testEnv{
		fs:      fsys,
		root:    "/game",
		backup:  "/backup",
		archive: archive,
	}
}

func (env testEnv) engine(
	t *testing.T, whitelist ...string,
) *Engine {
	t.Helper()
	e, err := New(Config{
		InstallRoot: env.root,
		BackupDir:   env.backup,
		Subtree:     testSubtree,
		Archive:     env.archive,
		Whitelist:   paths.NewWhitelist(whitelist),
		Fs:          env.fs,
	})
	require.NoError(t, err)
	return e
}

func (env testEnv) write(t *testing.T, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(env.root, filepath.FromSlash(rel))
		require.NoError(t, env.fs.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, afero.WriteFile(
			env.fs, full, []byte(content), 0o644,
		))
	}
}

func (env testEnv) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(
		env.fs, filepath.Join(env.root, filepath.FromSlash(rel)),
	)
	require.NoError(t, err)
	return string(data)
}

func (env testEnv) exists(rel string) bool {
	_, err := env.fs.Stat(
		filepath.Join(env.root, filepath.FromSlash(rel)),
	)
	return err == nil
}
