package install

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tqbf/langswap/pkg/manifest"
	"github.com/tqbf/langswap/pkg/pack"
)

func TestNewValidates(t *testing.T) {
	_, err := New(Config{BackupDir: "/b", Subtree: testSubtree})
	assert.Error(t, err)
	_, err = New(Config{InstallRoot: "/g", Subtree: testSubtree})
	assert.Error(t, err)
	_, err = New(Config{InstallRoot: "/g", BackupDir: "/b"})
	assert.Error(t, err)
	_, err = New(Config{
		InstallRoot: "/g", BackupDir: "/b",
		Subtree: testSubtree, Workers: -1,
	})
	assert.Error(t, err)

	e, err := New(Config{
		InstallRoot: "/g", BackupDir: "/b", Subtree: testSubtree,
	})
	require.NoError(t, err)
	assert.Equal(t, "/b/language.zip", e.BackupPath())
}

func TestApplyScenario(t *testing.T) {
	env := newOSEnv(t, buildArchive(t,
		pack.FileRecord("language/zh_cn_hans/ui/menu.bin", []byte("ZHMN")),
		pack.FileRecord("language/ui.bin", []byte("ENUI")),
	))
	makeTree(t, env.root, map[string]string{
		"ui/menu.bin": "MENU",
	})

	e := env.engine(t)
	require.NoError(t, e.Apply())
	assert.Equal(t, "ZHMN", env.read(t, "ui/menu.bin"))

	backup, err := manifest.Load(env.fs, e.BackupPath())
	require.NoError(t, err)
	require.Equal(t, 1, backup.Len())
	assert.Equal(t, "ui/menu.bin", backup.Items[0].Path)
	assert.Equal(t, []byte("MENU"), backup.Items[0].Bytes)
}

func TestApplyThenRevertRoundTrip(t *testing.T) {
	archive := buildArchive(t,
		pack.DirRecord("language"),
		pack.FileRecord("language/ui.bin", []byte("ENUI")),
		pack.DirRecord("language/zh_cn_hans"),
		pack.DirRecord("language/zh_cn_hans/ui"),
		pack.FileRecord("language/zh_cn_hans/ui/menu.bin", []byte("ZHMN")),
		pack.FileRecord("language/zh_cn_hans/ui/hud.bin", []byte("ZHHD")),
		pack.FileRecord("language/zh_cn_hans/ui/credits.bin", []byte("ZHCR")),
		pack.DirRecord("language/zh_cn_hans/text"),
		pack.FileRecord("language/zh_cn_hans/text/strings.bin", []byte("ZHST")),
	)

	for _, tc := range []struct {
		name string
		env  func(*testing.T, []byte) testEnv
	}{
		{"os", newOSEnv},
		{"mem", newMemEnv},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := tc.env(t, archive)
			env.write(t, map[string]string{
				"ui/menu.bin":      "english menu",
				"ui/hud.bin":       "english hud",
				"ui/untouched.bin": "keep me",
				"text/strings.bin": "english strings",
				"engine.cfg":       "cfg",
			})
			original := snapshotTree(t, env.fs, env.root)

			e := env.engine(t, "ui/credits.bin")
			require.NoError(t, e.Apply())

			applied := snapshotTree(t, env.fs, env.root)
			assert.Equal(t, "ZHMN", applied["ui/menu.bin"])
			assert.Equal(t, "ZHCR", applied["ui/credits.bin"])
			assert.Equal(t, "ZHST", applied["text/strings.bin"])

			require.NoError(t, e.Revert())
			assert.Equal(t, original, snapshotTree(t, env.fs, env.root))
		})
	}
}

func TestApplyFailsCheckWithoutSideEffects(t *testing.T) {
	env := newMemEnv(t, buildArchive(t,
		pack.FileRecord("language/zh_cn_hans/ui/menu.bin", []byte("ZHMN")),
		pack.FileRecord("language/zh_cn_hans/ui/hud.bin", []byte("ZHHD")),
	))
	env.write(t, map[string]string{"ui/menu.bin": "menu"})

	e := env.engine(t)
	err := e.Apply()

	var missing *MissingFilesError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"ui/hud.bin"}, missing.Paths)

	assert.Equal(t, "menu", env.read(t, "ui/menu.bin"))
	_, err = env.fs.Stat(e.BackupPath())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestApplyCorruptArchive(t *testing.T) {
	env := newMemEnv(t, []byte("not a zip"))
	err := env.engine(t).Apply()

	var decodeErr *pack.DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestRevertWithoutBackup(t *testing.T) {
	env := newMemEnv(t, buildArchive(t,
		pack.FileRecord("language/zh_cn_hans/ui/menu.bin", []byte("ZHMN")),
	))
	env.write(t, map[string]string{"ui/menu.bin": "ZHMN"})

	err := env.engine(t).Revert()
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, "ZHMN", env.read(t, "ui/menu.bin"))
}

func TestRevertCorruptBackup(t *testing.T) {
	env := newMemEnv(t, buildArchive(t,
		pack.FileRecord("language/zh_cn_hans/ui/menu.bin", []byte("ZHMN")),
	))
	e := env.engine(t)
	require.NoError(t, env.fs.MkdirAll(env.backup, 0o755))
	require.NoError(t, afero.WriteFile(
		env.fs, e.BackupPath(), []byte("garbage"), 0o644,
	))

	var decodeErr *pack.DecodeError
	assert.True(t, errors.As(e.Revert(), &decodeErr))
}
