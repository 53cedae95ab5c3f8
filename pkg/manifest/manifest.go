package manifest

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/tqbf/langswap/pkg/pack"
	"github.com/tqbf/langswap/pkg/paths"
)

// Item is one decoded archive entry. Lower is Path folded to lower
// case and is what every comparison uses.
type Item struct {
	Path   string
	Lower  string
	Bytes  []byte
	IsFile bool
	IsDir  bool
}

func (it *Item) String() string {
	flag := "D"
	if it.IsFile {
		flag = "F"
	}
	return fmt.Sprintf("[%s] %s", flag, it.Path)
}

// Manifest is the ordered inventory of an archive, in archive
// entry order.
type Manifest struct {
	Items []Item
}

func Build(records []pack.Record) *Manifest {
	m := &Manifest{Items: make([]Item, 0, len(records))}
	for _, rec := range records {
		if !rec.IsFile && !rec.IsDir {
			slog.Debug("drop manifest entry", "name", rec.Name)
			continue
		}
		m.Items = append(m.Items, Item{
			Path:   rec.Name,
			Lower:  strings.ToLower(rec.Name),
			Bytes:  rec.Data,
			IsFile: rec.IsFile,
			IsDir:  rec.IsDir,
		})
	}
	return m
}

func FromBytes(data []byte) (*Manifest, error) {
	start := time.Now()
	slog.Info("read manifest from bytes", "size", len(data))

	records, err := pack.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	m := Build(records)

	slog.Info("read manifest",
		"count", len(m.Items),
		"elapsed", time.Since(start),
	)
	return m, nil
}

// Load reads and decodes a zip file from fsys.
func Load(fsys afero.Fs, name string) (*Manifest, error) {
	slog.Info("read manifest from file", "path", name)
	data, err := afero.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	m, err := FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

func (m *Manifest) Len() int {
	return len(m.Items)
}

func (m *Manifest) DirCount() int {
	n := 0
	for i := range m.Items {
		if m.Items[i].IsDir {
			n++
		}
	}
	return n
}

func (m *Manifest) FileCount() int {
	n := 0
	for i := range m.Items {
		if m.Items[i].IsFile {
			n++
		}
	}
	return n
}

func (m *Manifest) String() string {
	var b strings.Builder
	for i := range m.Items {
		fmt.Fprintln(&b, m.Items[i].String())
	}
	return b.String()
}

// FilterSubtree projects the manifest onto the items under root,
// matched case-insensitively and component-wise. Each entry's Rel
// is the lower-cased name with root stripped; root itself is left
// out. Every call rescans the whole manifest.
func (m *Manifest) FilterSubtree(root string) View {
	start := time.Now()
	root = strings.ToLower(paths.CleanRelPath(root))
	slog.Info("filtering manifest", "root", root)

	v := View{Manifest: m}
	for i := range m.Items {
		rel, ok := paths.StripPrefix(m.Items[i].Lower, root)
		if !ok || rel == "" {
			continue
		}
		v.Entries = append(v.Entries, Entry{Index: i, Rel: rel})
	}

	slog.Info("filtered manifest",
		"count", len(v.Entries),
		"elapsed", time.Since(start),
	)
	return v
}
