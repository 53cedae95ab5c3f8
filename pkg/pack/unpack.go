package pack

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/klauspost/compress/zip"

	"github.com/tqbf/langswap/pkg/paths"
)

// DecodeError reports a zip container that cannot be read at all.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode archive: %s", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ReadZip decodes every entry of a zip stream in archive order.
// Entries with unsafe names or unreadable bodies are dropped.
// Symlinks come back with neither IsFile nor IsDir set.
func ReadZip(r io.ReaderAt, size int64) ([]Record, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	records := make([]Record, 0, len(zr.File))
	for _, f := range zr.File {
		if err := paths.ValidateRelPath(f.Name); err != nil {
			slog.Debug("drop archive entry",
				"name", f.Name, "err", err,
			)
			continue
		}

		mode := f.Mode()
		rec := Record{
			Name:   paths.CleanRelPath(f.Name),
			IsDir:  mode.IsDir(),
			IsFile: mode.IsRegular(),
		}
		if mode&fs.ModeSymlink != 0 {
			rec.IsDir, rec.IsFile = false, false
		}

		if !rec.IsDir {
			data, err := readEntry(f)
			if err != nil {
				slog.Debug("drop archive entry",
					"name", f.Name, "err", err,
				)
				continue
			}
			rec.Data = data
		}
		records = append(records, rec)
	}
	return records, nil
}

// Unmarshal is ReadZip over an in-memory archive.
func Unmarshal(data []byte) ([]Record, error) {
	return ReadZip(bytes.NewReader(data), int64(len(data)))
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	data, readErr := io.ReadAll(rc)
	closeErr := rc.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close %s: %w", f.Name, closeErr)
	}
	return data, nil
}
