package pack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"

	"github.com/tqbf/langswap/pkg/paths"
)

// WriteZip serializes records into a zip stream in the given
// order. Headers carry no timestamps so identical records always
// produce identical bytes.
func WriteZip(w io.Writer, records []Record) (int, error) {
	zw := zip.NewWriter(w)

	count := 0
	for _, rec := range records {
		if err := paths.ValidateRelPath(rec.Name); err != nil {
			return count, fmt.Errorf(
				"invalid path %s: %w", rec.Name, err,
			)
		}
		name := paths.CleanRelPath(rec.Name)

		if rec.IsDir {
			_, err := zw.CreateHeader(&zip.FileHeader{
				Name:   name + "/",
				Method: zip.Store,
			})
			if err != nil {
				return count, fmt.Errorf(
					"write dir header %s: %w", name, err,
				)
			}
			count++
			continue
		}

		if err := addFileToZip(zw, name, rec.Data); err != nil {
			return count, err
		}
		count++
	}

	if err := zw.Close(); err != nil {
		return count, fmt.Errorf("finish archive: %w", err)
	}
	return count, nil
}

// Marshal is WriteZip into memory.
func Marshal(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := WriteZip(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addFileToZip(
	zw *zip.Writer,
	name string,
	data []byte,
) error {
	fw, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return fmt.Errorf("write header %s: %w", name, err)
	}
	if _, err := fw.Write(data); err != nil {
		return fmt.Errorf("write body %s: %w", name, err)
	}
	return nil
}
