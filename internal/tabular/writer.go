package tabular

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/nao1215/schoolscan/internal/model"
)

// WriteCSV writes table to path as comma-separated text with a header row
// and no index column.
//
// The destination is replaced atomically: rows are written to a temporary
// file next to path, which is renamed over path only after every row has been
// written and flushed. Missing parent directories are created.
func WriteCSV(path string, table *model.Table) (err error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return &FileAccessError{Op: "create directory for", Path: path, Err: err}
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return &FileAccessError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()        //nolint:errcheck // Already failing; the close error adds nothing
			_ = os.Remove(tmpName) //nolint:errcheck // Best effort cleanup
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(table.Columns()); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	if err := w.WriteAll(table.Records()); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &FileAccessError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
