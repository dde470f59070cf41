package install

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	osCreateTemp = os.CreateTemp
	osChmod      = os.Chmod
	osRename     = os.Rename
)

// writeRaw writes data as opaque bytes through a temp file in the target
// directory, then renames it over name.
func writeRaw(name string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(name)
	tmp, err := osCreateTemp(dir, "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := osChmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := osRename(tmpName, name); err != nil {
		return fmt.Errorf("move temp file into place: %w", err)
	}
	committed = true
	return nil
}
