package install

import (
	"os"
	"path/filepath"
)

// System abstracts the filesystem operations used by the package installer and
// the shim injector.
type System interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	WriteFileRaw(name string, data []byte, perm os.FileMode) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes data to name in place, truncating existing content.
func (RealSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filepath.Clean(name), data, perm)
}

// WriteFileRaw writes an opaque binary archive to name. See writeRaw.
func (RealSystem) WriteFileRaw(name string, data []byte, perm os.FileMode) error {
	return writeRaw(name, data, perm)
}
