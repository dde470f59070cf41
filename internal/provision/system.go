package provision

import "os"

// System abstracts the filesystem operations the provisioner needs.
type System interface {
	Stat(name string) (os.FileInfo, error)
	Mkdir(name string, perm os.FileMode) error
}

// RealSystem implements System using the OS filesystem.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Mkdir creates a single directory; the parent must already exist.
func (RealSystem) Mkdir(name string, perm os.FileMode) error {
	return os.Mkdir(name, perm)
}
