// Package install writes the downloaded package to disk and injects the bootstrap
// shim into each Discord installation.
package install

import (
	"context"
	"fmt"

	"github.com/betterdiscord/installer-cli/internal/messages"
	"github.com/betterdiscord/installer-cli/internal/runlog"
)

// PackageInstaller persists the package archive to a fixed path.
type PackageInstaller struct {
	sys  System
	path string
}

// NewPackageInstaller returns an installer writing to archivePath; nil sys uses the OS.
func NewPackageInstaller(sys System, archivePath string) *PackageInstaller {
	if sys == nil {
		sys = RealSystem{}
	}
	return &PackageInstaller{sys: sys, path: archivePath}
}

// Path returns the archive location.
func (p *PackageInstaller) Path() string {
	return p.path
}

// Install writes content to the archive path. Errors carry the path and are not retried.
func (p *PackageInstaller) Install(ctx context.Context, log *runlog.Log, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.sys.WriteFileRaw(p.path, content, 0o644); err != nil {
		err = fmt.Errorf(messages.PackageWriteFailedFmt, p.path, err)
		log.Errorf("%v", err)
		return err
	}
	log.Infof(messages.PackageWrittenFmt, p.path)
	return nil
}
