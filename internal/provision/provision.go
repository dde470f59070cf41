// Package provision creates the installer's data directories.
package provision

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/betterdiscord/installer-cli/internal/messages"
	"github.com/betterdiscord/installer-cli/internal/progress"
	"github.com/betterdiscord/installer-cli/internal/runlog"
)

// Provisioner ensures a fixed list of directories exists.
type Provisioner struct {
	sys System
}

// New returns a Provisioner backed by sys; nil uses the OS filesystem.
func New(sys System) *Provisioner {
	if sys == nil {
		sys = RealSystem{}
	}
	return &Provisioner{sys: sys}
}

// Ensure walks dirs in order. Existing directories are left alone and new ones are
// created without parents. Each directory advances tracker by an equal share of the
// distance to the directories milestone. The first failure stops the walk;
// directories created before it stay on disk.
func (p *Provisioner) Ensure(ctx context.Context, tracker *progress.Tracker, log *runlog.Log, dirs []string) error {
	step := tracker.PerItem(progress.DirectoriesMilestone, len(dirs))
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		exists, err := p.exists(dir)
		if err != nil {
			err = fmt.Errorf(messages.DirStatFailedFmt, dir, err)
			log.Errorf("%v", err)
			return err
		}
		if exists {
			log.Infof(messages.DirExistsFmt, dir)
			tracker.Advance(step)
			continue
		}
		if err := p.sys.Mkdir(dir, 0o755); err != nil {
			err = fmt.Errorf(messages.DirCreateFailedFmt, dir, err)
			log.Errorf("%v", err)
			return err
		}
		tracker.Advance(step)
		log.Infof(messages.DirCreatedFmt, dir)
	}
	return nil
}

func (p *Provisioner) exists(dir string) (bool, error) {
	_, err := p.sys.Stat(dir)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
