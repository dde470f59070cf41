package procctl

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/skratchdot/open-golang/open"
)

// ProcessRecord is one running process matched by name.
type ProcessRecord struct {
	PID  int32
	PPID int32
	Exe  string
}

// Finder lists running processes with a given name.
type Finder interface {
	Find(ctx context.Context, name string) ([]ProcessRecord, error)
}

// Killer terminates a process and all of its descendants.
type Killer interface {
	KillTree(ctx context.Context, pid int32) error
}

// Launcher starts a program the way the desktop would open it.
type Launcher interface {
	Launch(path string) error
}

// SystemFinder finds processes through the OS process table.
type SystemFinder struct {
	goos string
}

// NewSystemFinder returns a Finder for the running OS.
func NewSystemFinder() SystemFinder {
	return SystemFinder{goos: runtime.GOOS}
}

// Find returns every process whose name equals name. On Windows the ".exe"
// suffix is ignored and the comparison is case-insensitive.
func (f SystemFinder) Find(ctx context.Context, name string) ([]ProcessRecord, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	var records []ProcessRecord
	for _, p := range procs {
		pname, err := p.NameWithContext(ctx)
		if err != nil || !f.matches(pname, name) {
			continue
		}
		ppid, err := p.PpidWithContext(ctx)
		if err != nil {
			continue
		}
		exe, _ := p.ExeWithContext(ctx)
		records = append(records, ProcessRecord{PID: p.Pid, PPID: ppid, Exe: exe})
	}
	return records, nil
}

func (f SystemFinder) matches(processName string, want string) bool {
	if f.goos == "windows" {
		trimmed := processName
		if strings.HasSuffix(strings.ToLower(trimmed), ".exe") {
			trimmed = trimmed[:len(trimmed)-len(".exe")]
		}
		return strings.EqualFold(trimmed, want)
	}
	return processName == want
}

// SystemKiller kills process trees, children first.
type SystemKiller struct{}

// KillTree kills pid after killing its descendants.
func (SystemKiller) KillTree(ctx context.Context, pid int32) error {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return err
	}
	return killTree(ctx, p)
}

func killTree(ctx context.Context, p *process.Process) error {
	children, err := p.ChildrenWithContext(ctx)
	if err != nil && !errors.Is(err, process.ErrorNoChildren) {
		return err
	}
	for _, child := range children {
		if err := killTree(ctx, child); err != nil {
			if alive, _ := process.PidExistsWithContext(ctx, child.Pid); alive {
				return err
			}
		}
	}
	return p.KillWithContext(ctx)
}

// OpenLauncher opens paths with the desktop's default handler.
type OpenLauncher struct{}

// Launch starts path without waiting for it to exit.
func (OpenLauncher) Launch(path string) error {
	return open.Start(path)
}
