// Package procctl finds, kills and relaunches running Discord processes.
package procctl

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/betterdiscord/installer-cli/internal/config"
	"github.com/betterdiscord/installer-cli/internal/messages"
	"github.com/betterdiscord/installer-cli/internal/progress"
	"github.com/betterdiscord/installer-cli/internal/runlog"
)

// Options configures a Controller. Nil fields use the OS implementations.
// SettleDelay is the pause between killing a process tree and relaunching it.
type Options struct {
	Platform    Platform
	Finder      Finder
	Killer      Killer
	Launcher    Launcher
	SettleDelay time.Duration
	Sleep       func(ctx context.Context, d time.Duration) error
}

// Controller restarts Discord processes after an install.
type Controller struct {
	platform    Platform
	finder      Finder
	killer      Killer
	launcher    Launcher
	settleDelay time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// New returns a Controller.
func New(opts Options) *Controller {
	c := &Controller{
		platform:    opts.Platform,
		finder:      opts.Finder,
		killer:      opts.Killer,
		launcher:    opts.Launcher,
		settleDelay: opts.SettleDelay,
		sleep:       opts.Sleep,
	}
	if c.platform == nil {
		c.platform = CurrentPlatform()
	}
	if c.finder == nil {
		c.finder = NewSystemFinder()
	}
	if c.killer == nil {
		c.killer = SystemKiller{}
	}
	if c.launcher == nil {
		c.launcher = OpenLauncher{}
	}
	if c.sleep == nil {
		c.sleep = sleepWithContext
	}
	return c
}

// Restart kills the running processes of each variant and, when restart is set,
// relaunches them. A variant with no running process counts as done. Failures are
// logged (warning when restarting, error otherwise), collected and returned together
// after every variant has been tried; each successful variant advances tracker by perItem.
func (c *Controller) Restart(ctx context.Context, tracker *progress.Tracker, log *runlog.Log, variants []config.Variant, perItem float64, restart bool) error {
	var result *multierror.Error
	for _, variant := range variants {
		name := c.platform.ProcessName(variant)
		log.Printf(messages.ProcAttemptKillFmt, name)
		if err := c.restartOne(ctx, log, name, restart); err != nil {
			if restart {
				log.Warnf(messages.ProcCannotKillFmt, variant.DisplayName(), err)
			} else {
				log.Errorf(messages.ProcCannotKillFmt, variant.DisplayName(), err)
			}
			result = multierror.Append(result, fmt.Errorf("%s: %w", variant.DisplayName(), err))
			continue
		}
		tracker.Advance(perItem)
	}
	return formatErrorOrNil(result)
}

func (c *Controller) restartOne(ctx context.Context, log *runlog.Log, name string, restart bool) error {
	records, err := c.finder.Find(ctx, name)
	if err != nil {
		return fmt.Errorf(messages.ProcFindFailedFmt, name, err)
	}
	if len(records) == 0 {
		log.Infof(messages.ProcNotRunningFmt, name)
		return nil
	}

	parent, err := selectParent(name, records)
	if err != nil {
		return err
	}
	if restart && parent.Exe == "" {
		return fmt.Errorf(messages.ProcNoExecutableFmt, parent.PID)
	}
	binary := c.platform.BinaryFromDiscoveredPath(parent.Exe)
	if err := c.killer.KillTree(ctx, parent.PID); err != nil {
		return fmt.Errorf(messages.ProcKillFailedFmt, parent.PID, err)
	}
	log.Infof(messages.ProcKilledFmt, name, parent.PID)
	if !restart {
		return nil
	}

	if err := c.sleep(ctx, c.settleDelay); err != nil {
		return err
	}
	log.Printf(messages.ProcRelaunchingFmt, binary)
	if err := c.launcher.Launch(binary); err != nil {
		return fmt.Errorf(messages.ProcRelaunchFailedFmt, binary, err)
	}
	return nil
}

// selectParent returns the single record whose pid is another record's parent pid.
// When several qualify, as with a main process and its zygote, only tree roots
// (records whose parent is not itself a match) are considered.
func selectParent(name string, records []ProcessRecord) (ProcessRecord, error) {
	parents := make(map[int32]struct{}, len(records))
	pids := make(map[int32]struct{}, len(records))
	for _, r := range records {
		parents[r.PPID] = struct{}{}
		pids[r.PID] = struct{}{}
	}
	var candidates []ProcessRecord
	for _, r := range records {
		if _, ok := parents[r.PID]; ok {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) > 1 {
		var roots []ProcessRecord
		for _, r := range candidates {
			if _, ok := pids[r.PPID]; !ok {
				roots = append(roots, r)
			}
		}
		candidates = roots
	}
	if len(candidates) != 1 {
		pids := make([]int32, 0, len(candidates))
		for _, c := range candidates {
			pids = append(pids, c.PID)
		}
		return ProcessRecord{}, &AmbiguousProcessMatchError{Name: name, Candidates: pids}
	}
	return candidates[0], nil
}

func sleepWithContext(ctx context.Context, duration time.Duration) error {
	select {
	case <-time.After(duration):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
