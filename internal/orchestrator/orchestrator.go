// Package orchestrator runs the install pipeline: directories, download, archive
// write, shim injection and process restart, in that order.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/betterdiscord/installer-cli/internal/config"
	"github.com/betterdiscord/installer-cli/internal/fetch"
	"github.com/betterdiscord/installer-cli/internal/messages"
	"github.com/betterdiscord/installer-cli/internal/progress"
	"github.com/betterdiscord/installer-cli/internal/runlog"
)

// ErrEmptyConfig is wrapped in the SanityError of a run without targets.
var ErrEmptyConfig = errors.New(messages.SanityEmptyConfig)

// DirectoryProvisioner creates the data directories.
type DirectoryProvisioner interface {
	Ensure(ctx context.Context, tracker *progress.Tracker, log *runlog.Log, dirs []string) error
}

// PackageFetcher downloads the package archive.
type PackageFetcher interface {
	Fetch(ctx context.Context, log *runlog.Log) (fetch.Result, error)
}

// PackageInstaller writes the archive to disk.
type PackageInstaller interface {
	Install(ctx context.Context, log *runlog.Log, content []byte) error
	Path() string
}

// ShimInjector writes the bootstrap shim into each entry directory.
type ShimInjector interface {
	Inject(ctx context.Context, tracker *progress.Tracker, log *runlog.Log, archivePath string, entryDirs []string) error
}

// ProcessController kills and optionally relaunches running clients.
type ProcessController interface {
	Restart(ctx context.Context, tracker *progress.Tracker, log *runlog.Log, variants []config.Variant, perItem float64, restart bool) error
}

// Options wires an Orchestrator.
type Options struct {
	Provisioner DirectoryProvisioner
	Fetcher     PackageFetcher
	Installer   PackageInstaller
	Injector    ShimInjector
	Processes   ProcessController

	// Directories are provisioned in order before the download.
	Directories []string
	// Restart relaunches killed clients.
	Restart bool
	// ExitDelay is how long after a successful run OnExit fires; zero fires it at once.
	ExitDelay time.Duration
	// OnExit is scheduled after a successful run. Nil schedules nothing.
	OnExit func()
	// Observer receives every progress change.
	Observer progress.Observer
	// Log configures each run's log; RunID is filled in per run.
	Log runlog.Options
}

// RunContext is the state of a single run. It is created when the run starts and
// dropped when the run reaches a terminal state.
type RunContext struct {
	ID       uuid.UUID
	Progress *progress.Tracker
	Log      *runlog.Log
	State    State
}

// Outcome summarizes a finished run.
type Outcome struct {
	RunID uuid.UUID
	State State
	// RestartNotice is set when the install succeeded but a client must be restarted by hand.
	RestartNotice bool
	// Err is the hard error of a failed run, or the process error behind RestartNotice.
	Err         error
	FailedIn    State
	Version     string
	ArchivePath string
	Log         []string
	Progress    float64
}

// Orchestrator sequences the install stages.
type Orchestrator struct {
	opts Options
}

var (
	afterFunc = time.AfterFunc
	newRunID  = uuid.New
)

// New returns an Orchestrator.
func New(opts Options) *Orchestrator {
	return &Orchestrator{opts: opts}
}

// Run installs into every target of cfg. It always returns a terminal Outcome.
func (o *Orchestrator) Run(ctx context.Context, cfg config.InstallConfig) Outcome {
	id := newRunID()
	logOpts := o.opts.Log
	logOpts.RunID = id.String()
	log, err := runlog.New(logOpts)
	if err != nil {
		return Outcome{RunID: id, State: Failed, FailedIn: SanityChecking, Err: &SanityError{Err: err}}
	}
	defer func() { _ = log.Close() }()

	rc := &RunContext{
		ID:       id,
		Progress: progress.NewTracker(o.opts.Observer),
		Log:      log,
		State:    Idle,
	}
	p := &pipeline{opts: o.opts, cfg: cfg, rc: rc}
	outcome := p.run(ctx)

	if outcome.State == Succeeded && o.opts.OnExit != nil {
		afterFunc(o.opts.ExitDelay, o.opts.OnExit)
	}
	return outcome
}

// stageResult is the result of one stage: a hard error stops the run, a soft
// error only degrades the final outcome.
type stageResult struct {
	hard error
	soft error
}

func ok() stageResult { return stageResult{} }

func fail(err error) stageResult { return stageResult{hard: err} }

func degrade(err error) stageResult { return stageResult{soft: err} }

type stage struct {
	state     State
	section   string
	milestone float64
	run       func(ctx context.Context) stageResult
}

type pipeline struct {
	opts Options
	cfg  config.InstallConfig
	rc   *RunContext

	result fetch.Result
}

func (p *pipeline) stages() []stage {
	return []stage{
		{state: SanityChecking, section: messages.SanityStarting, run: p.sanityCheck},
		{state: ProvisioningDirs, section: messages.StageDirectories, milestone: progress.DirectoriesMilestone, run: p.provision},
		{state: Fetching, section: messages.StageDownload, run: p.fetch},
		{state: Installing, milestone: progress.DownloadMilestone, run: p.install},
		{state: Injecting, section: messages.StageShims, milestone: progress.ShimMilestone, run: p.inject},
		{state: Restarting, section: messages.StageRestart, milestone: progress.RestartMilestone, run: p.restart},
	}
}

func (p *pipeline) run(ctx context.Context) Outcome {
	rc := p.rc
	rc.Progress.Reset()
	rc.Progress.Start()

	var soft error
	for _, s := range p.stages() {
		rc.State = s.state
		if s.section != "" {
			rc.Log.Section(s.section)
		}
		res := s.run(ctx)
		if res.hard != nil {
			rc.Log.Errorf(messages.OrchestratorFailedFmt, res.hard)
			rc.Progress.Finish(rc.Progress.Value())
			return p.finish(Failed, s.state, res.hard)
		}
		if res.soft != nil {
			soft = res.soft
		}
		if s.milestone > 0 {
			rc.Progress.Set(s.milestone)
		}
	}

	rc.Progress.Finish(progress.RestartMilestone)
	if soft != nil {
		rc.Log.Warnf(messages.ProcRestartNotice)
	} else {
		rc.Log.Infof(messages.OrchestratorSucceeded)
	}
	return p.finish(Succeeded, Restarting, soft)
}

func (p *pipeline) finish(state State, last State, err error) Outcome {
	p.rc.State = state
	out := Outcome{
		RunID:       p.rc.ID,
		State:       state,
		Err:         err,
		Version:     p.result.Version,
		ArchivePath: p.opts.Installer.Path(),
		Log:         p.rc.Log.Lines(),
		Progress:    p.rc.Progress.Value(),
	}
	if state == Failed {
		out.FailedIn = last
	}
	var procErr *ProcessError
	out.RestartNotice = state == Succeeded && errors.As(err, &procErr)
	return out
}

func (p *pipeline) sanityCheck(context.Context) stageResult {
	if p.cfg.Len() == 0 {
		return fail(&SanityError{Err: ErrEmptyConfig})
	}
	return ok()
}

func (p *pipeline) provision(ctx context.Context) stageResult {
	if err := p.opts.Provisioner.Ensure(ctx, p.rc.Progress, p.rc.Log, p.opts.Directories); err != nil {
		return fail(&DirectoryError{Err: err})
	}
	p.rc.Log.Infof(messages.DirsDone)
	return ok()
}

func (p *pipeline) fetch(ctx context.Context) stageResult {
	result, err := p.opts.Fetcher.Fetch(ctx, p.rc.Log)
	if err != nil {
		return fail(&FetchError{Err: err})
	}
	p.result = result
	return ok()
}

func (p *pipeline) install(ctx context.Context) stageResult {
	if err := p.opts.Installer.Install(ctx, p.rc.Log, p.result.Bytes); err != nil {
		return fail(&WriteError{Err: err})
	}
	p.rc.Log.Infof(messages.PackageDone)
	return ok()
}

func (p *pipeline) inject(ctx context.Context) stageResult {
	if err := p.opts.Injector.Inject(ctx, p.rc.Progress, p.rc.Log, p.opts.Installer.Path(), p.cfg.Paths()); err != nil {
		return fail(&WriteError{Err: err})
	}
	p.rc.Log.Infof(messages.ShimsDone)
	return ok()
}

func (p *pipeline) restart(ctx context.Context) stageResult {
	variants := p.cfg.Variants()
	perItem := p.rc.Progress.PerItem(progress.RestartMilestone, len(variants))
	if err := p.opts.Processes.Restart(ctx, p.rc.Progress, p.rc.Log, variants, perItem, p.opts.Restart); err != nil {
		return degrade(&ProcessError{Err: err})
	}
	if p.opts.Restart {
		p.rc.Log.Infof(messages.ProcRestarted)
	} else {
		p.rc.Log.Infof(messages.ProcStopped)
	}
	return ok()
}
