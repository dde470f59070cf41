package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/betterdiscord/installer-cli/internal/config"
	"github.com/betterdiscord/installer-cli/internal/fetch"
	"github.com/betterdiscord/installer-cli/internal/install"
	"github.com/betterdiscord/installer-cli/internal/messages"
	"github.com/betterdiscord/installer-cli/internal/orchestrator"
	"github.com/betterdiscord/installer-cli/internal/procctl"
	"github.com/betterdiscord/installer-cli/internal/progress"
	"github.com/betterdiscord/installer-cli/internal/provision"
	"github.com/betterdiscord/installer-cli/internal/runlog"
	"github.com/betterdiscord/installer-cli/internal/terminal"
)

var (
	isInteractiveFunc = terminal.IsInteractive
	isTerminalFunc    = terminal.IsTerminalWriter
	confirmFunc       = confirmInstall
)

type installFlags struct {
	config    string
	stable    string
	ptb       string
	canary    string
	noRestart bool
	yes       bool
	logLevel  string
	logFile   string
}

func newInstallCmd() *cobra.Command {
	var flags installFlags
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", messages.InstallFlagConfig)
	f.StringVar(&flags.stable, "stable", "", messages.InstallFlagStable)
	f.StringVar(&flags.ptb, "ptb", "", messages.InstallFlagPTB)
	f.StringVar(&flags.canary, "canary", "", messages.InstallFlagCanary)
	f.BoolVar(&flags.noRestart, "no-restart", false, messages.InstallFlagNoRestart)
	f.BoolVarP(&flags.yes, "yes", "y", false, messages.InstallFlagYes)
	f.StringVar(&flags.logLevel, "log-level", "", messages.InstallFlagLogLevel)
	f.StringVar(&flags.logFile, "log-file", "", messages.InstallFlagLogFile)
	return cmd
}

// applyFlags overlays command-line values on settings.
func applyFlags(settings *config.Settings, flags installFlags) {
	overrides := map[config.Variant]string{
		config.Stable: flags.stable,
		config.PTB:    flags.ptb,
		config.Canary: flags.canary,
	}
	for _, variant := range config.AllVariants {
		if path := strings.TrimSpace(overrides[variant]); path != "" {
			settings.Targets.SetPath(variant, path)
		}
	}
	if flags.noRestart {
		settings.Install.Restart = false
	}
	if strings.TrimSpace(flags.logLevel) != "" {
		settings.Log.Level = flags.logLevel
	}
	if strings.TrimSpace(flags.logFile) != "" {
		settings.Log.File = flags.logFile
	}
}

func runInstall(ctx context.Context, stdout io.Writer, stderr io.Writer, flags installFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	settings, err := config.LoadSettings(flags.config)
	if err != nil {
		return err
	}
	applyFlags(&settings, flags)

	cfg, err := settings.InstallConfig()
	if err != nil {
		return err
	}
	layout, err := config.ResolveLayout(settings)
	if err != nil {
		return err
	}
	exitDelay, err := settings.ExitDelay()
	if err != nil {
		return err
	}
	settleDelay, err := settings.SettleDelay()
	if err != nil {
		return err
	}

	if cfg.Len() > 0 && !flags.yes {
		if !isInteractiveFunc() {
			return errors.New(messages.InstallRequiresTerminal)
		}
		confirmed, err := confirmFunc(cfg)
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(stderr, messages.InstallConfirmDeclined)
			return &SilentExitError{Code: 1}
		}
	}

	var observer progress.Observer
	if isTerminalFunc(stderr) {
		observer = progress.NewBar(stderr, messages.InstallProgressDesc).Observe
	}

	exited := make(chan struct{})
	orch := orchestrator.New(orchestrator.Options{
		Provisioner: provision.New(nil),
		Fetcher: fetch.New(fetch.Options{
			DownloadURL:   settings.Source.DownloadURL,
			ReleaseAPI:    settings.Source.ReleaseAPI,
			AssetName:     settings.Source.AssetName,
			VersionHeader: settings.Source.VersionHeader,
			UserAgent:     settings.Source.UserAgent,
		}),
		Installer:   install.NewPackageInstaller(nil, layout.Archive),
		Injector:    install.NewShimInjector(nil),
		Processes:   procctl.New(procctl.Options{SettleDelay: settleDelay}),
		Directories: layout.Directories(),
		Restart:     settings.Install.Restart,
		ExitDelay:   exitDelay,
		OnExit:      func() { close(exited) },
		Observer:    observer,
		Log: runlog.Options{
			Out:   stdout,
			Level: settings.Log.Level,
			File:  settings.Log.File,
		},
	})

	outcome := orch.Run(ctx, cfg)
	return reportOutcome(ctx, stdout, outcome, exited, flags.config)
}

// reportOutcome prints the final status and, on success, waits for the scheduled exit.
func reportOutcome(ctx context.Context, stdout io.Writer, outcome orchestrator.Outcome, exited <-chan struct{}, configPath string) error {
	if outcome.State == orchestrator.Failed {
		if errors.Is(outcome.Err, orchestrator.ErrEmptyConfig) {
			source := configPath
			if strings.TrimSpace(source) == "" {
				source = messages.InstallDefaultConfigHint
			}
			return fmt.Errorf(messages.InstallNoTargetsHintFmt, source)
		}
		return fmt.Errorf(messages.InstallFailedFmt, outcome.FailedIn, outcome.Err)
	}

	if outcome.RestartNotice {
		_, _ = fmt.Fprintln(stdout, messages.InstallRestartNotice)
	} else {
		_, _ = fmt.Fprintln(stdout, messages.InstallSucceeded)
	}

	select {
	case <-exited:
	case <-ctx.Done():
	}
	return nil
}
