package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "bdi"
	// RootShort is the short description for the root command.
	RootShort       = "BetterDiscord installer CLI"
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"
	VersionUse       = "version"
	VersionShort     = "Print the installer version"

	// InstallUse is the install command name.
	InstallUse   = "install"
	InstallShort = "Install or repair BetterDiscord for the selected Discord variants"

	InstallFlagConfig    = "Path to an installer settings file (TOML)"
	InstallFlagStable    = "Entry directory of the Discord stable installation"
	InstallFlagPTB       = "Entry directory of the Discord PTB installation"
	InstallFlagCanary    = "Entry directory of the Discord Canary installation"
	InstallFlagNoRestart = "Kill running Discord processes without relaunching them"
	InstallFlagYes       = "Skip the confirmation prompt"
	InstallFlagLogLevel  = "Log level (debug, info, warn, error)"
	InstallFlagLogFile   = "Also append the run log to this file (rotated)"

	InstallConfirmTitle      = "Install BetterDiscord?"
	InstallConfirmCancelHelp = "cancel"
	InstallConfirmTargetFmt  = "  - %s: %s\n"
	InstallConfirmDeclined   = "installation cancelled"
	InstallRequiresTerminal  = "confirmation prompt requires an interactive terminal; re-run with --yes"
	InstallProgressDesc      = "Installing"
	InstallSucceeded         = "BetterDiscord installed successfully."
	InstallRestartNotice     = "BetterDiscord was installed, but Discord could not be restarted. Please restart Discord manually."
	InstallFailedFmt         = "installation failed during %s: %w"
	InstallNoTargetsHintFmt  = "no Discord installation selected; pass --stable, --ptb or --canary, or set [targets] in %s"
	InstallDefaultConfigHint = "the settings file"
)
