package messages

// Install pipeline messages. Lines ending in "Fmt" are format strings.
const (
	SanityStarting    = "Starting installation..."
	SanityEmptyConfig = "no installation targets were provided"

	StageDirectories = "Creating required directories..."
	StageDownload    = "Downloading package..."
	StageShims       = "Injecting shims..."
	StageRestart     = "Restarting Discord..."

	DirExistsFmt       = "Directory exists: %s"
	DirCreatedFmt      = "Directory created: %s"
	DirCreateFailedFmt = "failed to create directory %s: %w"
	DirStatFailedFmt   = "failed to check directory %s: %w"
	DirsDone           = "Directories created"

	FetchCreateRequestFmt     = "create request for %s: %w"
	FetchStatusFmt            = "status code did not indicate success: %d"
	FetchReadBodyFmt          = "read response body from %s: %w"
	FetchTooLargeFmt          = "response from %s exceeds %d bytes"
	FetchPrimaryOKFmt         = "Downloaded BetterDiscord version %s from the official website"
	FetchPrimaryFailedFmt     = "Failed to download package from the official website: %v"
	FetchFallingBack          = "Falling back to GitHub..."
	FetchIndexFailedFmt       = "failed to get asset url from %s: %w"
	FetchNoResponse           = "could not get any response"
	FetchNoBody               = "could not get response body"
	FetchNoReleaseList        = "could not get a release list"
	FetchNoMatchingAsset      = "could not find a matching asset"
	FetchNoAssetURL           = "could not get asset url"
	FetchNoVersionHeader      = "response is missing the version header"
	FetchAssetFailedFmt       = "failed to download from %s: %w"
	FetchAssetOKFmt           = "Downloaded BetterDiscord version %s from GitHub"
	FetchUnknownVersion       = "unknown"
	FetchUnparsableVersionFmt = "Release tag %q is not a semantic version; using it as-is"

	PackageWriteFailedFmt = "failed to write package to %s: %w"
	PackageWrittenFmt     = "Package written to %s"
	PackageDone           = "Package downloaded"

	ShimInjectingFmt  = "Injecting into: %s"
	ShimInjected      = "Injection successful"
	ShimFailedFmt     = "cannot inject shim into %s: %w"
	ShimReplacingFmt  = "Replacing existing shim %s:\n%s"
	ShimReadFailedFmt = "Could not read existing shim %s: %v"
	ShimsDone         = "Shims injected"

	ProcAttemptKillFmt    = "Attempting to kill %s"
	ProcNotRunningFmt     = "%s is not running"
	ProcKilledFmt         = "Killed %s (pid %d)"
	ProcRelaunchingFmt    = "Relaunching %s"
	ProcFindFailedFmt     = "find processes named %s: %w"
	ProcKillFailedFmt     = "kill process %d: %w"
	ProcRelaunchFailedFmt = "relaunch %s: %w"
	ProcNoExecutableFmt   = "cannot resolve the executable of process %d; not killing it"
	ProcCannotKillFmt     = "Could not kill %s: %v"
	ProcAmbiguousFmt      = "ambiguous process match for %s: %d candidate parent processes"
	ProcRestarted         = "Discord restarted"
	ProcStopped           = "Discord closed"
	ProcRestartNotice     = "Discord could not be restarted; a manual restart is required"

	OrchestratorFailedFmt    = "Installation failed: %v"
	OrchestratorSucceeded    = "Installation completed"
	OrchestratorStateFailed  = "failed"
	OrchestratorUnknownState = "unknown"
)
