package messages

// Settings and target configuration messages.
const (
	ConfigReadFmt            = "failed to read settings file %s: %w"
	ConfigInvalidFmt         = "invalid settings file %s: %w"
	ConfigUnknownKeysFmt     = "settings file %s has unrecognized keys: %w"
	ConfigUnknownVariantFmt  = "unknown Discord variant %q (expected stable, ptb or canary)"
	ConfigDuplicateTargetFmt = "Discord variant %s was selected more than once"
	ConfigEmptyPathFmt       = "target path for %s is empty"
	ConfigRelativePathFmt    = "target path for %s must be absolute, got %q"
	ConfigExpandPathFmt      = "expand path %q: %w"
	ConfigResolveDataRootFmt = "resolve application data directory: %w"
	ConfigRequiredFieldFmt   = "settings field %s is required"
	ConfigInvalidDelayFmt    = "settings field %s must not be negative"
	ConfigInvalidLogLevelFmt = "invalid log level %q: %w"
)
