package orchestrator

// SanityError reports an empty or invalid install configuration. No work was attempted.
type SanityError struct{ Err error }

func (e *SanityError) Error() string { return e.Err.Error() }
func (e *SanityError) Unwrap() error { return e.Err }

// DirectoryError reports a failed directory creation. Earlier directories remain.
type DirectoryError struct{ Err error }

func (e *DirectoryError) Error() string { return e.Err.Error() }
func (e *DirectoryError) Unwrap() error { return e.Err }

// FetchError reports that both download paths failed. Nothing was installed.
type FetchError struct{ Err error }

func (e *FetchError) Error() string { return e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// WriteError reports a failed archive or shim write. Earlier shims remain.
type WriteError struct{ Err error }

func (e *WriteError) Error() string { return e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }

// ProcessError reports a failed kill or relaunch. It never fails the run.
type ProcessError struct{ Err error }

func (e *ProcessError) Error() string { return e.Err.Error() }
func (e *ProcessError) Unwrap() error { return e.Err }
