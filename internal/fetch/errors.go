package fetch

import (
	"errors"
	"fmt"

	"github.com/betterdiscord/installer-cli/internal/messages"
)

// Fallback diagnostics. Each is wrapped into the error returned by Fetch so callers
// can tell them apart with errors.Is.
var (
	ErrNoResponse      = errors.New(messages.FetchNoResponse)
	ErrNoBody          = errors.New(messages.FetchNoBody)
	ErrNoReleaseList   = errors.New(messages.FetchNoReleaseList)
	ErrNoMatchingAsset = errors.New(messages.FetchNoMatchingAsset)
	ErrNoAssetURL      = errors.New(messages.FetchNoAssetURL)
)

// ErrMissingVersionHeader marks a primary response without the configured version header.
var ErrMissingVersionHeader = errors.New(messages.FetchNoVersionHeader)

// StatusError reports a response whose status code is outside 200–299.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(messages.FetchStatusFmt, e.StatusCode)
}

// TooLargeError reports a response body above the configured limit.
type TooLargeError struct {
	URL   string
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf(messages.FetchTooLargeFmt, e.URL, e.Limit)
}
