// Package fetch downloads the BetterDiscord package, falling back from the official
// website to the latest GitHub release.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/betterdiscord/installer-cli/internal/messages"
	"github.com/betterdiscord/installer-cli/internal/runlog"
)

const defaultMaxBytes = int64(100 * 1024 * 1024) // 100 MiB

// Source names where a Result came from.
type Source string

// Package sources.
const (
	SourcePrimary  Source = "website"
	SourceFallback Source = "github"
)

// HTTPClient is the subset of *http.Client the fetcher uses.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Fetcher.
type Options struct {
	DownloadURL   string
	ReleaseAPI    string
	AssetName     string
	VersionHeader string
	UserAgent     string
	// MaxBytes caps each response body; zero means 100 MiB.
	MaxBytes int64
	// Client performs requests; nil uses a client with no timeout that follows redirects.
	Client HTTPClient
}

// Result is a fully downloaded package.
type Result struct {
	Bytes      []byte
	Version    string
	StatusCode int
	Source     Source
	URL        string
}

// Fetcher retrieves the package bytes.
type Fetcher struct {
	opts Options
}

// New returns a Fetcher.
func New(opts Options) *Fetcher {
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaultMaxBytes
	}
	return &Fetcher{opts: opts}
}

// Fetch downloads the package from the primary URL. Any primary failure is logged
// and replaced by a single attempt through the release index; failures there are
// returned. No partial bytes are returned with an error.
func (f *Fetcher) Fetch(ctx context.Context, log *runlog.Log) (Result, error) {
	result, err := f.fetchPrimary(ctx)
	if err == nil {
		log.Infof(messages.FetchPrimaryOKFmt, result.Version)
		return result, nil
	}
	log.Warnf(messages.FetchPrimaryFailedFmt, err)
	log.Printf(messages.FetchFallingBack)

	asset, err := f.resolveAsset(ctx)
	if err != nil {
		err = fmt.Errorf(messages.FetchIndexFailedFmt, f.opts.ReleaseAPI, err)
		log.Errorf("%v", err)
		return Result{}, err
	}
	body, status, _, err := f.get(ctx, asset.url, "application/octet-stream")
	if err != nil {
		err = fmt.Errorf(messages.FetchAssetFailedFmt, asset.url, err)
		log.Errorf("%v", err)
		return Result{}, err
	}
	version := normalizeVersion(log, asset.tag)
	log.Infof(messages.FetchAssetOKFmt, version)
	return Result{Bytes: body, Version: version, StatusCode: status, Source: SourceFallback, URL: asset.url}, nil
}

func (f *Fetcher) fetchPrimary(ctx context.Context) (Result, error) {
	body, status, header, err := f.get(ctx, f.opts.DownloadURL, "application/octet-stream")
	if err != nil {
		return Result{}, err
	}
	version := messages.FetchUnknownVersion
	if f.opts.VersionHeader != "" {
		version = strings.TrimSpace(header.Get(f.opts.VersionHeader))
		if version == "" {
			return Result{}, fmt.Errorf("%w: %s", ErrMissingVersionHeader, f.opts.VersionHeader)
		}
	}
	return Result{Bytes: body, Version: version, StatusCode: status, Source: SourcePrimary, URL: f.opts.DownloadURL}, nil
}

// get performs a GET and returns the whole body for 2xx responses.
func (f *Fetcher) get(ctx context.Context, url string, accept string) ([]byte, int, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, nil, fmt.Errorf(messages.FetchCreateRequestFmt, url, err)
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := f.opts.Client.Do(req)
	if err != nil {
		return nil, 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, resp.Header, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.opts.MaxBytes+1))
	if err != nil {
		return nil, resp.StatusCode, resp.Header, fmt.Errorf(messages.FetchReadBodyFmt, url, err)
	}
	if int64(len(body)) > f.opts.MaxBytes {
		return nil, resp.StatusCode, resp.Header, &TooLargeError{URL: url, Limit: f.opts.MaxBytes}
	}
	return body, resp.StatusCode, resp.Header, nil
}
