package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betterdiscord/installer-cli/internal/runlog"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

type packageServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []*http.Request

	primaryStatus int
	index         string
	indexStatus   int
	assetStatus   int
	assetBody     string
}

func newPackageServer(t *testing.T) *packageServer {
	t.Helper()
	s := &packageServer{
		primaryStatus: http.StatusOK,
		indexStatus:   http.StatusOK,
		assetStatus:   http.StatusOK,
		assetBody:     "asset-bytes",
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/Download/betterdiscord.asar", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Header().Set("x-bd-version", "1.10.0")
		w.WriteHeader(s.primaryStatus)
		_, _ = w.Write([]byte("primary-bytes"))
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		http.Redirect(w, r, "/Download/betterdiscord.asar", http.StatusFound)
	})
	mux.HandleFunc("/releases", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.indexStatus)
		_, _ = w.Write([]byte(strings.ReplaceAll(s.index, "{{base}}", s.URL)))
	})
	mux.HandleFunc("/asset", func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.WriteHeader(s.assetStatus)
		_, _ = w.Write([]byte(s.assetBody))
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *packageServer) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r)
}

func (s *packageServer) paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, r.URL.Path)
	}
	return out
}

func (s *packageServer) options() Options {
	return Options{
		DownloadURL:   s.URL + "/Download/betterdiscord.asar",
		ReleaseAPI:    s.URL + "/releases",
		AssetName:     "betterdiscord.asar",
		VersionHeader: "x-bd-version",
		UserAgent:     "BetterDiscord/Installer",
		Client:        s.Client(),
	}
}

// failPrimary makes requests to the primary path fail at the transport level.
func failPrimary(opts Options, base http.RoundTripper) Options {
	opts.Client = &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if strings.HasPrefix(req.URL.Path, "/Download/") {
			return nil, errors.New("connection refused")
		}
		return base.RoundTrip(req)
	})}
	return opts
}

func releaseIndex(tag string, assets ...string) string {
	parts := make([]string, 0, len(assets))
	for _, name := range assets {
		parts = append(parts, fmt.Sprintf(`{"name":%q,"url":"{{base}}/asset"}`, name))
	}
	return fmt.Sprintf(`[{"tag_name":%q,"assets":[%s]},{"tag_name":"v0.0.1","assets":[{"name":"betterdiscord.asar","url":"{{base}}/old"}]}]`, tag, strings.Join(parts, ","))
}

func TestFetchPrimary(t *testing.T) {
	srv := newPackageServer(t)
	log := runlog.Discard()

	result, err := New(srv.options()).Fetch(context.Background(), log)
	require.NoError(t, err)

	assert.Equal(t, "primary-bytes", string(result.Bytes))
	assert.Equal(t, "1.10.0", result.Version)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, SourcePrimary, result.Source)
	assert.Equal(t, []string{"/Download/betterdiscord.asar"}, srv.paths())
	assert.Equal(t, "BetterDiscord/Installer", srv.requests[0].Header.Get("User-Agent"))
	assert.Equal(t, "application/octet-stream", srv.requests[0].Header.Get("Accept"))
	assert.Equal(t, []string{"✅ Downloaded BetterDiscord version 1.10.0 from the official website"}, log.Lines())
}

func TestFetchPrimaryFollowsRedirects(t *testing.T) {
	srv := newPackageServer(t)
	opts := srv.options()
	opts.DownloadURL = srv.URL + "/redirect"

	result, err := New(opts).Fetch(context.Background(), runlog.Discard())
	require.NoError(t, err)
	assert.Equal(t, "primary-bytes", string(result.Bytes))
}

func TestFetchFallsBackOnNetworkError(t *testing.T) {
	srv := newPackageServer(t)
	srv.index = releaseIndex("v1.9.3", "renderer.js", "Package.ASAR")
	opts := srv.options()
	opts.AssetName = "package.asar"
	opts = failPrimary(opts, srv.Client().Transport)
	log := runlog.Discard()

	result, err := New(opts).Fetch(context.Background(), log)
	require.NoError(t, err)

	assert.Equal(t, "asset-bytes", string(result.Bytes))
	assert.Equal(t, "1.9.3", result.Version)
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, srv.URL+"/asset", result.URL)
	assert.Equal(t, []string{"/releases", "/asset"}, srv.paths())
	assert.Equal(t, "application/octet-stream", srv.requests[1].Header.Get("Accept"))

	lines := log.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "connection refused")
	assert.Equal(t, "Falling back to GitHub...", lines[1])
	assert.Equal(t, "✅ Downloaded BetterDiscord version 1.9.3 from GitHub", lines[2])
}

func TestFetchFallsBackOnBadStatus(t *testing.T) {
	srv := newPackageServer(t)
	srv.primaryStatus = http.StatusServiceUnavailable
	srv.index = releaseIndex("v1.9.3", "betterdiscord.asar")

	result, err := New(srv.options()).Fetch(context.Background(), runlog.Discard())
	require.NoError(t, err)
	assert.Equal(t, "asset-bytes", string(result.Bytes))
	assert.Equal(t, []string{"/Download/betterdiscord.asar", "/releases", "/asset"}, srv.paths())
}

func TestFetchFallbackDiagnostics(t *testing.T) {
	tests := []struct {
		name        string
		index       string
		indexStatus int
		want        error
	}{
		{name: "index unavailable", index: `{"message":"Not Found"}`, indexStatus: http.StatusNotFound, want: ErrNoResponse},
		{name: "empty body", index: "", want: ErrNoBody},
		{name: "null body", index: "null", want: ErrNoBody},
		{name: "not a list", index: `{"message":"API rate limit exceeded"}`, want: ErrNoBody},
		{name: "no releases", index: "[]", want: ErrNoReleaseList},
		{name: "no matching asset", index: releaseIndex("v1.9.3", "renderer.js"), want: ErrNoMatchingAsset},
		{name: "release without assets", index: `[{"tag_name":"v1.9.3"}]`, want: ErrNoMatchingAsset},
		{name: "asset without url", index: `[{"tag_name":"v1","assets":[{"name":"betterdiscord.asar"}]}]`, want: ErrNoAssetURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newPackageServer(t)
			srv.index = tt.index
			if tt.indexStatus != 0 {
				srv.indexStatus = tt.indexStatus
			}
			opts := failPrimary(srv.options(), srv.Client().Transport)

			result, err := New(opts).Fetch(context.Background(), runlog.Discard())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, result.Bytes)
			assert.Contains(t, err.Error(), srv.URL+"/releases")
			assert.NotContains(t, srv.paths(), "/asset")
		})
	}
}

func TestFetchAssetDownloadFailureNamesURL(t *testing.T) {
	srv := newPackageServer(t)
	srv.index = releaseIndex("v1.9.3", "betterdiscord.asar")
	srv.assetStatus = http.StatusNotFound
	opts := failPrimary(srv.options(), srv.Client().Transport)

	result, err := New(opts).Fetch(context.Background(), runlog.Discard())
	require.Error(t, err)
	assert.Nil(t, result.Bytes)
	assert.Contains(t, err.Error(), srv.URL+"/asset")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	srv := newPackageServer(t)
	srv.index = releaseIndex("v1.9.3", "betterdiscord.asar")
	opts := srv.options()
	opts.MaxBytes = 5
	log := runlog.Discard()

	result, err := New(opts).Fetch(context.Background(), log)
	require.Error(t, err)
	assert.Nil(t, result.Bytes)
	assert.ErrorIs(t, err, ErrNoResponse)
	var tooLarge *TooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, int64(5), tooLarge.Limit)
	assert.Contains(t, log.Lines()[0], "exceeds 5 bytes")
}

func TestFetchFallsBackWithoutVersionHeader(t *testing.T) {
	srv := newPackageServer(t)
	srv.index = releaseIndex("v1.9.3", "betterdiscord.asar")
	opts := srv.options()
	opts.VersionHeader = "x-missing"
	log := runlog.Discard()

	result, err := New(opts).Fetch(context.Background(), log)
	require.NoError(t, err)

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, "asset-bytes", string(result.Bytes))
	assert.Equal(t, "1.9.3", result.Version)
	assert.Equal(t, []string{"/Download/betterdiscord.asar", "/releases", "/asset"}, srv.paths())
	assert.Contains(t, log.Lines()[0], "missing the version header: x-missing")
}

func TestFetchPrimaryWithoutConfiguredHeader(t *testing.T) {
	srv := newPackageServer(t)
	opts := srv.options()
	opts.VersionHeader = ""

	result, err := New(opts).Fetch(context.Background(), runlog.Discard())
	require.NoError(t, err)
	assert.Equal(t, SourcePrimary, result.Source)
	assert.Equal(t, "unknown", result.Version)
}

func TestNormalizeVersionKeepsNonSemverTags(t *testing.T) {
	assert.Equal(t, "nightly-2024", normalizeVersion(runlog.Discard(), "nightly-2024"))
	assert.Equal(t, "1.2.3", normalizeVersion(runlog.Discard(), "v1.2.3"))
	assert.Equal(t, "unknown", normalizeVersion(runlog.Discard(), " "))
}
