package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/betterdiscord/installer-cli/internal/messages"
	"github.com/betterdiscord/installer-cli/internal/runlog"
)

type release struct {
	TagName string         `json:"tag_name"`
	Assets  []releaseAsset `json:"assets"`
}

type releaseAsset struct {
	Name               string `json:"name"`
	URL                string `json:"url"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type latestAsset struct {
	url string
	tag string
}

// resolveAsset reads the release index and returns the package asset of the most
// recent release.
func (f *Fetcher) resolveAsset(ctx context.Context) (latestAsset, error) {
	body, _, _, err := f.get(ctx, f.opts.ReleaseAPI, "application/vnd.github+json")
	if err != nil {
		return latestAsset{}, fmt.Errorf("%w: %w", ErrNoResponse, err)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return latestAsset{}, ErrNoBody
	}
	var releases []release
	if err := json.Unmarshal(trimmed, &releases); err != nil {
		return latestAsset{}, fmt.Errorf("%w: %w", ErrNoBody, err)
	}
	return selectAsset(releases, f.opts.AssetName)
}

// selectAsset finds assetName (case-insensitively) in the first release only.
func selectAsset(releases []release, assetName string) (latestAsset, error) {
	if len(releases) == 0 {
		return latestAsset{}, ErrNoReleaseList
	}
	latest := releases[0]
	for _, asset := range latest.Assets {
		if !strings.EqualFold(asset.Name, assetName) {
			continue
		}
		url := asset.URL
		if url == "" {
			url = asset.BrowserDownloadURL
		}
		if url == "" {
			return latestAsset{}, ErrNoAssetURL
		}
		return latestAsset{url: url, tag: latest.TagName}, nil
	}
	return latestAsset{}, ErrNoMatchingAsset
}

// normalizeVersion strips tag decoration ("v1.2.3" → "1.2.3") when the tag is a
// semantic version and keeps it verbatim otherwise.
func normalizeVersion(log *runlog.Log, tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return messages.FetchUnknownVersion
	}
	v, err := goversion.NewVersion(tag)
	if err != nil {
		log.Debugf(messages.FetchUnparsableVersionFmt, tag)
		return tag
	}
	return v.String()
}
