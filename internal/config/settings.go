package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/betterdiscord/installer-cli/internal/messages"
)

// Default source and install values.
const (
	DefaultProduct       = "BetterDiscord"
	DefaultDownloadURL   = "https://betterdiscord.app/Download/betterdiscord.asar"
	DefaultReleaseAPI    = "https://api.github.com/repos/BetterDiscord/BetterDiscord/releases"
	DefaultAssetName     = "betterdiscord.asar"
	DefaultVersionHeader = "x-bd-version"
	DefaultUserAgent     = "BetterDiscord/Installer"
	DefaultExitDelay     = 2 * time.Second
	DefaultSettleDelay   = time.Second
	DefaultLogLevel      = "info"
)

// Settings is the optional installer settings file.
type Settings struct {
	Source  SourceSettings  `toml:"source"`
	Install InstallSettings `toml:"install"`
	Targets TargetSettings  `toml:"targets"`
	Log     LogSettings     `toml:"log"`
}

// SourceSettings configures where the package is downloaded from.
type SourceSettings struct {
	DownloadURL   string `toml:"download_url"`
	ReleaseAPI    string `toml:"release_api"`
	AssetName     string `toml:"asset_name"`
	VersionHeader string `toml:"version_header"`
	UserAgent     string `toml:"user_agent"`
}

// InstallSettings configures the on-disk layout and restart behaviour.
type InstallSettings struct {
	Product     string `toml:"product"`
	DataRoot    string `toml:"data_root"`
	Restart     bool   `toml:"restart"`
	ExitDelay   string `toml:"exit_delay"`
	SettleDelay string `toml:"settle_delay"`
}

// TargetSettings maps each variant to its entry directory. Empty means not selected.
type TargetSettings struct {
	Stable string `toml:"stable"`
	PTB    string `toml:"ptb"`
	Canary string `toml:"canary"`
}

// LogSettings configures the run log.
type LogSettings struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Source: SourceSettings{
			DownloadURL:   DefaultDownloadURL,
			ReleaseAPI:    DefaultReleaseAPI,
			AssetName:     DefaultAssetName,
			VersionHeader: DefaultVersionHeader,
			UserAgent:     DefaultUserAgent,
		},
		Install: InstallSettings{
			Product:     DefaultProduct,
			Restart:     true,
			ExitDelay:   DefaultExitDelay.String(),
			SettleDelay: DefaultSettleDelay.String(),
		},
		Log: LogSettings{Level: DefaultLogLevel},
	}
}

// LoadSettings reads a settings file and overlays it on Defaults.
// An empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	if strings.TrimSpace(path) == "" {
		return Defaults(), nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Settings{}, fmt.Errorf(messages.ConfigExpandPathFmt, path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return Settings{}, fmt.Errorf(messages.ConfigReadFmt, expanded, err)
	}
	return ParseSettings(data, expanded)
}

// ParseSettings parses TOML data on top of Defaults and validates the result.
// source is used in error messages.
func ParseSettings(data []byte, source string) (Settings, error) {
	settings := Defaults()
	if err := toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return Settings{}, fmt.Errorf(messages.ConfigUnknownKeysFmt, source, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	return settings, nil
}

// decodeStrict re-decodes data rejecting keys the Settings struct does not know.
func decodeStrict(data []byte) error {
	var settings Settings
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&settings)
}

// Validate checks required fields and durations.
func (s Settings) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"source.download_url", s.Source.DownloadURL},
		{"source.release_api", s.Source.ReleaseAPI},
		{"source.asset_name", s.Source.AssetName},
		{"source.user_agent", s.Source.UserAgent},
		{"install.product", s.Install.Product},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf(messages.ConfigRequiredFieldFmt, field.name)
		}
	}
	if _, err := s.ExitDelay(); err != nil {
		return err
	}
	if _, err := s.SettleDelay(); err != nil {
		return err
	}
	return nil
}

// ExitDelay returns install.exit_delay as a duration.
func (s Settings) ExitDelay() (time.Duration, error) {
	return parseDelay("install.exit_delay", s.Install.ExitDelay, DefaultExitDelay)
}

// SettleDelay returns install.settle_delay as a duration.
func (s Settings) SettleDelay() (time.Duration, error) {
	return parseDelay("install.settle_delay", s.Install.SettleDelay, DefaultSettleDelay)
}

func parseDelay(name string, raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf(messages.ConfigInvalidDelayFmt, name)
	}
	return d, nil
}

// InstallConfig builds the ordered target mapping from the [targets] table,
// expanding "~" in paths. Variants without a path are not selected.
func (s Settings) InstallConfig() (InstallConfig, error) {
	var cfg InstallConfig
	for _, variant := range AllVariants {
		raw := strings.TrimSpace(s.Targets.path(variant))
		if raw == "" {
			continue
		}
		expanded, err := homedir.Expand(raw)
		if err != nil {
			return InstallConfig{}, fmt.Errorf(messages.ConfigExpandPathFmt, raw, err)
		}
		if err := cfg.Add(variant, expanded); err != nil {
			return InstallConfig{}, err
		}
	}
	return cfg, nil
}

// SetPath overrides the entry directory for variant.
func (t *TargetSettings) SetPath(variant Variant, path string) {
	switch variant {
	case Stable:
		t.Stable = path
	case PTB:
		t.PTB = path
	case Canary:
		t.Canary = path
	}
}

func (t TargetSettings) path(variant Variant) string {
	switch variant {
	case Stable:
		return t.Stable
	case PTB:
		return t.PTB
	case Canary:
		return t.Canary
	}
	return ""
}
