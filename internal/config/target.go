package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/betterdiscord/installer-cli/internal/messages"
)

// Target pairs a variant with the entry directory the shim is written into.
type Target struct {
	Variant Variant
	Path    string
}

// InstallConfig is the ordered variant → target path mapping handed to the orchestrator.
// Variants are unique; insertion order is preserved.
type InstallConfig struct {
	targets []Target
}

// NewInstallConfig builds an InstallConfig from targets, rejecting duplicates and invalid paths.
func NewInstallConfig(targets ...Target) (InstallConfig, error) {
	var cfg InstallConfig
	for _, t := range targets {
		if err := cfg.Add(t.Variant, t.Path); err != nil {
			return InstallConfig{}, err
		}
	}
	return cfg, nil
}

// Add appends a target. The path must be absolute and the variant not yet present.
func (c *InstallConfig) Add(variant Variant, path string) error {
	variant, err := ParseVariant(string(variant))
	if err != nil {
		return err
	}
	if c.Has(variant) {
		return fmt.Errorf(messages.ConfigDuplicateTargetFmt, variant)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf(messages.ConfigEmptyPathFmt, variant)
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf(messages.ConfigRelativePathFmt, variant, path)
	}
	c.targets = append(c.targets, Target{Variant: variant, Path: filepath.Clean(path)})
	return nil
}

// Has reports whether variant is already configured.
func (c InstallConfig) Has(variant Variant) bool {
	for _, t := range c.targets {
		if t.Variant == variant {
			return true
		}
	}
	return false
}

// Len returns the number of configured targets.
func (c InstallConfig) Len() int {
	return len(c.targets)
}

// Targets returns a copy of the configured targets in insertion order.
func (c InstallConfig) Targets() []Target {
	out := make([]Target, len(c.targets))
	copy(out, c.targets)
	return out
}

// Variants returns the configured variant keys in insertion order.
func (c InstallConfig) Variants() []Variant {
	out := make([]Variant, 0, len(c.targets))
	for _, t := range c.targets {
		out = append(out, t.Variant)
	}
	return out
}

// Paths returns the configured target paths in insertion order.
func (c InstallConfig) Paths() []string {
	out := make([]string, 0, len(c.targets))
	for _, t := range c.targets {
		out = append(out, t.Path)
	}
	return out
}
