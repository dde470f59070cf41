package procctl

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/betterdiscord/installer-cli/internal/config"
)

// Platform holds the OS-specific naming and path rules for Discord processes.
type Platform interface {
	// ProcessName returns the process name Discord runs under for variant.
	ProcessName(variant config.Variant) string
	// BinaryFromDiscoveredPath maps a discovered executable path to the path to relaunch.
	BinaryFromDiscoveredPath(path string) string
}

// CurrentPlatform returns the Platform for the running OS.
func CurrentPlatform() Platform {
	return PlatformFor(runtime.GOOS)
}

// PlatformFor returns the Platform for goos.
func PlatformFor(goos string) Platform {
	if goos == "darwin" {
		return darwinPlatform{}
	}
	return defaultPlatform{}
}

// darwinPlatform keeps the space in "Discord Canary" and relaunches the .app bundle,
// which sits three levels above Contents/MacOS/<binary>.
type darwinPlatform struct{}

func (darwinPlatform) ProcessName(variant config.Variant) string {
	return variant.DisplayName()
}

func (darwinPlatform) BinaryFromDiscoveredPath(path string) string {
	return filepath.Clean(filepath.Join(path, "..", "..", ".."))
}

// defaultPlatform covers Windows and Linux, where the executable is "DiscordCanary".
type defaultPlatform struct{}

func (defaultPlatform) ProcessName(variant config.Variant) string {
	return strings.Replace(variant.DisplayName(), " ", "", 1)
}

func (defaultPlatform) BinaryFromDiscoveredPath(path string) string {
	return path
}
