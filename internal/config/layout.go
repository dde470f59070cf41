package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/betterdiscord/installer-cli/internal/messages"
)

var userConfigDir = os.UserConfigDir

// Layout is the set of paths the installer writes under the application data directory.
type Layout struct {
	Root    string
	Data    string
	Plugins string
	Themes  string
	Archive string
}

// ResolveLayout derives the layout from settings. install.data_root overrides the
// platform application data directory.
func ResolveLayout(s Settings) (Layout, error) {
	base := strings.TrimSpace(s.Install.DataRoot)
	if base != "" {
		expanded, err := homedir.Expand(base)
		if err != nil {
			return Layout{}, fmt.Errorf(messages.ConfigExpandPathFmt, base, err)
		}
		base = expanded
	} else {
		dir, err := userConfigDir()
		if err != nil {
			return Layout{}, fmt.Errorf(messages.ConfigResolveDataRootFmt, err)
		}
		base = dir
	}
	return NewLayout(base, s.Install.Product, s.Source.AssetName), nil
}

// NewLayout builds a Layout rooted at <base>/<product>.
func NewLayout(base string, product string, assetName string) Layout {
	root := filepath.Join(base, product)
	data := filepath.Join(root, "data")
	return Layout{
		Root:    root,
		Data:    data,
		Plugins: filepath.Join(root, "plugins"),
		Themes:  filepath.Join(root, "themes"),
		Archive: filepath.Join(data, assetName),
	}
}

// Directories returns the directories to provision, parents first.
func (l Layout) Directories() []string {
	return []string{l.Root, l.Data, l.Themes, l.Plugins}
}
