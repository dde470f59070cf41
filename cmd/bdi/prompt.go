package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/betterdiscord/installer-cli/internal/config"
	"github.com/betterdiscord/installer-cli/internal/messages"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// confirmKeyMap lets both Esc and Ctrl+C cancel the prompt.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", messages.InstallConfirmCancelHelp),
	)
	return km
}

// confirmTargets lists the selected installations for the prompt description.
func confirmTargets(cfg config.InstallConfig) string {
	var b strings.Builder
	for _, t := range cfg.Targets() {
		_, _ = fmt.Fprintf(&b, messages.InstallConfirmTargetFmt, t.Variant.DisplayName(), t.Path)
	}
	return strings.TrimRight(b.String(), "\n")
}

// confirmInstall asks whether to install into cfg. Cancelling the prompt counts as no.
func confirmInstall(cfg config.InstallConfig) (bool, error) {
	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(messages.InstallConfirmTitle).
				Description(confirmTargets(cfg)).
				Value(&confirmed),
		),
	)
	form.WithKeyMap(confirmKeyMap())
	form.WithProgramOptions(tea.WithOutput(os.Stderr))

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
