package orchestrator

import "github.com/betterdiscord/installer-cli/internal/messages"

// State is a step of the install state machine.
type State int

const (
	Idle State = iota
	SanityChecking
	ProvisioningDirs
	Fetching
	Installing
	Injecting
	Restarting
	Succeeded
	Failed
)

var stateNames = map[State]string{
	Idle:             "idle",
	SanityChecking:   "sanity-checking",
	ProvisioningDirs: "provisioning-dirs",
	Fetching:         "fetching",
	Installing:       "installing",
	Injecting:        "injecting",
	Restarting:       "restarting",
	Succeeded:        "succeeded",
	Failed:           messages.OrchestratorStateFailed,
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return messages.OrchestratorUnknownState
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == Succeeded || s == Failed
}
