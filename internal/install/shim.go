package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/betterdiscord/installer-cli/internal/messages"
	"github.com/betterdiscord/installer-cli/internal/progress"
	"github.com/betterdiscord/installer-cli/internal/runlog"
)

// Shim defaults: the file Discord loads from each entry directory and the module
// the original entry point was moved to.
const (
	DefaultEntryFile      = "index.js"
	DefaultOriginalModule = "./core.asar"
)

var jsStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// EscapeJSString escapes s for embedding inside a double-quoted JavaScript string.
func EscapeJSString(s string) string {
	return jsStringEscaper.Replace(s)
}

// ShimSource returns the bootstrap script: load the archive, then hand the module
// exports over to the original entry point.
func ShimSource(archivePath string, originalModule string) string {
	return fmt.Sprintf("require(\"%s\");\nmodule.exports = require(\"%s\");",
		EscapeJSString(archivePath), EscapeJSString(originalModule))
}

// ShimInjector writes the bootstrap shim into entry directories.
type ShimInjector struct {
	sys            System
	entryFile      string
	originalModule string
}

// NewShimInjector returns an injector using the default entry file and module; nil sys uses the OS.
func NewShimInjector(sys System) *ShimInjector {
	if sys == nil {
		sys = RealSystem{}
	}
	return &ShimInjector{sys: sys, entryFile: DefaultEntryFile, originalModule: DefaultOriginalModule}
}

// Inject overwrites the entry file of every directory with a shim loading archivePath.
// Each directory advances tracker by an equal share of the distance to the shim
// milestone. The first failure stops the walk; shims already written stay in place.
func (s *ShimInjector) Inject(ctx context.Context, tracker *progress.Tracker, log *runlog.Log, archivePath string, entryDirs []string) error {
	step := tracker.PerItem(progress.ShimMilestone, len(entryDirs))
	content := ShimSource(archivePath, s.originalModule)
	for _, dir := range entryDirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Printf(messages.ShimInjectingFmt, dir)
		target := filepath.Join(dir, s.entryFile)
		s.logReplacement(log, target, content)
		if err := s.sys.WriteFile(target, []byte(content), 0o644); err != nil {
			err = fmt.Errorf(messages.ShimFailedFmt, dir, err)
			log.Errorf("%v", err)
			return err
		}
		log.Infof(messages.ShimInjected)
		tracker.Advance(step)
	}
	return nil
}

// logReplacement records a diff when an existing entry file is about to change.
func (s *ShimInjector) logReplacement(log *runlog.Log, target string, content string) {
	existing, err := s.sys.ReadFile(target)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Debugf(messages.ShimReadFailedFmt, target, err)
		}
		return
	}
	if string(existing) == content {
		return
	}
	diff := udiff.Unified(target+" (current)", target+" (shim)", string(existing), content)
	log.Debugf(messages.ShimReplacingFmt, target, strings.TrimRight(diff, "\n"))
}
