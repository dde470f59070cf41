// Package runlog provides the per-run install log: console output, an in-memory
// line buffer for the final report and an optional rotating log file.
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/betterdiscord/installer-cli/internal/messages"
)

const (
	sectionField = "section"
	plainField   = "plain"
)

// Options configures a run log.
type Options struct {
	// Out receives console output. Nil discards it.
	Out io.Writer
	// Level is a logrus level name; empty means info.
	Level string
	// File, when set, also appends entries to a rotated log file.
	File string
	// RunID is attached to every file entry.
	RunID string
}

// Log is the log of a single install run.
type Log struct {
	logger *log.Logger
	entry  *log.Entry
	buffer *bufferHook
	file   *lumberjack.Logger
}

// New creates a run log.
func New(opts Options) (*Log, error) {
	level := log.InfoLevel
	if strings.TrimSpace(opts.Level) != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf(messages.ConfigInvalidLogLevelFmt, opts.Level, err)
		}
		level = parsed
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := log.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	logger.SetFormatter(&ConsoleFormatter{})

	l := &Log{logger: logger, buffer: &bufferHook{}}
	logger.AddHook(l.buffer)

	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   filepath.ToSlash(opts.File),
			MaxSize:    5, // MB
			MaxBackups: 10,
			MaxAge:     30, // days
		}
		logger.AddHook(&fileHook{out: l.file, formatter: &log.TextFormatter{DisableColors: true, FullTimestamp: true}})
	}

	l.entry = logger.WithFields(log.Fields{})
	if opts.RunID != "" {
		l.entry = logger.WithField("run", opts.RunID)
	}
	return l, nil
}

// Discard returns a log that keeps the line buffer but prints nothing.
func Discard() *Log {
	l, _ := New(Options{})
	return l
}

// Section starts a new stage in the log, preceded by a blank line on the console.
func (l *Log) Section(msg string) {
	l.entry.WithField(sectionField, true).Info(msg)
}

// Printf logs a neutral progress line.
func (l *Log) Printf(format string, args ...interface{}) {
	l.entry.WithField(plainField, true).Infof(format, args...)
}

// Infof logs a completed step.
func (l *Log) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warnf logs a step that failed without failing the run.
func (l *Log) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Errorf logs a failed step.
func (l *Log) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Debugf logs detail only shown at debug level.
func (l *Log) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Lines returns a copy of every line logged so far.
func (l *Log) Lines() []string {
	return l.buffer.snapshot()
}

// Close flushes and closes the log file, if any.
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// bufferHook records each entry as a plain line.
type bufferHook struct {
	mu    sync.Mutex
	lines []string
}

func (h *bufferHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *bufferHook) Fire(entry *log.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = append(h.lines, symbolFor(entry)+entry.Message)
	return nil
}

func (h *bufferHook) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// fileHook writes entries to a secondary output with its own formatter.
type fileHook struct {
	out       io.Writer
	formatter log.Formatter
}

func (h *fileHook) Levels() []log.Level {
	return log.AllLevels
}

func (h *fileHook) Fire(entry *log.Entry) error {
	data, err := h.formatter.Format(entry)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "format log entry: %v\n", err)
		return err
	}
	_, err = h.out.Write(data)
	return err
}
