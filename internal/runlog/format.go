package runlog

import (
	"bytes"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

var (
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.Faint)
	titleColor = color.New(color.Bold)
)

// ConsoleFormatter renders entries as one status line each.
type ConsoleFormatter struct{}

// Format implements logrus.Formatter.
func (f *ConsoleFormatter) Format(entry *log.Entry) ([]byte, error) {
	var b bytes.Buffer
	if isSection(entry) {
		b.WriteString("\n")
		b.WriteString(titleColor.Sprint(entry.Message))
		b.WriteString("\n")
		return b.Bytes(), nil
	}
	line := symbolFor(entry) + entry.Message
	switch {
	case isPlain(entry):
	case entry.Level == log.InfoLevel:
		line = okColor.Sprint(line)
	case entry.Level == log.WarnLevel:
		line = warnColor.Sprint(line)
	case entry.Level <= log.ErrorLevel:
		line = errorColor.Sprint(line)
	default:
		line = debugColor.Sprint(line)
	}
	b.WriteString(line)
	b.WriteString("\n")
	return b.Bytes(), nil
}

func symbolFor(entry *log.Entry) string {
	if isSection(entry) || isPlain(entry) {
		return ""
	}
	switch entry.Level {
	case log.InfoLevel:
		return "✅ "
	case log.WarnLevel:
		return "⚠️ "
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		return "❌ "
	default:
		return "   "
	}
}

func isSection(entry *log.Entry) bool {
	v, ok := entry.Data[sectionField].(bool)
	return ok && v
}

func isPlain(entry *log.Entry) bool {
	v, ok := entry.Data[plainField].(bool)
	return ok && v
}
