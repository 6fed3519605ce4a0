package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level logging.Level

// Verbosity levels, from most to least verbose.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = [...]string{"debug", "info", "notice", "warning", "error"}

var backendLevels = [...]logging.Level{
	logging.DEBUG,
	logging.INFO,
	logging.NOTICE,
	logging.WARNING,
	logging.ERROR,
}

func (l Level) String() string {
	if int(l) < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

func (l Level) backend() logging.Level {
	if int(l) < 0 || int(l) >= len(backendLevels) {
		return logging.ERROR
	}
	return backendLevels[l]
}

// Parse a level name such as "debug" or "warning".
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for index, levelName := range levelNames {
		if name == levelName {
			return Level(index), nil
		}
	}
	return Error, fmt.Errorf("log: unknown level %q", name)
}

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05.000} %{level:.4s} %{module:-12s}%{color:reset} %{message}`,
)

var (
	leveledBackend logging.LeveledBackend

	// Verbosity applied to modules without an explicit override.
	defaultLevel = Notice

	// Per-module overrides; they survive sink changes.
	moduleLevels = map[string]Level{}
)

type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Module names are lowercase with dashes instead of spaces, so that
// "Wavefront reader" and "wavefront-reader" address the same logger.
func moduleName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(moduleName(name))
}

// Replace the output sink. Configured verbosity levels are kept.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))
	logging.SetBackend(leveledBackend)

	leveledBackend.SetLevel(defaultLevel.backend(), "")
	for module, level := range moduleLevels {
		leveledBackend.SetLevel(level.backend(), module)
	}
}

// Set the verbosity of every module without an override.
func SetLevel(level Level) {
	defaultLevel = level
	leveledBackend.SetLevel(level.backend(), "")
}

// Override the verbosity of a single module. For example, the k-d tree build
// statistics can be enabled with SetModuleLevel("kdtree", Debug) while the
// rest of the output stays quiet.
func SetModuleLevel(name string, level Level) {
	module := moduleName(name)
	moduleLevels[module] = level
	leveledBackend.SetLevel(level.backend(), module)
}

// Drop all module overrides and restore the default verbosity.
func Reset() {
	for module := range moduleLevels {
		delete(moduleLevels, module)
	}
	SetLevel(Notice)
	SetSink(os.Stdout)
}

func init() {
	SetSink(os.Stdout)
}
