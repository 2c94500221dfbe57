// Package log provides leveled, module-named loggers shared by every engine package.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/op/go-logging"
)

// Level is the verbosity threshold applied to every module logger.
type Level int

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var (
	mu             sync.Mutex
	leveledBackend logging.LeveledBackend
	currentLevel   = Notice
)

// Logger is the leveled logging surface used by the engine packages.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a logger tagged with the given module name.
//
// Parameters:
//   - module: the name printed in the [module] column of every line
//
// Returns:
//   - Logger: the named logger
func New(module string) Logger {
	return logging.MustGetLogger(module)
}

// SetSink redirects all log output to the given writer, keeping the current level.
//
// Parameters:
//   - sink: the destination for formatted log lines
func SetSink(sink io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	backend := logging.NewLogBackend(sink, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(formatted)
	leveledBackend.SetLevel(toLoggingLevel(currentLevel), "")
	logging.SetBackend(leveledBackend)
}

// SetLevel changes the verbosity of every module logger.
//
// Parameters:
//   - level: the minimum level that will be written
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()

	currentLevel = level
	leveledBackend.SetLevel(toLoggingLevel(level), "")
}

// LevelFromVerbosity maps a count of -v flags to a Level.
// Zero keeps the Notice default, one selects Info and two or more select Debug.
//
// Parameters:
//   - verbosity: the number of verbosity flags supplied
//
// Returns:
//   - Level: the matching level
func LevelFromVerbosity(verbosity int) Level {
	switch {
	case verbosity >= 2:
		return Debug
	case verbosity == 1:
		return Info
	default:
		return Notice
	}
}

func toLoggingLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

func init() {
	SetSink(os.Stderr)
}
