package logger

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// Logger is a subsystem logger. All messages are written through the
// shared Backend, tagged with the subsystem tag.
type Logger struct {
	lvl       Level // atomic
	tag       string
	b         *Backend
	writeChan chan<- logEntry
}

type logEntry struct {
	log   []byte
	level Level
}

// defaultBackendLog is the default backend used by subsystem loggers
// registered through RegisterSubSystem.
var defaultBackendLog = NewBackend()

var subsystemLoggers = make(map[string]*Logger)

// RegisterSubSystem returns a logger for the given subsystem tag,
// creating it on the default backend if it wasn't registered before.
func RegisterSubSystem(subsystemTag string) *Logger {
	logger, ok := subsystemLoggers[subsystemTag]
	if !ok {
		logger = defaultBackendLog.Logger(subsystemTag)
		subsystemLoggers[subsystemTag] = logger
	}
	return logger
}

// SetLogLevels sets the logging level of all registered subsystems to the
// given level.
func SetLogLevels(level Level) {
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}

// SetLogLevelsString sets the logging level of all registered subsystems
// to the level described by the given string.
func SetLogLevelsString(levelString string) error {
	level, ok := LevelFromString(levelString)
	if !ok {
		return errors.Errorf("invalid log level %s", levelString)
	}
	SetLogLevels(level)
	return nil
}

// InitLogStdout attaches the default backend to standard output at the
// given level and starts it.
func InitLogStdout(level Level) {
	err := defaultBackendLog.AddLogWriter(os.Stdout, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the logger for level %s: %s", level, err)
		os.Exit(1)
	}
	err = defaultBackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}

// InitLog attaches the default backend to stdout, a log file and an error
// log file, then starts it.
func InitLog(logFile, errLogFile string) {
	err := defaultBackendLog.AddLogWriter(os.Stdout, LevelDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stdout to the logger for level %s: %s", LevelDebug, err)
		os.Exit(1)
	}
	err = defaultBackendLog.AddLogFile(logFile, LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, LevelTrace, err)
		os.Exit(1)
	}
	err = defaultBackendLog.AddLogFile(errLogFile, LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, LevelWarn, err)
		os.Exit(1)
	}
	err = defaultBackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}

// Close shuts the default backend down, flushing any pending entries.
func Close() {
	defaultBackendLog.Close()
}

func (l *Logger) write(logLevel Level, format *string, args ...interface{}) {
	if l.b == nil || !l.b.IsRunning() {
		return
	}

	t := time.Now()

	var file string
	var line int
	if l.b.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		var ok bool
		_, file, line, ok = runtime.Caller(calldepth)
		if !ok {
			file = "???"
			line = 0
		} else if l.b.flag&LogFlagShortFile != 0 {
			for i := len(file) - 1; i > 0; i-- {
				if os.IsPathSeparator(file[i]) {
					file = file[i+1:]
					break
				}
			}
		}
	}

	buf := make([]byte, 0, normalLogSize)
	formatHeader(&buf, t, logLevel.String(), l.tag, file, line)
	if format == nil {
		buf = append(buf, fmt.Sprintln(args...)...)
	} else {
		buf = append(buf, fmt.Sprintf(*format, args...)...)
		buf = append(buf, '\n')
	}

	l.writeChan <- logEntry{log: buf, level: logLevel}
}

const calldepth = 3

// formatHeader writes a log header to buf in the following format:
//     2009-01-23 01:23:23.123 [LVL] TAG file:line:
// where the file:line part is present only when a file flag is set.
func formatHeader(buf *[]byte, t time.Time, lvl, tag string, file string, line int) {
	*buf = append(*buf, t.Format("2006-01-02 15:04:05.000")...)
	*buf = append(*buf, " ["...)
	*buf = append(*buf, lvl...)
	*buf = append(*buf, "] "...)
	*buf = append(*buf, tag...)
	if file != "" {
		*buf = append(*buf, " "...)
		*buf = append(*buf, file...)
		*buf = append(*buf, ':')
		*buf = append(*buf, fmt.Sprintf("%d", line)...)
	}
	*buf = append(*buf, ": "...)
}

// Trace formats a message using the default format and writes it at
// LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.Write(LevelTrace, args...)
}

// Tracef formats a message according to a format specifier and writes it
// at LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Writef(LevelTrace, format, args...)
}

// Debug formats a message using the default format and writes it at
// LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.Write(LevelDebug, args...)
}

// Debugf formats a message according to a format specifier and writes it
// at LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Writef(LevelDebug, format, args...)
}

// Info formats a message using the default format and writes it at
// LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.Write(LevelInfo, args...)
}

// Infof formats a message according to a format specifier and writes it
// at LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Writef(LevelInfo, format, args...)
}

// Warn formats a message using the default format and writes it at
// LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.Write(LevelWarn, args...)
}

// Warnf formats a message according to a format specifier and writes it
// at LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Writef(LevelWarn, format, args...)
}

// Error formats a message using the default format and writes it at
// LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.Write(LevelError, args...)
}

// Errorf formats a message according to a format specifier and writes it
// at LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Writef(LevelError, format, args...)
}

// Critical formats a message using the default format and writes it at
// LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	l.Write(LevelCritical, args...)
}

// Criticalf formats a message according to a format specifier and writes
// it at LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.Writef(LevelCritical, format, args...)
}

// Write formats a message using the default format and writes it at the
// given level.
func (l *Logger) Write(logLevel Level, args ...interface{}) {
	lvl := l.Level()
	if lvl <= logLevel {
		l.write(logLevel, nil, args...)
	}
}

// Writef formats a message according to a format specifier and writes it
// at the given level.
func (l *Logger) Writef(logLevel Level, format string, args ...interface{}) {
	lvl := l.Level()
	if lvl <= logLevel {
		l.write(logLevel, &format, args...)
	}
}

// Level returns the current logging level of the logger.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level of the logger.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(level))
}

// Backend returns the backend of the logger.
func (l *Logger) Backend() *Backend {
	return l.b
}
