package log

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// caller returns the source file, without extension, and line of the
// function that called the public logging function.
func caller() (string, int) {
	_, file, line, ok := runtime.Caller(4)
	if !ok {
		return "", 0
	}
	return strings.TrimSuffix(filepath.Base(file), ".go"), line
}

func countLine(level Severity) {
	switch level {
	case WarningLevel:
		atomic.AddUint64(&warnLogLines, 1)
	case ErrorLevel:
		atomic.AddUint64(&errLogLines, 1)
	case CriticalLevel:
		atomic.AddUint64(&critLogLines, 1)
	}
}

// submit queues a line for the writer. Callers have checked the level.
func submit(level Severity, msg string) {
	file, lineNo := caller()
	line := &logLine{
		msg:       msg,
		level:     level,
		timestamp: time.Now(),
		file:      file,
		line:      lineNo,
	}
	countLine(level)

	select {
	case logBuffer <- line:
	default:
		// Full buffer: write synchronously, or drop if nobody drains it.
		if started.IsSet() {
			writeLine(line)
		} else {
			atomic.AddUint64(&droppedLogLines, 1)
		}
		return
	}

	select {
	case logsWaiting <- struct{}{}:
	default:
	}
}

func enabled(level Severity) bool {
	return uint32(level) >= atomic.LoadUint32(logLevel)
}

func logMsg(level Severity, msg string) {
	if enabled(level) {
		submit(level, msg)
	}
}

func logFmt(level Severity, format string, things []interface{}) {
	if enabled(level) {
		submit(level, fmt.Sprintf(format, things...))
	}
}

// Trace logs single processing steps, such as dispatching a table operation.
func Trace(msg string) { logMsg(TraceLevel, msg) }

// Tracef logs single processing steps, such as dispatching a table operation.
func Tracef(format string, things ...interface{}) { logFmt(TraceLevel, format, things) }

// Debug logs details that help when tracking down a problem.
func Debug(msg string) { logMsg(DebugLevel, msg) }

// Debugf logs details that help when tracking down a problem.
func Debugf(format string, things ...interface{}) { logFmt(DebugLevel, format, things) }

// Info logs events a user may want to know about.
func Info(msg string) { logMsg(InfoLevel, msg) }

// Infof logs events a user may want to know about.
func Infof(format string, things ...interface{}) { logFmt(InfoLevel, format, things) }

// Warning logs unexpected events that did not stop the operation.
func Warning(msg string) { logMsg(WarningLevel, msg) }

// Warningf logs unexpected events that did not stop the operation.
func Warningf(format string, things ...interface{}) { logFmt(WarningLevel, format, things) }

// Error logs failed operations.
func Error(msg string) { logMsg(ErrorLevel, msg) }

// Errorf logs failed operations.
func Errorf(format string, things ...interface{}) { logFmt(ErrorLevel, format, things) }

// Critical logs failures that leave the program unable to continue.
func Critical(msg string) { logMsg(CriticalLevel, msg) }

// Criticalf logs failures that leave the program unable to continue.
func Criticalf(format string, things ...interface{}) { logFmt(CriticalLevel, format, things) }
