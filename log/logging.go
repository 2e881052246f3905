package log

import (
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tevino/abool"
)

// concept
/*
- Logging function:
  - check if level is active
  - send data to backend via big buffered channel
- Backend:
  - wait until there are logs to write
  - write logs to the configured output
- Channel overbuffering protection:
  - if buffer is full, write synchronously
- Logs created before Start are buffered and written once the writer runs.
*/

// Severity describes a log level.
type Severity uint32

type logLine struct {
	msg       string
	level     Severity
	timestamp time.Time
	file      string
	line      int
}

// Log Levels.
const (
	TraceLevel    Severity = 1
	DebugLevel    Severity = 2
	InfoLevel     Severity = 3
	WarningLevel  Severity = 4
	ErrorLevel    Severity = 5
	CriticalLevel Severity = 6
)

var (
	logBuffer   chan *logLine
	logsWaiting = make(chan struct{}, 1)

	logLevelInt = uint32(InfoLevel)
	logLevel    = &logLevelInt

	outputLock sync.Mutex
	output     io.Writer = os.Stdout
	useColor             = false

	started      = abool.NewBool(false)
	shutdownFlag = abool.NewBool(false)
	shutdownSig  chan struct{}
	writerDone   chan struct{}

	// ErrAlreadyStarted is returned by Start if logging is already running.
	ErrAlreadyStarted = errors.New("log: already started")
)

// Counters of log lines written per severity.
var (
	warnLogLines     uint64
	errLogLines      uint64
	critLogLines     uint64
	droppedLogLines  uint64
	bufferSize       = 1024
	shutdownDeadline = 100 * time.Millisecond
)

func init() {
	logBuffer = make(chan *logLine, bufferSize)
}

// SetLogLevel sets a new log level. Only the log level and above are logged.
func SetLogLevel(level Severity) {
	atomic.StoreUint32(logLevel, uint32(level))
}

// GetLogLevel returns the current log level.
func GetLogLevel() Severity {
	return Severity(atomic.LoadUint32(logLevel))
}

// ParseLevel returns the level severity of a log level name, or 0 if the name is unknown.
func ParseLevel(level string) Severity {
	switch strings.ToLower(level) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warning", "warn":
		return WarningLevel
	case "error":
		return ErrorLevel
	case "critical":
		return CriticalLevel
	}
	return 0
}

// SetOutput sets the writer log lines are written to. Colors are only used for terminals.
func SetOutput(w io.Writer, color bool) {
	outputLock.Lock()
	defer outputLock.Unlock()

	output = w
	useColor = color
}

// Start starts the log writer.
func Start() error {
	if !started.SetToIf(false, true) {
		return ErrAlreadyStarted
	}
	shutdownFlag.UnSet()

	shutdownSig = make(chan struct{})
	writerDone = make(chan struct{})
	go writer(shutdownSig, writerDone)

	return nil
}

// Shutdown writes all pending log lines and stops the log writer.
func Shutdown() {
	if !started.IsSet() || !shutdownFlag.SetToIf(false, true) {
		return
	}

	close(shutdownSig)
	select {
	case <-writerDone:
	case <-time.After(shutdownDeadline):
	}
	started.UnSet()
}

// TotalWarningLogLines returns the total amount of warning log lines since start of the program.
func TotalWarningLogLines() uint64 {
	return atomic.LoadUint64(&warnLogLines)
}

// TotalErrorLogLines returns the total amount of error log lines since start of the program.
func TotalErrorLogLines() uint64 {
	return atomic.LoadUint64(&errLogLines)
}

// TotalCriticalLogLines returns the total amount of critical log lines since start of the program.
func TotalCriticalLogLines() uint64 {
	return atomic.LoadUint64(&critLogLines)
}

// TotalDroppedLogLines returns the amount of log lines dropped because the buffer was full before Start.
func TotalDroppedLogLines() uint64 {
	return atomic.LoadUint64(&droppedLogLines)
}
