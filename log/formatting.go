package log

import (
	"strconv"
	"strings"
)

const (
	timeFormat = "060102 15:04:05.000"
	rightArrow = "▶"

	// Line counter wraps after three digits.
	counterWrap = 1000
)

// counter is guarded by outputLock.
var counter int

var severityNames = map[Severity]string{
	TraceLevel:    "TRAC",
	DebugLevel:    "DEBU",
	InfoLevel:     "INFO",
	WarningLevel:  "WARN",
	ErrorLevel:    "ERRO",
	CriticalLevel: "CRIT",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return "NONE"
}

// formatLine must only be called while holding outputLock.
func formatLine(line *logLine, useColor bool) string {
	counter = (counter + 1) % counterWrap

	var b strings.Builder
	if useColor {
		b.WriteString(line.level.color())
	}
	b.WriteString(line.timestamp.Format(timeFormat))
	b.WriteByte(' ')
	if line.line == 0 {
		b.WriteByte('?')
	} else {
		b.WriteString(line.file)
		b.WriteByte(':')
		b.WriteString(pad3(line.line))
	}
	b.WriteByte(' ')
	b.WriteString(rightArrow)
	b.WriteByte(' ')
	b.WriteString(line.level.String())
	b.WriteByte(' ')
	b.WriteString(pad3(counter))
	if useColor {
		b.WriteString(endColor())
	}
	b.WriteByte(' ')
	b.WriteString(line.msg)
	return b.String()
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	if len(s) < 3 {
		s = strings.Repeat("0", 3-len(s)) + s
	}
	return s
}
