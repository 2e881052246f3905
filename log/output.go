package log

import (
	"fmt"
	"time"
)

func writeLine(line *logLine) {
	outputLock.Lock()
	defer outputLock.Unlock()

	fmt.Fprintln(output, formatLine(line, useColor))
}

func writer(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		// wait until logs need to be processed
		select {
		case <-logsWaiting:
		case <-stop:
			// write all remaining lines
			for {
				select {
				case line := <-logBuffer:
					writeLine(line)
				default:
					writeLine(&logLine{
						msg:       "===== LOGGING STOPPED =====",
						level:     WarningLevel,
						timestamp: time.Now(),
					})
					return
				}
			}
		}

		// write all the logs!
	writeLoop:
		for {
			select {
			case line := <-logBuffer:
				writeLine(line)
			default:
				break writeLoop
			}
		}
	}
}
