package sim

import (
	"fmt"
	"time"
)

// LogLine is one timestamped record of the simulation event log.
// Emission order is observation order.
type LogLine struct {
	Time time.Duration // elapsed since Clock.Reset
	Text string
}

// String renders the line as "Time: <seconds>, <text>".
func (l LogLine) String() string {
	return fmt.Sprintf("Time: %10.6f, %s", l.Time.Seconds(), l.Text)
}

// LogSink receives LogLines in emission order. Implemented by sim/logsink.
type LogSink interface {
	Emit(line LogLine)
}
