package buildpipeline

import (
	"fmt"
	"io"
	"time"
)

// evtPrecision keeps printed durations readable.
const evtPrecision = 100 * time.Microsecond

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// WriterSink prints one line per finished stage; the non-interactive
// fallback when no tty is attached.
type WriterSink struct {
	Out io.Writer
}

func (s WriterSink) OnEvent(evt Event) {
	if s.Out == nil {
		return
	}
	switch evt.Status {
	case StatusDone:
		fmt.Fprintf(s.Out, "%-8s done in %s\n", evt.Stage, evt.Elapsed.Round(evtPrecision))
	case StatusError:
		fmt.Fprintf(s.Out, "%-8s failed\n", evt.Stage)
	}
}

// MultiSink fans events out to every child sink.
type MultiSink []ProgressSink

func (m MultiSink) OnEvent(evt Event) {
	for _, s := range m {
		if s != nil {
			s.OnEvent(evt)
		}
	}
}
