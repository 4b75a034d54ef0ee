package scratch

// EventKind identifies a session notification.
type EventKind int

const (
	// EventScratch reports the erased fraction after a progress check.
	EventScratch EventKind = iota

	// EventCleared fires once when the erased fraction first reaches the
	// clear threshold after a reset.
	EventCleared
)

// String returns the host-facing event name.
func (k EventKind) String() string {
	switch k {
	case EventScratch:
		return "scratch"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event is a progress or completion notification.
type Event struct {
	Kind EventKind

	// ScratchedPercentage is the erased fraction in [0, 1] at the time of
	// the check.
	ScratchedPercentage float64
}

// EventSink receives session notifications. Emit is called synchronously
// from CheckProgress.
type EventSink interface {
	Emit(Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(Event)

// Emit calls f(ev).
func (f EventSinkFunc) Emit(ev Event) { f(ev) }

// MultiSink fans events out to several sinks in order.
type MultiSink []EventSink

// Emit forwards ev to every sink.
func (m MultiSink) Emit(ev Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}

type nopSink struct{}

func (nopSink) Emit(Event) {}
