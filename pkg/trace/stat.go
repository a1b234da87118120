package trace

// Kind identifies the accumulator semantics of a registered stat. A name
// maps to exactly one kind; Unbound marks a lookup that found nothing.
type Kind int

const (
	Unbound Kind = iota
	Counter      // monotonic event count, reported as a rate
	Event        // discrete measurements, mean-oriented
	Sample       // continuous value sampled over time
)

func (k Kind) String() string {
	switch k {
	case Counter:
		return "counter"
	case Event:
		return "event"
	case Sample:
		return "sample"
	default:
		return "unbound"
	}
}

// Stat is a handle to a registered statistic. Handles are cheap to copy
// around and remain valid for the life of their Recorder.
type Stat struct {
	name        string
	unit        string
	description string
	kind        Kind
}

func (s *Stat) Name() string        { return s.name }
func (s *Stat) Unit() string        { return s.unit }
func (s *Stat) Description() string { return s.description }
func (s *Stat) Kind() Kind          { return s.kind }
