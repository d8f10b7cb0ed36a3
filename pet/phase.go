package pet

// Phase is the lifecycle state of an Animator.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseWalking
	PhasePlaying
	PhaseCompleting
	PhaseDestroyed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLoading:
		return "loading"
	case PhaseWalking:
		return "walking"
	case PhasePlaying:
		return "playing"
	case PhaseCompleting:
		return "completing"
	case PhaseDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// EventKind classifies an Event.
type EventKind int

const (
	EventReady EventKind = iota
	EventStarted
	EventCompleted
	EventReleased
	EventDestroyed
)

func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventReleased:
		return "released"
	case EventDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Event reports a state transition. Released means the user cooldown ended
// and autonomous scheduling resumed.
type Event struct {
	Kind      EventKind
	Pet       string
	Animation string
	User      bool
}

// Observer receives events on the scheduler loop.
type Observer func(Event)
