package mapview

type State int

const (
	Uninitialized State = iota
	Configuring
	Ready
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Configuring:
		return "configuring"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	}
	return "unknown"
}

type event int

const (
	eventApply event = iota
	eventReady
	eventError
	eventTeardown
)

func (e event) String() string {
	switch e {
	case eventApply:
		return "apply"
	case eventReady:
		return "ready"
	case eventError:
		return "error"
	case eventTeardown:
		return "teardown"
	}
	return "unknown"
}

// transitions is the complete state machine. Pairs missing from the table
// are ignored.
var transitions = map[State]map[event]State{
	Uninitialized: {
		eventApply:    Configuring,
		eventTeardown: Destroyed,
	},
	Configuring: {
		eventApply:    Configuring,
		eventReady:    Ready,
		eventError:    Configuring,
		eventTeardown: Destroyed,
	},
	Ready: {
		eventApply:    Configuring,
		eventError:    Configuring,
		eventTeardown: Destroyed,
	},
	Destroyed: {
		eventApply:    Configuring,
		eventTeardown: Destroyed,
	},
}

func nextState(from State, ev event) (State, bool) {
	to, ok := transitions[from][ev]
	return to, ok
}
