package navigation

import "fmt"

// State is the controller's lifecycle state.
type State int

const (
	Idle State = iota
	Loading
	Mounted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Mounted:
		return "mounted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
