package player

// State is the playback state of a Session.
type State int

const (
	StateStopped State = iota
	StateLoading
	StatePlaying
	StatePaused
	StateBuffering
	StateError
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "STOPPED"
	case StateLoading:
		return "LOADING"
	case StatePlaying:
		return "PLAYING"
	case StatePaused:
		return "PAUSED"
	case StateBuffering:
		return "BUFFERING"
	case StateError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Active reports whether the engine holds an open stream.
func (s State) Active() bool {
	return s == StatePlaying || s == StatePaused || s == StateBuffering
}
