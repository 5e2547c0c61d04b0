package logtail

import "fmt"

// State is a step of a tail run.
type State int

const (
	// Fetching is waiting on a progressive text request.
	Fetching State = iota
	// Emitting is writing a response body to the output.
	Emitting
	// Deciding is reading the control headers of a response.
	Deciding
	// Sleeping is waiting for the poll interval before the next request.
	Sleeping
	// Done is the end of a complete log. Terminal.
	Done
	// Failed is the end of a run that returned an error. Terminal.
	Failed
)

var stateNames = []string{
	"fetching",
	"emitting",
	"deciding",
	"sleeping",
	"done",
	"failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether no more transitions can follow s.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}
