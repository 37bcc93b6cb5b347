package reconcile

// State is a step of an export run.
type State int

const (
	Idle State = iota
	Staged
	Diffed
	AwaitingConfirmation
	Clearing
	Writing
	PostProcessing
	Replicating
	Restoring
	Pruning
	Done

	// Aborted follows AwaitingConfirmation when the user declines.
	Aborted
	// Errored follows any state on an unrecoverable failure.
	Errored
)

var stateNames = [...]string{
	Idle:                 "idle",
	Staged:               "staged",
	Diffed:               "diffed",
	AwaitingConfirmation: "awaiting-confirmation",
	Clearing:             "clearing",
	Writing:              "writing",
	PostProcessing:       "post-processing",
	Replicating:          "replicating",
	Restoring:            "restoring",
	Pruning:              "pruning",
	Done:                 "done",
	Aborted:              "aborted",
	Errored:              "errored",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == Done || s == Aborted || s == Errored
}
