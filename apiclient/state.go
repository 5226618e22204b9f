package apiclient

// State is a step of the per-request lifecycle.
type State int

const (
	StateInitial State = iota
	StateSent
	StateSucceeded
	StateFailedNonAuth
	StateFailedAuthNoRetry
	StateAwaitingRefresh
	StateRetriedSucceeded
	StateRetriedFailed
)

var stateNames = map[State]string{
	StateInitial:           "initial",
	StateSent:              "sent",
	StateSucceeded:         "succeeded",
	StateFailedNonAuth:     "failed_non_auth",
	StateFailedAuthNoRetry: "failed_auth_no_retry",
	StateAwaitingRefresh:   "awaiting_refresh",
	StateRetriedSucceeded:  "retried_succeeded",
	StateRetriedFailed:     "retried_failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateFailedNonAuth, StateFailedAuthNoRetry, StateRetriedSucceeded, StateRetriedFailed:
		return true
	}
	return false
}

// Observer is told about every state a logical request passes through. id is
// unique per Send call.
type Observer func(id string, req *Request, state State)

// attempt replaces a mutable "retried" flag on the request: it travels next to
// the request for the duration of one Send call.
type attempt struct {
	id           string
	authEndpoint bool
	retried      bool
	sentToken    string
}
