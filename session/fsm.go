package session

import "fmt"

// Phase is the coarse state of the session.
type Phase int

const (
	Initial Phase = iota
	Resolving
	Authenticated
	Anonymous
)

func (p Phase) String() string {
	switch p {
	case Initial:
		return "initial"
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Loading reports whether the startup check has not finished yet.
func (p Phase) Loading() bool {
	return p == Initial || p == Resolving
}

// Trigger is an event fed into the state machine.
type Trigger string

const (
	ResolveStarted   Trigger = "ResolveStarted"
	NoAccessToken    Trigger = "NoAccessToken"
	IdentityResolved Trigger = "IdentityResolved"
	IdentityRejected Trigger = "IdentityRejected"
	RefreshSucceeded Trigger = "RefreshSucceeded"
	RefreshFailed    Trigger = "RefreshFailed"
	RetryResolved    Trigger = "RetryResolved"
	RetryRejected    Trigger = "RetryRejected"
	LoggedIn         Trigger = "LoggedIn"
	LoggedOut        Trigger = "LoggedOut"
)

// step tracks progress inside Resolving.
type step int

const (
	stepIdle step = iota
	stepFetch
	stepRefresh
	stepRetry
	anyStep
)

func (s step) String() string {
	switch s {
	case stepIdle:
		return "idle"
	case stepFetch:
		return "fetch"
	case stepRefresh:
		return "refresh"
	case stepRetry:
		return "retry"
	default:
		return "any"
	}
}

// Transition is reported to observers after every accepted trigger.
type Transition struct {
	From    Phase
	To      Phase
	Trigger Trigger
}

type rule struct {
	from Phase
	at   step
	on   Trigger
	to   Phase
	next step
}

// rules is the whole lifecycle. A failed identity fetch gets exactly one
// refresh and one retry; there is no path back to stepRefresh from stepRetry.
var rules = []rule{
	{Initial, anyStep, ResolveStarted, Resolving, stepFetch},

	{Resolving, stepFetch, NoAccessToken, Anonymous, stepIdle},
	{Resolving, stepFetch, IdentityResolved, Authenticated, stepIdle},
	{Resolving, stepFetch, IdentityRejected, Resolving, stepRefresh},
	{Resolving, stepRefresh, RefreshSucceeded, Resolving, stepRetry},
	{Resolving, stepRefresh, RefreshFailed, Anonymous, stepIdle},
	{Resolving, stepRetry, RetryResolved, Authenticated, stepIdle},
	{Resolving, stepRetry, RetryRejected, Anonymous, stepIdle},

	{Initial, anyStep, LoggedIn, Authenticated, stepIdle},
	{Resolving, anyStep, LoggedIn, Authenticated, stepIdle},
	{Authenticated, anyStep, LoggedIn, Authenticated, stepIdle},
	{Anonymous, anyStep, LoggedIn, Authenticated, stepIdle},

	{Initial, anyStep, LoggedOut, Anonymous, stepIdle},
	{Resolving, anyStep, LoggedOut, Anonymous, stepIdle},
	{Authenticated, anyStep, LoggedOut, Anonymous, stepIdle},
	{Anonymous, anyStep, LoggedOut, Anonymous, stepIdle},
}

// next looks up the target of trigger from (phase, at).
func next(phase Phase, at step, trigger Trigger) (Phase, step, bool) {
	for _, r := range rules {
		if r.from != phase || r.on != trigger {
			continue
		}
		if r.at != anyStep && r.at != at {
			continue
		}
		return r.to, r.next, true
	}
	return phase, at, false
}
