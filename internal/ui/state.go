// Package ui models the presentation flow as an explicit finite-state
// machine: idle search screen, loading, error, or a displayed report. The
// machine holds no business logic and never repairs or reinterprets report
// data; transitions are total and side-effect free.
package ui

import (
	"github.com/jonathan/equity-insight/internal/research"
	"github.com/jonathan/equity-insight/internal/types"
)

// Phase identifies which screen is showing
type Phase int

const (
	// PhaseIdle shows the search input
	PhaseIdle Phase = iota
	// PhaseLoading shows the progress indicator; the search affordance is
	// disabled, so at most one fetch is in flight
	PhaseLoading
	// PhaseError shows a user-facing message with retry affordances
	PhaseError
	// PhaseShowing shows the report dashboard
	PhaseShowing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseShowing:
		return "showing"
	default:
		return "unknown"
	}
}

// State is one configuration of the screen. Query is set while loading,
// Message while in error, Report while showing; the machine is the sole
// owner of the displayed report and discards it entirely on a new search.
type State struct {
	Phase   Phase
	Query   string
	Message string
	Report  *types.Report
}

// Idle returns the initial state
func Idle() State {
	return State{Phase: PhaseIdle}
}

// Submit starts a fetch for query. Submitting while a fetch is in flight is
// not possible through the exposed interface, so Loading ignores it; any
// previously shown report or error is discarded, not reused.
func (s State) Submit(query string) State {
	if s.Phase == PhaseLoading {
		return s
	}
	return State{Phase: PhaseLoading, Query: query}
}

// Settled resolves the in-flight fetch with either a report or an error.
// The error is reduced to its user-facing message here; the raw error never
// reaches the screen. Settling in any phase other than Loading is ignored.
func (s State) Settled(report *types.Report, err error) State {
	if s.Phase != PhaseLoading {
		return s
	}
	if err != nil {
		return State{Phase: PhaseError, Message: research.UserMessage(err)}
	}
	return State{Phase: PhaseShowing, Report: report}
}

// Back returns to the search screen from an error or a displayed report.
// There is no cancellation: Back during Loading is ignored and the fetch
// runs to completion.
func (s State) Back() State {
	switch s.Phase {
	case PhaseError, PhaseShowing:
		return Idle()
	default:
		return s
	}
}
