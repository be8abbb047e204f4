package orchestrator

import "sample-app/internal/apiclient"

// Phase is the lifecycle position of one step of the chain.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Step holds the latest outcome of one fetch. Value is meaningful only in
// PhaseSuccess and Err only in PhaseFailed.
type Step[T any] struct {
	Phase Phase
	Value T
	Err   error
}

func idle[T any]() Step[T] {
	return Step[T]{Phase: PhaseIdle}
}

func loading[T any]() Step[T] {
	return Step[T]{Phase: PhaseLoading}
}

func succeeded[T any](v T) Step[T] {
	return Step[T]{Phase: PhaseSuccess, Value: v}
}

func failed[T any](err error) Step[T] {
	return Step[T]{Phase: PhaseFailed, Err: err}
}

// Stage is the accumulated progress of the chain.
type Stage int

const (
	StageAnonymous Stage = iota
	StageAuthenticated
	StageIdentified
	StageEnriched
)

func (s Stage) String() string {
	switch s {
	case StageAnonymous:
		return "anonymous"
	case StageAuthenticated:
		return "authenticated"
	case StageIdentified:
		return "identified"
	case StageEnriched:
		return "enriched"
	default:
		return "unknown"
	}
}

// State is the view state written by the orchestrator.
type State struct {
	User        Step[apiclient.Session]
	Identity    Step[apiclient.Identity]
	DataProduct Step[apiclient.DataProduct]
}

// Stage derives the chain progress from the step phases.
func (s State) Stage() Stage {
	switch {
	case s.User.Phase != PhaseSuccess:
		return StageAnonymous
	case s.Identity.Phase != PhaseSuccess:
		return StageAuthenticated
	case s.DataProduct.Phase != PhaseSuccess:
		return StageIdentified
	default:
		return StageEnriched
	}
}
