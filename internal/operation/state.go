// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package operation

// Phase is the stage of a controller's submission lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseProcessing
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseProcessing:
		return "processing"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a controller. Result is set only when
// succeeded and Err only when failed.
type State[R any] struct {
	Phase    Phase
	Result   *R
	Err      error
	Progress float64
}

// Processing reports whether a submission is in flight.
func (s State[R]) Processing() bool { return s.Phase == PhaseProcessing }

// Succeeded reports whether the last submission produced a result.
func (s State[R]) Succeeded() bool { return s.Phase == PhaseSucceeded }

// Failed reports whether the last submission ended in an error.
func (s State[R]) Failed() bool { return s.Phase == PhaseFailed }
