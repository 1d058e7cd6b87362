package models

import "fmt"

// Phase is the global competition stage. Exactly one phase is active
// system-wide at any time; it gates which role may perform which action.
type Phase string

const (
	PhasePreEvent  Phase = "pre_event"
	PhaseLiveEvent Phase = "live_event"
	PhasePostEvent Phase = "post_event"
	PhaseClosed    Phase = "closed"
)

var AllPhases = []Phase{PhasePreEvent, PhaseLiveEvent, PhasePostEvent, PhaseClosed}

func ParsePhase(s string) (Phase, error) {
	switch Phase(s) {
	case PhasePreEvent, PhaseLiveEvent, PhasePostEvent, PhaseClosed:
		return Phase(s), nil
	}
	return "", fmt.Errorf("unknown phase: %q", s)
}

func (p Phase) Valid() bool {
	_, err := ParsePhase(string(p))
	return err == nil
}
