// Package environment outlines the interfaces and structs needed to
// implement concrete Atari-style environments and the wrappers that
// preprocess them.
package environment

import (
	ts "github.com/samuelfneumann/goatari/timestep"
)

// Environment implements a simulated game which can be stepped with
// discrete actions.
//
// Wrappers satisfy Environment by embedding the Environment they wrap
// and overriding only the methods whose behaviour they change. Each
// wrapper exclusively owns the Environment it wraps.
type Environment interface {
	// Reset starts a new episode and returns its first TimeStep
	Reset() (ts.TimeStep, error)

	// Step takes one environmental step with the given action index
	// and returns the next TimeStep and whether the episode has ended
	Step(action int) (ts.TimeStep, bool, error)

	// ActionMeanings returns the ordered names of the actions, e.g.
	// "NOOP", "FIRE", "RIGHT", ...
	ActionMeanings() []string

	// Lives returns the number of lives the game currently reports
	Lives() int

	// ID returns the identifier of the base environment, e.g.
	// "PongNoFrameskip-v4"
	ID() string

	ObservationSpec() Spec
	ActionSpec() Spec

	// Close performs resource cleanup after the environment is no
	// longer needed
	Close() error
}

// HasAction returns whether the environment has an action with the
// given meaning
func HasAction(e Environment, meaning string) bool {
	for _, m := range e.ActionMeanings() {
		if m == meaning {
			return true
		}
	}
	return false
}
