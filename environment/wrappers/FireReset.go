package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
)

// FireReset wraps an environment whose game stays frozen until the
// player fires. On reset, the FIRE action (action 1) and then action 2
// are taken. If either action ends the episode, the embedded
// Environment is reset before continuing.
type FireReset struct {
	environment.Environment
}

// NewFireReset returns a new FireReset wrapping env. The meaning of
// action 1 of env must be "FIRE" and env must have at least 3 actions.
func NewFireReset(env environment.Environment) (*FireReset, error) {
	meanings := env.ActionMeanings()
	if len(meanings) < 3 || meanings[FireAction] != "FIRE" {
		return nil, environment.NewError("newFireReset", environment.ErrFire)
	}

	return &FireReset{env}, nil
}

// Reset resets the embedded Environment and takes actions 1 and 2,
// returning the TimeStep produced by action 2 as the first TimeStep
// of the episode. The returned TimeStep is always that of action 2,
// even if a reset was needed after it.
func (f *FireReset) Reset() (ts.TimeStep, error) {
	if _, err := f.Environment.Reset(); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset embedded "+
			"environment: %v", err)
	}

	var step ts.TimeStep
	for _, action := range []int{FireAction, FireAction + 1} {
		var done bool
		var err error
		step, done, err = f.Environment.Step(action)
		if err != nil {
			return ts.TimeStep{}, fmt.Errorf("reset: could not take "+
				"action %v: %v", action, err)
		}

		if done {
			if _, err := f.Environment.Reset(); err != nil {
				return ts.TimeStep{}, fmt.Errorf("reset: could not reset "+
					"embedded environment after action %v: %v", action, err)
			}
		}
	}

	return firstStep(step), nil
}

// String returns a string representation of the FireReset environment
func (f *FireReset) String() string {
	return fmt.Sprintf("FireReset(%v)", f.Environment)
}
