package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
)

// EpisodicLife wraps an environment so that losing a life ends the
// episode, while the embedded Environment is only truly reset once the
// game is over. All states of the game therefore remain reachable, but
// the agent perceives each life as a separate episode.
//
// Between a lost life and the next Reset, the game underneath is still
// running. Reset then takes a single no-op to move past the lost life
// instead of resetting the embedded Environment.
type EpisodicLife struct {
	environment.Environment
	lives       int
	wasRealDone bool
}

// NewEpisodicLife returns a new EpisodicLife wrapping env
func NewEpisodicLife(env environment.Environment) *EpisodicLife {
	return &EpisodicLife{
		Environment: env,
		lives:       0,
		wasRealDone: true,
	}
}

// Step takes one environmental step. If the number of lives decreased
// and lives remain, the returned TimeStep is marked as the last in the
// episode and carries LifeLostKey in its Info.
func (e *EpisodicLife) Step(action int) (ts.TimeStep, bool, error) {
	step, done, err := e.Environment.Step(action)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"embedded environment: %v", err)
	}
	e.wasRealDone = done

	// Some games stay at 0 lives for a few frames before reporting
	// done, so only lose a life while lives remain. Otherwise the
	// episode would be ended twice for the final life.
	lives := e.Environment.Lives()
	if 0 < lives && lives < e.lives {
		done = true
		step.StepType = ts.Last
		step.Info = copyInfo(step.Info)
		step.Info[LifeLostKey] = true
	}
	e.lives = lives

	return step, done, nil
}

// Reset resets the embedded Environment if the game is over. Otherwise,
// a single no-op is taken to advance past the lost life.
func (e *EpisodicLife) Reset() (ts.TimeStep, error) {
	var step ts.TimeStep
	var err error

	if e.wasRealDone {
		step, err = e.Environment.Reset()
		if err != nil {
			return ts.TimeStep{}, fmt.Errorf("reset: could not reset "+
				"embedded environment: %v", err)
		}
	} else {
		step, _, err = e.Environment.Step(NoopAction)
		if err != nil {
			return ts.TimeStep{}, fmt.Errorf("reset: could not advance "+
				"past lost life: %v", err)
		}
	}
	e.lives = e.Environment.Lives()

	return firstStep(step), nil
}

// WasRealDone returns whether the last step ended the game itself
// rather than only a life
func (e *EpisodicLife) WasRealDone() bool {
	return e.wasRealDone
}

// String returns a string representation of the EpisodicLife environment
func (e *EpisodicLife) String() string {
	return fmt.Sprintf("EpisodicLife(%v)", e.Environment)
}
