package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
)

// TruncatedKey is the Info key set on TimeSteps whose episode was ended
// by a TimeLimit
const TruncatedKey string = "TimeLimit.truncated"

// TimeLimit wraps an environment and ends episodes after a fixed
// number of steps. Episodes ended this way are marked as Last and carry
// Info[TruncatedKey] = true.
type TimeLimit struct {
	environment.Environment
	maxEpisodeSteps int
	episodeSteps    int
}

// NewTimeLimit returns a new TimeLimit which ends episodes of env
// after maxEpisodeSteps steps
func NewTimeLimit(env environment.Environment,
	maxEpisodeSteps int) (*TimeLimit, error) {
	if maxEpisodeSteps < 1 {
		return nil, fmt.Errorf("newTimeLimit: episode step limit must be "+
			"positive, got %v", maxEpisodeSteps)
	}

	return &TimeLimit{
		Environment:     env,
		maxEpisodeSteps: maxEpisodeSteps,
	}, nil
}

// Reset resets the embedded Environment and the step counter
func (t *TimeLimit) Reset() (ts.TimeStep, error) {
	t.episodeSteps = 0
	return t.Environment.Reset()
}

// Step takes one environmental step, ending the episode if the step
// limit has been reached
func (t *TimeLimit) Step(action int) (ts.TimeStep, bool, error) {
	step, done, err := t.Environment.Step(action)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"embedded environment: %v", err)
	}

	t.episodeSteps++
	if t.episodeSteps >= t.maxEpisodeSteps && !done {
		done = true
		step.StepType = ts.Last
		step.Info = copyInfo(step.Info)
		step.Info[TruncatedKey] = true
	}
	return step, done, nil
}

// String returns a string representation of the TimeLimit environment
func (t *TimeLimit) String() string {
	return fmt.Sprintf("TimeLimit(%v)(%v)", t.maxEpisodeSteps, t.Environment)
}
