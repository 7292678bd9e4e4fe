package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
	"github.com/samuelfneumann/goatari/utils/floatutils"
)

// ClipReward wraps an environment and bins each reward to {-1, 0, +1}
// by its sign
type ClipReward struct {
	environment.Environment
}

// NewClipReward returns a new ClipReward wrapping env
func NewClipReward(env environment.Environment) *ClipReward {
	return &ClipReward{env}
}

// Step takes one environmental step and clips the reward
func (c *ClipReward) Step(action int) (ts.TimeStep, bool, error) {
	step, done, err := c.Environment.Step(action)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"embedded environment: %v", err)
	}

	step.Reward = c.Reward(step.Reward)
	return step, done, nil
}

// Reset resets the embedded Environment and clips the reward of the
// first TimeStep
func (c *ClipReward) Reset() (ts.TimeStep, error) {
	step, err := c.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset embedded "+
			"environment: %v", err)
	}

	step.Reward = c.Reward(step.Reward)
	return step, nil
}

// Reward returns the sign of reward r
func (c *ClipReward) Reward(r float64) float64 {
	return floatutils.Sign(r)
}

// String returns a string representation of the ClipReward environment
func (c *ClipReward) String() string {
	return fmt.Sprintf("ClipReward(%v)", c.Environment)
}
