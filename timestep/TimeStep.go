// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gorgonia.org/tensor"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an environment.
//
// Observation holds the (possibly preprocessed) frame of the
// environment. Info carries auxiliary data reported by the
// environment for this timestep, such as the number of lives
// remaining. Info may be nil.
type TimeStep struct {
	StepType
	Reward      float64
	Observation *tensor.Dense
	Number      int
	Info        map[string]interface{}
}

// New returns a new TimeStep
func New(t StepType, r float64, o *tensor.Dense, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Observation: o, Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetInfo records a key-value pair in the TimeStep's Info, creating
// the map if needed
func (t *TimeStep) SetInfo(key string, value interface{}) {
	if t.Info == nil {
		t.Info = make(map[string]interface{})
	}
	t.Info[key] = value
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Number)
}
