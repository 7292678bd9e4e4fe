package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
	"gorgonia.org/tensor"
)

// MaxAndSkip wraps an environment and repeats each action for skip
// frames. The rewards of the repeated frames are summed, and the
// observation returned is the element-wise maximum of the last two
// frames, which removes the flicker of sprites that are only drawn
// on alternating frames.
//
// The two most recent frames are kept in a buffer which persists
// between steps. If the episode ends before both buffer slots have
// been filled for the current step, the unfilled slot holds the frame
// of an earlier step (or zeros).
type MaxAndSkip struct {
	environment.Environment
	skip   int
	buffer [2]*tensor.Dense
}

// NewMaxAndSkip returns a new MaxAndSkip wrapping env which repeats
// each action skip times. If skip is 1, the single frame fills both
// buffer slots.
func NewMaxAndSkip(env environment.Environment, skip int) (*MaxAndSkip,
	error) {
	if skip < 1 {
		return nil, environment.NewError("newMaxAndSkip", environment.ErrSkip)
	}

	shape := env.ObservationSpec().Shape
	var buffer [2]*tensor.Dense
	for i := range buffer {
		buffer[i] = tensor.New(tensor.Of(tensor.Float64),
			tensor.WithShape(shape.Clone()...))
	}

	return &MaxAndSkip{
		Environment: env,
		skip:        skip,
		buffer:      buffer,
	}, nil
}

// Step repeats action up to skip times, stopping early if the episode
// ends. The returned TimeStep holds the summed reward, the max-pooled
// observation, and the Info of the last frame.
func (m *MaxAndSkip) Step(action int) (ts.TimeStep, bool, error) {
	var step ts.TimeStep
	var done bool
	totalReward := 0.0

	for i := 0; i < m.skip; i++ {
		var err error
		step, done, err = m.Environment.Step(action)
		if err != nil {
			return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
				"embedded environment on frame %v: %v", i, err)
		}

		if i == m.skip-2 || m.skip == 1 {
			if err := m.store(0, step.Observation); err != nil {
				return ts.TimeStep{}, true, err
			}
		}
		if i == m.skip-1 {
			if err := m.store(1, step.Observation); err != nil {
				return ts.TimeStep{}, true, err
			}
		}

		totalReward += step.Reward
		if done {
			break
		}
	}

	step.Reward = totalReward
	step.Observation = m.maxFrame()

	return step, done, nil
}

// store copies obs into buffer slot i
func (m *MaxAndSkip) store(i int, obs *tensor.Dense) error {
	if obs == nil || !obs.Shape().Eq(m.buffer[i].Shape()) {
		return environment.NewError("step", fmt.Errorf("%w: expected "+
			"observation of shape %v", environment.ErrShape,
			m.buffer[i].Shape()))
	}
	copy(float64s(m.buffer[i]), float64s(obs))
	return nil
}

// maxFrame returns the element-wise maximum of the two buffered frames
func (m *MaxAndSkip) maxFrame() *tensor.Dense {
	a, b := float64s(m.buffer[0]), float64s(m.buffer[1])
	pooled := make([]float64, len(a))
	for i := range pooled {
		if a[i] > b[i] {
			pooled[i] = a[i]
		} else {
			pooled[i] = b[i]
		}
	}

	return tensor.New(tensor.WithShape(m.buffer[0].Shape().Clone()...),
		tensor.WithBacking(pooled))
}

// String returns a string representation of the MaxAndSkip environment
func (m *MaxAndSkip) String() string {
	return fmt.Sprintf("MaxAndSkip(skip: %v)(%v)", m.skip, m.Environment)
}
