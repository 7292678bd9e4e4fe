package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
	"gorgonia.org/tensor"
)

// FrameStack wraps an environment and returns as observations the
// most recent n observations of the embedded Environment stacked along
// a new axis. On reset, the stack is filled with copies of the first
// observation.
type FrameStack struct {
	environment.Environment
	n, axis int
	frames  []*tensor.Dense
}

// NewFrameStack returns a new FrameStack wrapping env which stacks the
// last n observations along axis. The axis must be in
// [0, rank of env's observations].
func NewFrameStack(env environment.Environment, n, axis int) (*FrameStack,
	error) {
	rank := len(env.ObservationSpec().Shape)
	if n < 1 {
		return nil, environment.NewError("newFrameStack", fmt.Errorf("%w: "+
			"stack depth must be positive, got %v", environment.ErrStack, n))
	}
	if axis < 0 || axis > rank {
		return nil, environment.NewError("newFrameStack", fmt.Errorf("%w: "+
			"axis %v out of range for rank %v observations",
			environment.ErrStack, axis, rank))
	}

	return &FrameStack{
		Environment: env,
		n:           n,
		axis:        axis,
	}, nil
}

// Reset resets the embedded Environment and fills the stack with the
// first observation
func (f *FrameStack) Reset() (ts.TimeStep, error) {
	step, err := f.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset embedded "+
			"environment: %v", err)
	}

	f.frames = make([]*tensor.Dense, f.n)
	for i := range f.frames {
		f.frames[i] = step.Observation.Clone().(*tensor.Dense)
	}

	step.Observation, err = f.stack()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}
	return step, nil
}

// Step takes one environmental step and pushes the new observation
// onto the stack, dropping the oldest one
func (f *FrameStack) Step(action int) (ts.TimeStep, bool, error) {
	if f.frames == nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: environment must be " +
			"reset before stepping")
	}

	step, done, err := f.Environment.Step(action)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"embedded environment: %v", err)
	}

	copy(f.frames, f.frames[1:])
	f.frames[f.n-1] = step.Observation

	step.Observation, err = f.stack()
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: %v", err)
	}
	return step, done, nil
}

// stack stacks the frames, oldest first
func (f *FrameStack) stack() (*tensor.Dense, error) {
	if len(f.frames) == 1 {
		shape := f.frames[0].Shape()
		stacked := f.frames[0].Clone().(*tensor.Dense)
		newShape := make([]int, 0, len(shape)+1)
		newShape = append(newShape, shape[:f.axis]...)
		newShape = append(newShape, 1)
		newShape = append(newShape, shape[f.axis:]...)
		if err := stacked.Reshape(newShape...); err != nil {
			return nil, fmt.Errorf("could not reshape frame: %v", err)
		}
		return stacked, nil
	}

	stacked, err := f.frames[0].Stack(f.axis, f.frames[1:]...)
	if err != nil {
		return nil, fmt.Errorf("could not stack frames: %v", err)
	}
	return stacked, nil
}

// ObservationSpec returns the specification of the stacked
// observations
func (f *FrameStack) ObservationSpec() environment.Spec {
	spec := f.Environment.ObservationSpec()

	shape := make(tensor.Shape, 0, len(spec.Shape)+1)
	shape = append(shape, spec.Shape[:f.axis]...)
	shape = append(shape, f.n)
	shape = append(shape, spec.Shape[f.axis:]...)

	return environment.NewSpec(shape, environment.Observation,
		spec.LowerBound, spec.UpperBound, spec.Cardinality)
}

// String returns a string representation of the FrameStack environment
func (f *FrameStack) String() string {
	return fmt.Sprintf("FrameStack(n: %v, axis: %v)(%v)", f.n, f.axis,
		f.Environment)
}
