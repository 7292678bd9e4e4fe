package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
	"gorgonia.org/tensor"
)

// observationWrapper wraps an environment and applies transform to
// every observation returned by Step and Reset. Concrete observation
// wrappers embed an observationWrapper and describe the transformed
// observations with spec.
type observationWrapper struct {
	environment.Environment
	transform func(*tensor.Dense) (*tensor.Dense, error)
	spec      environment.Spec
}

// Step takes one environmental step and transforms the observation
func (o *observationWrapper) Step(action int) (ts.TimeStep, bool, error) {
	step, done, err := o.Environment.Step(action)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"embedded environment: %v", err)
	}

	step.Observation, err = o.transform(step.Observation)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not transform "+
			"observation: %v", err)
	}
	return step, done, nil
}

// Reset resets the embedded Environment and transforms the first
// observation
func (o *observationWrapper) Reset() (ts.TimeStep, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset embedded "+
			"environment: %v", err)
	}

	step.Observation, err = o.transform(step.Observation)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not transform "+
			"observation: %v", err)
	}
	return step, nil
}

// ObservationSpec returns the specification of the transformed
// observations
func (o *observationWrapper) ObservationSpec() environment.Spec {
	return o.spec
}

// hwc returns the height, width, and channels of an observation shape
// laid out as (height, width, channels)
func hwc(shape tensor.Shape) (h, w, c int, err error) {
	if len(shape) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: expected (height, width, channels), "+
			"got %v", environment.ErrShape, shape)
	}
	return shape[0], shape[1], shape[2], nil
}
