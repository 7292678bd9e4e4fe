package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	"gorgonia.org/tensor"
)

// CHW wraps an environment with observations laid out as
// (height, width, channels) and reorders them to
// (channels, height, width)
type CHW struct {
	*observationWrapper
}

// NewCHW returns a new CHW wrapping env
func NewCHW(env environment.Environment) (*CHW, error) {
	spec := env.ObservationSpec()
	h, w, c, err := hwc(spec.Shape)
	if err != nil {
		return nil, environment.NewError("newCHW", err)
	}

	chwSpec := environment.NewSpec(tensor.Shape{c, h, w},
		environment.Observation, spec.LowerBound, spec.UpperBound,
		spec.Cardinality)

	return &CHW{&observationWrapper{env, toCHW, chwSpec}}, nil
}

// toCHW transposes an observation from (height, width, channels) to
// (channels, height, width)
func toCHW(obs *tensor.Dense) (*tensor.Dense, error) {
	if _, _, _, err := hwc(obs.Shape()); err != nil {
		return nil, err
	}

	chw := obs.Clone().(*tensor.Dense)
	if err := chw.T(2, 0, 1); err != nil {
		return nil, fmt.Errorf("toCHW: could not transpose: %v", err)
	}
	if err := chw.Transpose(); err != nil {
		return nil, fmt.Errorf("toCHW: could not transpose: %v", err)
	}
	return chw, nil
}

// String returns a string representation of the CHW environment
func (c *CHW) String() string {
	return fmt.Sprintf("CHW(%v)", c.Environment)
}
