package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	"gorgonia.org/tensor"
)

// Scale wraps an environment and divides each observation by a
// constant. Dividing by 255 normalises pixel values to [0, 1].
type Scale struct {
	*observationWrapper
	divisor float64
}

// NewScale returns a new Scale wrapping env which divides observations
// by divisor. The divisor must be positive.
func NewScale(env environment.Environment, divisor float64) (*Scale,
	error) {
	if divisor <= 0 {
		return nil, environment.NewError("newScale",
			fmt.Errorf("divisor must be positive, got %v", divisor))
	}

	spec := env.ObservationSpec()
	scaleSpec := environment.NewSpec(spec.Shape, environment.Observation,
		spec.LowerBound/divisor, spec.UpperBound/divisor, spec.Cardinality)

	s := &Scale{divisor: divisor}
	s.observationWrapper = &observationWrapper{env, s.scale, scaleSpec}
	return s, nil
}

// scale divides a single observation by the divisor
func (s *Scale) scale(obs *tensor.Dense) (*tensor.Dense, error) {
	scaled, err := obs.DivScalar(s.divisor, true)
	if err != nil {
		return nil, fmt.Errorf("scale: could not divide observation: %v", err)
	}
	return scaled, nil
}

// String returns a string representation of the Scale environment
func (s *Scale) String() string {
	return fmt.Sprintf("Scale(1/%v)(%v)", s.divisor, s.Environment)
}
