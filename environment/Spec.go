package environment

import (
	"fmt"

	"gorgonia.org/tensor"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an action or an observation
type SpecType int

const (
	Action SpecType = iota
	Observation
)

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action or an observation in an environment.
// All elements of the described data share the same bounds.
type Spec struct {
	Shape      tensor.Shape
	Type       SpecType
	LowerBound float64
	UpperBound float64
	Cardinality
}

// NewSpec constructs a new environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape tensor.Shape, t SpecType, lowerBound,
	upperBound float64, cardinality Cardinality) Spec {
	if lowerBound > upperBound {
		panic(fmt.Sprintf("lower bound %v must not exceed upper bound %v",
			lowerBound, upperBound))
	}
	return Spec{shape.Clone(), t, lowerBound, upperBound, cardinality}
}

// NewDiscreteActionSpec returns the action specification of an
// environment with n discrete actions
func NewDiscreteActionSpec(n int) Spec {
	return NewSpec(tensor.Shape{1}, Action, 0, float64(n-1), Discrete)
}

// Size returns the total number of elements described by the Spec
func (s Spec) Size() int {
	return s.Shape.TotalSize()
}

func (s Spec) String() string {
	return fmt.Sprintf("Spec(%v, shape: %v, bounds: [%v, %v])",
		s.Cardinality, s.Shape, s.LowerBound, s.UpperBound)
}
