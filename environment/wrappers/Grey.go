package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// EqualWeights weights each of the red, green, and blue channels
// equally when converting to greyscale
var EqualWeights = [3]float64{1.0 / 3.0, 1.0 / 3.0, 1.0 / 3.0}

// Grey wraps an environment with RGB observations of shape
// (height, width, 3) and converts them to greyscale observations of
// shape (height, width, 1). Each grey pixel is the weighted sum of the
// red, green, and blue values of the pixel.
type Grey struct {
	*observationWrapper
	weights *mat.VecDense
}

// NewGrey returns a new Grey wrapping env, weighting the red, green,
// and blue channels by weights. Weights must be non-negative.
func NewGrey(env environment.Environment, weights [3]float64) (*Grey,
	error) {
	spec := env.ObservationSpec()
	h, w, c, err := hwc(spec.Shape)
	if err != nil {
		return nil, environment.NewError("newGrey", err)
	}
	if c != 3 {
		return nil, environment.NewError("newGrey", fmt.Errorf("%w: "+
			"expected 3 channels, got %v", environment.ErrChannels, c))
	}
	if floats.Min(weights[:]) < 0 {
		return nil, environment.NewError("newGrey",
			fmt.Errorf("weights must be non-negative, got %v", weights))
	}

	g := &Grey{weights: mat.NewVecDense(3, append([]float64(nil),
		weights[:]...))}

	sum := floats.Sum(weights[:])
	greySpec := environment.NewSpec(tensor.Shape{h, w, 1},
		environment.Observation, spec.LowerBound*sum, spec.UpperBound*sum,
		spec.Cardinality)
	g.observationWrapper = &observationWrapper{env, g.grey, greySpec}

	return g, nil
}

// grey converts an RGB observation to greyscale. The pixels of the
// observation are viewed as an (height*width x 3) matrix which is
// multiplied by the channel weights.
func (g *Grey) grey(obs *tensor.Dense) (*tensor.Dense, error) {
	h, w, c, err := hwc(obs.Shape())
	if err != nil {
		return nil, err
	}
	if c != 3 {
		return nil, fmt.Errorf("%w: expected 3 channels, got %v",
			environment.ErrChannels, c)
	}

	pixels := mat.NewDense(h*w, c, float64s(obs))
	grey := mat.NewVecDense(h*w, nil)
	grey.MulVec(pixels, g.weights)

	return tensor.New(tensor.WithShape(h, w, 1),
		tensor.WithBacking(grey.RawVector().Data)), nil
}

// String returns a string representation of the Grey environment
func (g *Grey) String() string {
	return fmt.Sprintf("Grey(weights: %v)(%v)", g.weights.RawVector().Data,
		g.Environment)
}
