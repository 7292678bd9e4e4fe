package agent

import (
	"fmt"

	"github.com/samuelfneumann/goatari/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Random implements an agent which selects actions uniformly at
// random from a discrete set of actions, ignoring observations
type Random struct {
	numActions int
	dist       distuv.Categorical
}

// NewRandom returns a new Random agent which selects between
// numActions actions
func NewRandom(numActions int, seed uint64) (*Random, error) {
	if numActions < 1 {
		return nil, fmt.Errorf("newRandom: number of actions must be "+
			"positive, got %v", numActions)
	}

	weights := make([]float64, numActions)
	for i := range weights {
		weights[i] = 1.0
	}
	source := rand.NewSource(seed)

	return &Random{
		numActions: numActions,
		dist:       distuv.NewCategorical(weights, source),
	}, nil
}

// SelectAction selects an action uniformly at random
func (r *Random) SelectAction(_ timestep.TimeStep) int {
	return int(r.dist.Rand())
}

// String returns a string representation of the Random agent
func (r *Random) String() string {
	return fmt.Sprintf("Random(actions: %v)", r.numActions)
}
