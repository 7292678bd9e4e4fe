package wrappers

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
)

// NoOpReset wraps an environment and randomises the starting state of
// each episode by taking a random number of no-op actions after
// resetting. The number of no-ops is sampled uniformly from
// [1, noopMax]. If a no-op ends the episode, the embedded Environment
// is reset again and the no-op sequence continues from the new
// episode.
//
// The no-op action is assumed to be action 0, which must have the
// meaning "NOOP".
type NoOpReset struct {
	environment.Environment
	noopMax          int
	overrideNumNoops int
	noopAction       int
	rng              *rand.Rand
}

// NewNoOpReset returns a new NoOpReset wrapping env which takes at
// most noopMax no-ops on reset.
func NewNoOpReset(env environment.Environment, noopMax int,
	seed uint64) (*NoOpReset, error) {
	meanings := env.ActionMeanings()
	if len(meanings) == 0 || meanings[NoopAction] != "NOOP" {
		return nil, environment.NewError("newNoOpReset", environment.ErrNoop)
	}
	if noopMax < 1 {
		return nil, environment.NewError("newNoOpReset",
			environment.ErrNoopMax)
	}

	return &NoOpReset{
		Environment: env,
		noopMax:     noopMax,
		noopAction:  NoopAction,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

// SetOverrideNumNoops fixes the number of no-ops taken on each reset
// to n instead of sampling it. Setting n to 0 restores sampling. A
// negative n causes the next Reset to panic.
func (n *NoOpReset) SetOverrideNumNoops(noops int) {
	n.overrideNumNoops = noops
}

// Reset resets the embedded Environment and then takes a random number
// of no-op actions, returning the TimeStep produced by the last no-op
// as the first TimeStep of the episode.
func (n *NoOpReset) Reset() (ts.TimeStep, error) {
	step, err := n.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset embedded "+
			"environment: %v", err)
	}

	noops := n.overrideNumNoops
	if noops == 0 {
		noops = n.rng.Intn(n.noopMax) + 1
	}
	if noops <= 0 {
		panic(fmt.Sprintf("reset: number of no-ops must be positive, got %v",
			noops))
	}

	for i := 0; i < noops; i++ {
		var done bool
		step, done, err = n.Environment.Step(n.noopAction)
		if err != nil {
			return ts.TimeStep{}, fmt.Errorf("reset: could not take no-op "+
				"%v: %v", i, err)
		}

		if done {
			step, err = n.Environment.Reset()
			if err != nil {
				return ts.TimeStep{}, fmt.Errorf("reset: could not reset "+
					"embedded environment after no-op %v: %v", i, err)
			}
		}
	}

	return firstStep(step), nil
}

// String returns a string representation of the NoOpReset environment
func (n *NoOpReset) String() string {
	return fmt.Sprintf("NoOpReset(max: %v)(%v)", n.noopMax, n.Environment)
}
