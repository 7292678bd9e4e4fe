package atari_test

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/goatari/environment"
	"github.com/samuelfneumann/goatari/environment/arcade"
	"github.com/samuelfneumann/goatari/environment/atari"
	"github.com/samuelfneumann/goatari/environment/wrappers"
	ts "github.com/samuelfneumann/goatari/timestep"
	"github.com/samuelfneumann/goatari/utils/tensorutils"
	"gorgonia.org/tensor"
)

// renamed changes the ID of an environment
type renamed struct {
	environment.Environment
	id string
}

func (r renamed) ID() string { return r.id }

func newArcade(t *testing.T, seed uint64) *arcade.Catch {
	env, err := arcade.New(arcade.DefaultConfig(), seed)
	if err != nil {
		t.Fatal(err)
	}
	return env
}

func checkObservation(t *testing.T, step ts.TimeStep, shape tensor.Shape) {
	t.Helper()
	if !step.Observation.Shape().Eq(shape) {
		t.Fatalf("expected observation shape %v, got %v", shape,
			step.Observation.Shape())
	}
	for _, v := range step.Observation.Data().([]float64) {
		if v < 0 || v > 1 {
			t.Fatalf("observation value %v not in [0, 1]", v)
		}
	}
}

func TestWrap(t *testing.T) {
	c := atari.DefaultConfig()
	c.Seed = 11
	env, err := atari.Wrap(newArcade(t, 11), c)
	if err != nil {
		t.Fatal(err)
	}

	shape := tensor.Shape{4, 1, atari.Height, atari.Width}
	if spec := env.ObservationSpec(); !spec.Shape.Eq(shape) ||
		spec.LowerBound != 0 || spec.UpperBound != 1 {
		t.Errorf("observationSpec: unexpected spec %v", spec)
	}

	step, err := env.Reset()
	if err != nil {
		t.Fatal(err)
	}
	checkObservation(t, step, shape)

	episodes := 0
	for i := 0; i < 2000 && episodes < 2; i++ {
		var done bool
		step, done, err = env.Step(i % 4)
		if err != nil {
			t.Fatalf("step %v: %v", i, err)
		}
		checkObservation(t, step, shape)

		if r := step.Reward; r != -1 && r != 0 && r != 1 {
			t.Fatalf("step %v: reward %v not clipped", i, r)
		}

		if done {
			episodes++
			if step, err = env.Reset(); err != nil {
				t.Fatal(err)
			}
			checkObservation(t, step, shape)
		}
	}
}

func TestWrapNoStack(t *testing.T) {
	c := atari.Config{
		EpisodeLife: true,
		ClipRewards: false,
		FrameStack:  1,
		NoopMax:     30,
		Skip:        4,
	}
	env, err := atari.Wrap(newArcade(t, 5), c)
	if err != nil {
		t.Fatal(err)
	}

	shape := tensor.Shape{1, atari.Height, atari.Width}
	step, err := env.Reset()
	if err != nil {
		t.Fatal(err)
	}
	checkObservation(t, step, shape)

	// Each lost life ends an episode, and the game has 3 lives
	lifeLost := 0
	for i := 0; i < 5000 && lifeLost == 0; i++ {
		step, done, err := env.Step(i % 4)
		if err != nil {
			t.Fatal(err)
		}
		if done {
			if _, ok := step.Info[wrappers.LifeLostKey]; ok {
				lifeLost++
			}
			if _, err := env.Reset(); err != nil {
				t.Fatal(err)
			}
		}
	}
	if lifeLost == 0 {
		t.Error("step: expected a lost life to end an episode")
	}
}

func TestWrapTimeLimit(t *testing.T) {
	c := atari.DefaultConfig()
	c.MaxEpisodeSteps = 100
	env, err := atari.Wrap(newArcade(t, 3), c)
	if err != nil {
		t.Fatal(err)
	}

	for episode := 0; episode < 2; episode++ {
		if _, err := env.Reset(); err != nil {
			t.Fatal(err)
		}

		var step ts.TimeStep
		done := false
		for i := 0; i < 100 && !done; i++ {
			if step, done, err = env.Step(wrappers.NoopAction); err != nil {
				t.Fatal(err)
			}
		}

		if !done {
			t.Fatalf("episode %v: expected the time limit to end the episode",
				episode)
		}
		if truncated, _ := step.Info[wrappers.TruncatedKey].(bool); !truncated {
			t.Errorf("episode %v: expected truncated episode, got info %v",
				episode, step.Info)
		}

		newest, err := tensorutils.Frame(step.Observation, c.FrameStack-1)
		if err != nil {
			t.Fatal(err)
		}
		if shape := (tensor.Shape{1, atari.Height, atari.Width}); !newest.
			Shape().Eq(shape) {
			t.Errorf("episode %v: expected frame shape %v, got %v", episode,
				shape, newest.Shape())
		}
	}
}

func TestWrapFrameskipPrecondition(t *testing.T) {
	env := renamed{newArcade(t, 1), "ArcadeCatch-v0"}

	_, err := atari.Wrap(env, atari.DefaultConfig())
	if !errors.Is(err, environment.ErrFrameskip) {
		t.Errorf("wrap: expected ErrFrameskip, got %v", err)
	}
}

func TestWrapNoopPrecondition(t *testing.T) {
	env := noNoop{newArcade(t, 1)}

	_, err := atari.Wrap(env, atari.DefaultConfig())
	if !errors.Is(err, environment.ErrNoop) {
		t.Errorf("wrap: expected ErrNoop, got %v", err)
	}
	if !environment.IsPrecondition(err) {
		t.Errorf("wrap: expected a precondition error, got %v", err)
	}
}

// noNoop reorders the action meanings so that action 0 is not NOOP
type noNoop struct {
	environment.Environment
}

func (n noNoop) ActionMeanings() []string {
	return []string{"FIRE", "NOOP", "RIGHT", "LEFT"}
}

func BenchmarkWrapStep(b *testing.B) {
	base, err := arcade.New(arcade.DefaultConfig(), 1)
	if err != nil {
		b.Fatal(err)
	}
	env, err := atari.Wrap(base, atari.DefaultConfig())
	if err != nil {
		b.Fatal(err)
	}
	if _, err := env.Reset(); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, done, _ := env.Step(i % 4); done {
			env.Reset()
		}
	}
}
