// Package atari assembles the standard DeepMind-style Atari
// preprocessing pipeline out of the wrappers in package wrappers.
//
// Wrappers are applied in a fixed order. Life and fire handling sit
// directly over frame skipping, and frame stacking comes last.
package atari

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/goatari/environment"
	"github.com/samuelfneumann/goatari/environment/wrappers"
)

// Sizes of the preprocessed frames
const (
	Width    int = 84
	Height   int = 84
	Channels int = 1
)

// MaxPixel is the largest raw pixel value. Observations are divided by
// MaxPixel so that they lie in [0, 1].
const MaxPixel float64 = 255.0

// NoFrameskip must appear in the ID of base environments, since
// frame skipping is performed by the pipeline itself
const NoFrameskip string = "NoFrameskip"

// Config configures the optional stages of the pipeline
type Config struct {
	// EpisodeLife ends episodes when a life is lost
	EpisodeLife bool

	// ClipRewards clips rewards to {-1, 0, +1}
	ClipRewards bool

	// FrameStack is the number of frames stacked into each observation.
	// Values of 0 or 1 disable stacking.
	FrameStack int

	// NoopMax is the maximum number of no-ops taken on reset
	NoopMax int

	// Skip is the number of frames each action is repeated for
	Skip int

	// Seed seeds the sampling of no-ops
	Seed uint64

	// MaxEpisodeSteps limits the number of frames of an episode of the
	// base environment. Zero disables the limit.
	MaxEpisodeSteps int
}

// DefaultConfig returns the default pipeline configuration
func DefaultConfig() Config {
	return Config{
		EpisodeLife: false,
		ClipRewards: true,
		FrameStack:  4,
		NoopMax:     30,
		Skip:        4,
	}
}

// Wrap wraps env in the Atari preprocessing pipeline. If
// c.MaxEpisodeSteps is positive, env is first wrapped in a TimeLimit.
// Then, in order, the pipeline applies:
//
//	1. NoOpReset with c.NoopMax no-ops
//	2. MaxAndSkip with c.Skip frames
//	3. EpisodicLife, if c.EpisodeLife
//	4. FireReset, if env has a FIRE action
//	5. Grey with equal weights, Resize to 84x84x1, CHW, and Scale by
//	   1/255
//	6. ClipReward, if c.ClipRewards
//	7. FrameStack along axis 0, if c.FrameStack > 1
//
// The ID of env must contain NoFrameskip.
func Wrap(env environment.Environment, c Config) (environment.Environment,
	error) {
	if !strings.Contains(env.ID(), NoFrameskip) {
		return nil, environment.NewError("wrap", fmt.Errorf("%w: got %v",
			environment.ErrFrameskip, env.ID()))
	}

	var err error
	if c.MaxEpisodeSteps > 0 {
		env, err = wrappers.NewTimeLimit(env, c.MaxEpisodeSteps)
		if err != nil {
			return nil, fmt.Errorf("wrap: %w", err)
		}
	}

	env, err = wrappers.NewNoOpReset(env, c.NoopMax, c.Seed)
	if err != nil {
		return nil, fmt.Errorf("wrap: %w", err)
	}

	env, err = wrappers.NewMaxAndSkip(env, c.Skip)
	if err != nil {
		return nil, fmt.Errorf("wrap: %w", err)
	}

	if c.EpisodeLife {
		env = wrappers.NewEpisodicLife(env)
	}

	if environment.HasAction(env, "FIRE") {
		env, err = wrappers.NewFireReset(env)
		if err != nil {
			return nil, fmt.Errorf("wrap: %w", err)
		}
	}

	env, err = wrappers.NewGrey(env, wrappers.EqualWeights)
	if err != nil {
		return nil, fmt.Errorf("wrap: %w", err)
	}
	env, err = wrappers.NewResize(env, Width, Height, Channels)
	if err != nil {
		return nil, fmt.Errorf("wrap: %w", err)
	}
	env, err = wrappers.NewCHW(env)
	if err != nil {
		return nil, fmt.Errorf("wrap: %w", err)
	}
	env, err = wrappers.NewScale(env, MaxPixel)
	if err != nil {
		return nil, fmt.Errorf("wrap: %w", err)
	}

	if c.ClipRewards {
		env = wrappers.NewClipReward(env)
	}

	if c.FrameStack > 1 {
		env, err = wrappers.NewFrameStack(env, c.FrameStack, 0)
		if err != nil {
			return nil, fmt.Errorf("wrap: %w", err)
		}
	}

	return env, nil
}
