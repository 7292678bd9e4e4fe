// Package envconfig provides configuration structs for configuring
// preprocessed Atari environments. Environment configurations in this
// package are JSON serializable.
package envconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	env "github.com/samuelfneumann/goatari/environment"
	"github.com/samuelfneumann/goatari/environment/arcade"
	"github.com/samuelfneumann/goatari/environment/atari"
	"github.com/samuelfneumann/goatari/environment/gym"
)

// Backend stores the name of the engines that can run environments
// configured with this package
type Backend string

// Backends available for configuration
const (
	// Arcade is the built-in deterministic catch game
	Arcade Backend = "arcade"

	// Gym runs Atari games through the Arcade Learning Environment of
	// OpenAI Gym
	Gym Backend = "gym"
)

// Environment variables read by FromEnv
const (
	EnvEnvironment = "ATARI_ENV"
	EnvBackend     = "ATARI_BACKEND"
	EnvEpisodeLife = "ATARI_EPISODE_LIFE"
	EnvClipRewards = "ATARI_CLIP_REWARDS"
	EnvFrameStack  = "ATARI_FRAME_STACK"
	EnvNoopMax     = "ATARI_NOOP_MAX"
	EnvSkip        = "ATARI_SKIP"

	EnvMaxEpisodeSteps = "ATARI_MAX_EPISODE_STEPS"
)

// Config implements a specific configuration of a preprocessed Atari
// environment
type Config struct {
	Environment string
	Backend     Backend
	EpisodeLife bool
	ClipRewards bool
	FrameStack  int
	NoopMax     int
	Skip        int

	// MaxEpisodeSteps limits the number of frames in an episode. Zero
	// disables the limit.
	MaxEpisodeSteps int
}

// NewConfig returns a new environment Config with the default
// preprocessing settings
func NewConfig(environment string, backend Backend) Config {
	def := atari.DefaultConfig()
	return Config{
		Environment: environment,
		Backend:     backend,
		EpisodeLife: def.EpisodeLife,
		ClipRewards: def.ClipRewards,
		FrameStack:  def.FrameStack,
		NoopMax:     def.NoopMax,
		Skip:        def.Skip,

		MaxEpisodeSteps: def.MaxEpisodeSteps,
	}
}

// Default returns the Config of the built-in arcade game with the
// default preprocessing settings
func Default() Config {
	return NewConfig(arcade.ID, Arcade)
}

// Load reads a JSON Config from the file at path. Fields missing from
// the file take their values from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: could not read config: %v", err)
	}

	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("load: could not decode config: %v", err)
	}
	return c, nil
}

// Save writes the Config as JSON to the file at path
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return fmt.Errorf("save: could not encode config: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save: could not write config: %v", err)
	}
	return nil
}

// FromEnv returns a copy of the Config with every field that has a
// corresponding ATARI_* environment variable set replaced by the
// variable's value
func (c Config) FromEnv() (Config, error) {
	if v, ok := os.LookupEnv(EnvEnvironment); ok {
		c.Environment = v
	}
	if v, ok := os.LookupEnv(EnvBackend); ok {
		c.Backend = Backend(strings.ToLower(v))
	}

	bools := []struct {
		key   string
		field *bool
	}{
		{EnvEpisodeLife, &c.EpisodeLife},
		{EnvClipRewards, &c.ClipRewards},
	}
	for _, b := range bools {
		if v, ok := os.LookupEnv(b.key); ok {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, fmt.Errorf("fromEnv: could not parse %v: %v",
					b.key, err)
			}
			*b.field = parsed
		}
	}

	ints := []struct {
		key   string
		field *int
	}{
		{EnvFrameStack, &c.FrameStack},
		{EnvNoopMax, &c.NoopMax},
		{EnvSkip, &c.Skip},
		{EnvMaxEpisodeSteps, &c.MaxEpisodeSteps},
	}
	for _, i := range ints {
		if v, ok := os.LookupEnv(i.key); ok {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, fmt.Errorf("fromEnv: could not parse %v: %v",
					i.key, err)
			}
			*i.field = parsed
		}
	}

	return c, nil
}

// Preprocessing returns the preprocessing configuration described by
// the Config
func (c Config) Preprocessing(seed uint64) atari.Config {
	return atari.Config{
		EpisodeLife: c.EpisodeLife,
		ClipRewards: c.ClipRewards,
		FrameStack:  c.FrameStack,
		NoopMax:     c.NoopMax,
		Skip:        c.Skip,
		Seed:        seed,

		MaxEpisodeSteps: c.MaxEpisodeSteps,
	}
}

// CreateBase returns the unwrapped environment described by the Config
func (c Config) CreateBase(seed uint64) (env.Environment, error) {
	switch c.Backend {
	case Arcade, "":
		if c.Environment != arcade.ID {
			return nil, fmt.Errorf("createBase: arcade backend has no "+
				"environment %v", c.Environment)
		}
		catch, err := arcade.New(arcade.DefaultConfig(), seed)
		if err != nil {
			return nil, fmt.Errorf("createBase: %v", err)
		}
		return catch, nil

	case Gym:
		g, err := gym.New(c.Environment, seed)
		if err != nil {
			return nil, fmt.Errorf("createBase: %v", err)
		}
		return g, nil
	}

	return nil, fmt.Errorf("createBase: no such backend %v", c.Backend)
}

// Create returns the preprocessed environment described by the Config
func (c Config) Create(seed uint64) (env.Environment, error) {
	base, err := c.CreateBase(seed)
	if err != nil {
		return nil, fmt.Errorf("create: could not create environment: %v",
			err)
	}

	wrapped, err := atari.Wrap(base, c.Preprocessing(seed))
	if err != nil {
		base.Close()
		return nil, fmt.Errorf("create: %w", err)
	}
	return wrapped, nil
}

// String returns a string representation of the Config
func (c Config) String() string {
	return fmt.Sprintf("%v[%v](episodeLife: %v, clipRewards: %v, "+
		"frameStack: %v, noopMax: %v, skip: %v, maxEpisodeSteps: %v)",
		c.Environment, c.Backend, c.EpisodeLife, c.ClipRewards, c.FrameStack,
		c.NoopMax, c.Skip, c.MaxEpisodeSteps)
}
