// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"

	"github.com/samuelfneumann/goatari/agent"
	"github.com/samuelfneumann/goatari/environment/envconfig"
	"github.com/samuelfneumann/goatari/experiment/trackers"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send every environment TimeStep to their Trackers, which
// cache the data in RAM to be later saved to disk with Save. Run runs
// episodes until the step budget is exhausted, and RunEpisode runs a
// single episode.
type Experiment interface {
	Run() error

	// RunEpisode returns whether or not the step budget was exhausted
	RunEpisode() (bool, error)

	// Save all tracked data to disk
	Save() error

	// Register adds a new Tracker to the (possibly already running)
	// experiment
	Register(t trackers.Tracker)
}

type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment. Experiments
// created from a Config select actions uniformly at random.
type Config struct {
	Type
	MaxSteps uint
	EnvConf  envconfig.Config
}

// CreateExp creates the experiment described by the Config. The
// returned Online experiment owns the environment it creates.
func (c Config) CreateExp(seed uint64, t ...trackers.Tracker) (*Online,
	error) {
	if c.Type != OnlineExp {
		return nil, fmt.Errorf("createExp: no such experiment type %v",
			c.Type)
	}

	env, err := c.EnvConf.Create(seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: %w",
			err)
	}

	a, err := agent.NewRandom(len(env.ActionMeanings()), seed)
	if err != nil {
		env.Close()
		return nil, fmt.Errorf("createExp: could not create agent: %v", err)
	}

	return NewOnline(env, a, c.MaxSteps, t...), nil
}
