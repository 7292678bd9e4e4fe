// Package wrappers provides wrappers for environments.
//
// Each wrapper embeds the environment.Environment it wraps and
// overrides only the methods whose behaviour it changes: all other
// calls are forwarded to the embedded Environment. Wrappers are
// composed into a chain, e.g.
//
//	env, _ := wrappers.NewNoOpReset(base, 30, seed)
//	env, _ = wrappers.NewMaxAndSkip(env, 4)
//
// which is what package atari does to build the standard Atari
// preprocessing pipeline.
package wrappers

import (
	ts "github.com/samuelfneumann/goatari/timestep"
	"gorgonia.org/tensor"
)

// NoopAction is the index of the action which only advances the game
// by one frame
const NoopAction int = 0

// FireAction is the index of the action which starts games that are
// frozen until the player fires
const FireAction int = 1

// LifeLostKey is the Info key set on TimeSteps whose episode was ended
// by EpisodicLife because a life was lost
const LifeLostKey string = "life_lost"

// firstStep turns the TimeStep produced by the last action of a reset
// sequence into the first TimeStep of an episode
func firstStep(step ts.TimeStep) ts.TimeStep {
	step.StepType = ts.First
	step.Reward = 0
	return step
}

// copyInfo returns a shallow copy of a TimeStep's Info so that a
// wrapper can annotate it without altering the map held by the
// embedded Environment
func copyInfo(info map[string]interface{}) map[string]interface{} {
	c := make(map[string]interface{}, len(info)+1)
	for k, v := range info {
		c[k] = v
	}
	return c
}

// float64s returns the backing data of a float64 tensor
func float64s(t *tensor.Dense) []float64 {
	return t.Data().([]float64)
}
