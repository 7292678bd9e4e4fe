package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
	"gorgonia.org/tensor"
)

// scripted is an environment.Environment whose rewards, episode
// endings, and lives are determined by test-provided functions. Every
// call to Reset and Step is recorded in events.
type scripted struct {
	meanings []string
	shape    tensor.Shape
	lives    int

	// onStep returns the reward and done flag of a step. It may
	// change the lives of the environment.
	onStep func(s *scripted, action int) (float64, bool)

	// pixel returns the value of pixel i of frame f. If nil, all
	// pixels of frame f have value f.
	pixel func(f, i int) float64

	frame        int // incremented on every Reset and Step
	steps        int // total calls to Step
	episodeSteps int
	events       []string
}

func newScripted(meanings ...string) *scripted {
	return &scripted{
		meanings: meanings,
		shape:    tensor.Shape{2, 2, 3},
		lives:    3,
	}
}

func (s *scripted) Reset() (ts.TimeStep, error) {
	s.events = append(s.events, "reset")
	s.frame++
	s.episodeSteps = 0
	return ts.New(ts.First, 0, s.observation(), 0), nil
}

func (s *scripted) Step(action int) (ts.TimeStep, bool, error) {
	s.events = append(s.events, fmt.Sprintf("step:%v", action))
	s.frame++
	s.steps++
	s.episodeSteps++

	var reward float64
	var done bool
	if s.onStep != nil {
		reward, done = s.onStep(s, action)
	}

	stepType := ts.Mid
	if done {
		stepType = ts.Last
	}
	step := ts.New(stepType, reward, s.observation(), s.episodeSteps)
	step.SetInfo("lives", s.lives)
	return step, done, nil
}

func (s *scripted) observation() *tensor.Dense {
	data := make([]float64, s.shape.TotalSize())
	for i := range data {
		if s.pixel != nil {
			data[i] = s.pixel(s.frame, i)
		} else {
			data[i] = float64(s.frame)
		}
	}
	return tensor.New(tensor.WithShape(s.shape.Clone()...),
		tensor.WithBacking(data))
}

func (s *scripted) ActionMeanings() []string { return s.meanings }
func (s *scripted) Lives() int               { return s.lives }
func (s *scripted) ID() string               { return "ScriptedNoFrameskip-v0" }
func (s *scripted) Close() error             { return nil }

func (s *scripted) ObservationSpec() environment.Spec {
	return environment.NewSpec(s.shape, environment.Observation, 0, 255,
		environment.Continuous)
}

func (s *scripted) ActionSpec() environment.Spec {
	return environment.NewDiscreteActionSpec(len(s.meanings))
}

// count returns the number of recorded events equal to event
func (s *scripted) count(event string) int {
	n := 0
	for _, e := range s.events {
		if e == event {
			n++
		}
	}
	return n
}

func equalEvents(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
