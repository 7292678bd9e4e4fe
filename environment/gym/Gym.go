// Package gym provides access to the Atari environments of OpenAI's
// Gym, backed by the Arcade Learning Environment.
//
// Environments are created through GoGym, the Go bindings for OpenAI
// Gym found at https://github.com/samuelfneumann/GoGym. GoGym decodes
// observations as flat vectors, so stepping, resetting, and the
// Atari-specific introspection (action meanings and lives) are
// performed on the underlying Python environment directly.
//
// Only the "NoFrameskip" variants of the Atari environments should be
// used with package atari, e.g. "PongNoFrameskip-v4".
package gym

import (
	"fmt"

	python "github.com/DataDog/go-python3"
	"github.com/samuelfneumann/gogym"
	env "github.com/samuelfneumann/goatari/environment"
	ts "github.com/samuelfneumann/goatari/timestep"
	"gonum.org/v1/gonum/floats"
	"gorgonia.org/tensor"
)

// GymEnv implements access to an OpenAI Gym Atari environment using
// GoGym
type GymEnv struct {
	gogym.Environment

	meanings    []string
	shape       tensor.Shape
	low, high   float64
	episodeStep int
}

// New returns a new GymEnv with the given name, which must be a legal
// name of an Atari environment from the OpenAI Gym suite.
func New(name string, seed uint64) (*GymEnv, error) {
	goGymEnv, err := gogym.Make(name)
	if err != nil {
		return nil, fmt.Errorf("new: could not create environment: %v", err)
	}

	if _, err := goGymEnv.Seed(int(seed)); err != nil {
		goGymEnv.Close()
		return nil, fmt.Errorf("new: could not seed environment: %v", err)
	}

	g := &GymEnv{Environment: goGymEnv, low: 0, high: 255}

	if g.meanings, err = g.actionMeanings(); err != nil {
		goGymEnv.Close()
		return nil, fmt.Errorf("new: %v", err)
	}
	if g.shape, err = g.observationShape(); err != nil {
		goGymEnv.Close()
		return nil, fmt.Errorf("new: %v", err)
	}

	if space := goGymEnv.ObservationSpace(); space != nil &&
		len(space.Low()) > 0 {
		g.low = floats.Min(space.Low()[0].RawVector().Data)
		g.high = floats.Max(space.High()[0].RawVector().Data)
	}

	return g, nil
}

// Reset resets the environment to some starting state
func (g *GymEnv) Reset() (ts.TimeStep, error) {
	obs := g.Env().CallMethodArgs("reset")
	if obs == nil {
		return ts.TimeStep{}, pythonError("reset", "could not reset "+
			"environment")
	}
	defer obs.DecRef()

	frame, err := g.frame(obs)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	g.episodeStep = 0
	step := ts.New(ts.First, 0, frame, 0)
	step.SetInfo("lives", g.Lives())
	return step, nil
}

// Step takes a single environmental step
func (g *GymEnv) Step(action int) (ts.TimeStep, bool, error) {
	pyAction := python.PyLong_FromGoInt(action)
	defer pyAction.DecRef()

	retVal := g.Env().CallMethodArgs("step", pyAction)
	if retVal == nil {
		return ts.TimeStep{}, true, pythonError("step", "could not step "+
			"environment")
	}
	defer retVal.DecRef()

	frame, err := g.frame(python.PyTuple_GetItem(retVal, 0))
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: %v", err)
	}
	reward := python.PyFloat_AsDouble(python.PyTuple_GetItem(retVal, 1))
	done := python.PyTuple_GetItem(retVal, 2) == python.Py_True

	g.episodeStep++
	stepType := ts.Mid
	if done {
		stepType = ts.Last
	}
	step := ts.New(stepType, reward, frame, g.episodeStep)
	step.SetInfo("lives", g.Lives())

	return step, done, nil
}

// frame decodes a numpy observation into a tensor
func (g *GymEnv) frame(obs *python.PyObject) (*tensor.Dense, error) {
	flat := obs.CallMethodArgs("flatten")
	if flat == nil {
		return nil, pythonError("frame", "could not flatten observation")
	}
	defer flat.DecRef()

	list := flat.CallMethodArgs("tolist")
	if list == nil {
		return nil, pythonError("frame", "could not convert observation "+
			"to list")
	}
	defer list.DecRef()

	n := python.PyList_Size(list)
	if n != g.shape.TotalSize() {
		return nil, fmt.Errorf("frame: expected %v values for shape %v, "+
			"got %v", g.shape.TotalSize(), g.shape, n)
	}

	data := make([]float64, n)
	for i := range data {
		data[i] = python.PyFloat_AsDouble(python.PyList_GetItem(list, i))
	}

	return tensor.New(tensor.WithShape(g.shape.Clone()...),
		tensor.WithBacking(data)), nil
}

// actionMeanings calls get_action_meanings() on the unwrapped Python
// environment
func (g *GymEnv) actionMeanings() ([]string, error) {
	unwrapped := g.Env().GetAttrString("unwrapped")
	if unwrapped == nil {
		return nil, pythonError("actionMeanings", "no unwrapped environment")
	}
	defer unwrapped.DecRef()

	meanings := unwrapped.CallMethodArgs("get_action_meanings")
	if meanings == nil {
		return nil, pythonError("actionMeanings", "could not get action "+
			"meanings, is this an Atari environment?")
	}
	defer meanings.DecRef()

	n := python.PyList_Size(meanings)
	goMeanings := make([]string, n)
	for i := range goMeanings {
		goMeanings[i] = python.PyUnicode_AsUTF8(python.PyList_GetItem(
			meanings, i))
	}
	return goMeanings, nil
}

// observationShape reads the shape of the Python observation space
func (g *GymEnv) observationShape() (tensor.Shape, error) {
	space := g.Env().GetAttrString("observation_space")
	if space == nil {
		return nil, pythonError("observationShape", "no observation space")
	}
	defer space.DecRef()

	pyShape := space.GetAttrString("shape")
	if pyShape == nil {
		return nil, pythonError("observationShape", "observation space has "+
			"no shape")
	}
	defer pyShape.DecRef()

	shape := make(tensor.Shape, python.PyTuple_Size(pyShape))
	for i := range shape {
		shape[i] = python.PyLong_AsLong(python.PyTuple_GetItem(pyShape, i))
	}
	return shape, nil
}

// Lives returns the number of lives reported by the emulator. Lives
// panics if the emulator cannot be queried.
func (g *GymEnv) Lives() int {
	unwrapped := g.Env().GetAttrString("unwrapped")
	if unwrapped == nil {
		panic(pythonError("lives", "no unwrapped environment"))
	}
	defer unwrapped.DecRef()

	ale := unwrapped.GetAttrString("ale")
	if ale == nil {
		panic(pythonError("lives", "environment has no emulator"))
	}
	defer ale.DecRef()

	lives := ale.CallMethodArgs("lives")
	if lives == nil {
		panic(pythonError("lives", "could not get lives"))
	}
	defer lives.DecRef()

	return python.PyLong_AsLong(lives)
}

// ActionMeanings returns the names of the actions
func (g *GymEnv) ActionMeanings() []string {
	return append([]string(nil), g.meanings...)
}

// ID returns the name the environment was created with
func (g *GymEnv) ID() string {
	return g.Name()
}

// ObservationSpec returns the observation spec of the environment
func (g *GymEnv) ObservationSpec() env.Spec {
	return env.NewSpec(g.shape, env.Observation, g.low, g.high, env.Discrete)
}

// ActionSpec returns the action specification of the environment
func (g *GymEnv) ActionSpec() env.Spec {
	return env.NewDiscreteActionSpec(len(g.meanings))
}

// Close performs resource cleanup after the environment is no longer
// needed
func (g *GymEnv) Close() error {
	g.Environment.Close()
	return nil
}

// String returns a string representation of the GymEnv
func (g *GymEnv) String() string {
	return fmt.Sprintf("Gym(%v)", g.Name())
}

// pythonError prints any pending Python error and returns an error
// for operation op
func pythonError(op, msg string) error {
	if python.PyErr_Occurred() != nil {
		fmt.Println()
		fmt.Println("========== Python Error ==========")
		python.PyErr_Print()
		fmt.Println("==================================")
		fmt.Println()
	}
	return fmt.Errorf("%v: %v", op, msg)
}
