package envconfig

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/goatari/environment"
	"github.com/samuelfneumann/goatari/environment/arcade"
	"gorgonia.org/tensor"
)

func TestSaveLoad(t *testing.T) {
	c := NewConfig(arcade.ID, Arcade)
	c.EpisodeLife = true
	c.FrameStack = 2

	path := filepath.Join(t.TempDir(), "config.json")
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded != c {
		t.Errorf("load: expected %v, got %v", c, loaded)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("load: expected error for missing file")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvBackend, "GYM")
	t.Setenv(EnvEnvironment, "PongNoFrameskip-v4")
	t.Setenv(EnvEpisodeLife, "true")
	t.Setenv(EnvFrameStack, "0")
	t.Setenv(EnvMaxEpisodeSteps, "27000")

	c, err := Default().FromEnv()
	if err != nil {
		t.Fatal(err)
	}

	if c.Backend != Gym {
		t.Errorf("fromEnv: expected backend %v, got %v", Gym, c.Backend)
	}
	if c.Environment != "PongNoFrameskip-v4" {
		t.Errorf("fromEnv: expected environment PongNoFrameskip-v4, got %v",
			c.Environment)
	}
	if !c.EpisodeLife {
		t.Error("fromEnv: expected episode life to be set")
	}
	if c.FrameStack != 0 {
		t.Errorf("fromEnv: expected frame stack 0, got %v", c.FrameStack)
	}
	if c.MaxEpisodeSteps != 27000 {
		t.Errorf("fromEnv: expected max episode steps 27000, got %v",
			c.MaxEpisodeSteps)
	}
	if c.Skip != Default().Skip {
		t.Errorf("fromEnv: expected unset skip %v, got %v", Default().Skip,
			c.Skip)
	}

	t.Setenv(EnvSkip, "four")
	if _, err := Default().FromEnv(); err == nil {
		t.Error("fromEnv: expected error for malformed skip")
	}
}

func TestCreate(t *testing.T) {
	e, err := Default().Create(1)
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	step, err := e.Reset()
	if err != nil {
		t.Fatal(err)
	}

	want := tensor.Shape{4, 1, 84, 84}
	if !step.Observation.Shape().Eq(want) {
		t.Errorf("create: expected observation shape %v, got %v", want,
			step.Observation.Shape())
	}
	if !e.ObservationSpec().Shape.Eq(want) {
		t.Errorf("create: expected spec shape %v, got %v", want,
			e.ObservationSpec().Shape)
	}
}

func TestCreatePrecondition(t *testing.T) {
	c := Default()
	c.Skip = 0

	if _, err := c.Create(1); !errors.Is(err, environment.ErrSkip) {
		t.Errorf("create: expected %v, got %v", environment.ErrSkip, err)
	}

	c = Default()
	c.Environment = "Pong"
	if _, err := c.Create(1); err == nil {
		t.Error("create: expected error for unknown arcade environment")
	}

	c = Default()
	c.Backend = "stella"
	if _, err := c.CreateBase(1); err == nil {
		t.Error("createBase: expected error for unknown backend")
	}
}
