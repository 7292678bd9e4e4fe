package wrappers

import (
	"errors"
	"math"
	"testing"

	"github.com/samuelfneumann/goatari/environment"
	"gorgonia.org/tensor"
)

func TestGrey(t *testing.T) {
	env := newScripted("NOOP")
	env.shape = tensor.Shape{1, 2, 3}
	rgb := []float64{30, 60, 90, 0, 0, 255}
	env.pixel = func(_, i int) float64 { return rgb[i] }

	g, err := NewGrey(env, EqualWeights)
	if err != nil {
		t.Fatal(err)
	}

	step, err := g.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if !step.Observation.Shape().Eq(tensor.Shape{1, 2, 1}) {
		t.Errorf("reset: expected shape (1, 2, 1), got %v",
			step.Observation.Shape())
	}

	expected := []float64{60, 85}
	for i, v := range float64s(step.Observation) {
		if math.Abs(v-expected[i]) > 1e-9 {
			t.Errorf("reset: expected grey pixel %v == %v, got %v", i,
				expected[i], v)
		}
	}

	spec := g.ObservationSpec()
	if !spec.Shape.Eq(tensor.Shape{1, 2, 1}) ||
		math.Abs(spec.UpperBound-255) > 1e-9 {
		t.Errorf("observationSpec: unexpected spec %v", spec)
	}
}

func TestGreyChannels(t *testing.T) {
	env := newScripted("NOOP")
	env.shape = tensor.Shape{4, 4, 1}

	_, err := NewGrey(env, EqualWeights)
	if !errors.Is(err, environment.ErrChannels) {
		t.Errorf("newGrey: expected ErrChannels, got %v", err)
	}
}

func TestResize(t *testing.T) {
	env := newScripted("NOOP")
	env.shape = tensor.Shape{8, 6, 1}
	env.pixel = func(int, int) float64 { return 100 }

	r, err := NewResize(env, 3, 4, 1)
	if err != nil {
		t.Fatal(err)
	}

	step, err := r.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if !step.Observation.Shape().Eq(tensor.Shape{4, 3, 1}) {
		t.Errorf("reset: expected shape (4, 3, 1), got %v",
			step.Observation.Shape())
	}
	for i, v := range float64s(step.Observation) {
		if math.Abs(v-100) > 0.01 {
			t.Errorf("reset: expected pixel %v == 100, got %v", i, v)
		}
	}
	if !r.ObservationSpec().Shape.Eq(tensor.Shape{4, 3, 1}) {
		t.Errorf("observationSpec: unexpected shape %v",
			r.ObservationSpec().Shape)
	}
}

func TestResizeRGB(t *testing.T) {
	env := newScripted("NOOP")
	env.shape = tensor.Shape{4, 4, 3}
	env.pixel = func(_, i int) float64 { return float64(50 * (i % 3)) }

	r, err := NewResize(env, 2, 2, 3)
	if err != nil {
		t.Fatal(err)
	}

	step, _, err := r.Step(0)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range float64s(step.Observation) {
		if expected := float64(50 * (i % 3)); math.Abs(v-expected) > 0.01 {
			t.Errorf("step: expected channel value %v, got %v", expected, v)
		}
	}
}

func TestResizeChannels(t *testing.T) {
	_, err := NewResize(newScripted("NOOP"), 84, 84, 1)
	if !errors.Is(err, environment.ErrChannels) {
		t.Errorf("newResize: expected ErrChannels, got %v", err)
	}
}

func TestCHW(t *testing.T) {
	env := newScripted("NOOP")
	env.pixel = func(_, i int) float64 { return float64(i) }

	c, err := NewCHW(env)
	if err != nil {
		t.Fatal(err)
	}

	step, err := c.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if !step.Observation.Shape().Eq(tensor.Shape{3, 2, 2}) {
		t.Errorf("reset: expected shape (3, 2, 2), got %v",
			step.Observation.Shape())
	}

	expected := []float64{0, 3, 6, 9, 1, 4, 7, 10, 2, 5, 8, 11}
	for i, v := range float64s(step.Observation) {
		if v != expected[i] {
			t.Errorf("reset: expected element %v == %v, got %v", i,
				expected[i], v)
		}
	}
}

func TestScale(t *testing.T) {
	env := newScripted("NOOP")
	env.pixel = func(int, int) float64 { return 51 }

	s, err := NewScale(env, 255)
	if err != nil {
		t.Fatal(err)
	}

	step, err := s.Reset()
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range float64s(step.Observation) {
		if math.Abs(v-0.2) > 1e-12 {
			t.Errorf("reset: expected 0.2, got %v", v)
		}
	}

	if spec := s.ObservationSpec(); spec.UpperBound != 1 {
		t.Errorf("observationSpec: expected upper bound 1, got %v",
			spec.UpperBound)
	}

	if _, err := NewScale(env, 0); err == nil {
		t.Error("newScale: expected error for zero divisor")
	}
}
