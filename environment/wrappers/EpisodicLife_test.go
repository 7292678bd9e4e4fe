package wrappers

import (
	"testing"
)

// livesAt returns an onStep function under which lives drop by one
// on each of the given total step counts and the game never ends
func livesAt(drops ...int) func(*scripted, int) (float64, bool) {
	return func(s *scripted, _ int) (float64, bool) {
		for _, d := range drops {
			if s.steps == d {
				s.lives--
			}
		}
		return 0, false
	}
}

func TestEpisodicLifeStep(t *testing.T) {
	env := newScripted("NOOP", "FIRE", "RIGHT")
	env.onStep = livesAt(3, 7)

	e := NewEpisodicLife(env)
	if _, err := e.Reset(); err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 10; i++ {
		step, done, err := e.Step(2)
		if err != nil {
			t.Fatalf("step %v: %v", i, err)
		}

		lifeLost := i == 3 || i == 7
		if done != lifeLost {
			t.Errorf("step %v: expected done == %v, got %v", i, lifeLost,
				done)
		}
		if step.Last() != lifeLost {
			t.Errorf("step %v: expected Last() == %v, got %v", i, lifeLost,
				step.StepType)
		}
		if _, ok := step.Info[LifeLostKey]; ok != lifeLost {
			t.Errorf("step %v: expected %v in Info == %v, got %v", i,
				LifeLostKey, lifeLost, step.Info)
		}
		if e.WasRealDone() {
			t.Errorf("step %v: game should not be over", i)
		}
	}

	if env.lives != 1 {
		t.Errorf("step: expected 1 life remaining, got %v", env.lives)
	}
}

func TestEpisodicLifeReset(t *testing.T) {
	env := newScripted("NOOP", "FIRE", "RIGHT")
	env.onStep = func(s *scripted, action int) (float64, bool) {
		if s.steps == 3 {
			s.lives--
		}
		if s.steps == 6 {
			s.lives = 0
			return 0, true
		}
		return 0, false
	}

	e := NewEpisodicLife(env)

	// The first reset is a true reset
	if _, err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	if env.count("reset") != 1 {
		t.Errorf("reset: expected a true reset, got events %v", env.events)
	}

	for i := 1; i <= 3; i++ {
		if _, _, err := e.Step(2); err != nil {
			t.Fatal(err)
		}
	}

	// A lost life only advances the game by a no-op
	step, err := e.Reset()
	if err != nil {
		t.Fatal(err)
	}
	if env.count("reset") != 1 {
		t.Errorf("reset: expected no true reset after a lost life, got "+
			"events %v", env.events)
	}
	if last := env.events[len(env.events)-1]; last != "step:0" {
		t.Errorf("reset: expected a no-op after a lost life, got %v", last)
	}
	if !step.First() {
		t.Errorf("reset: expected first timestep, got %v", step)
	}

	// Steps 5 and 6, where the game ends
	var done bool
	for i := 0; i < 2; i++ {
		if _, done, err = e.Step(2); err != nil {
			t.Fatal(err)
		}
	}
	if !done || !e.WasRealDone() {
		t.Errorf("step: expected game over, got done == %v, real done == %v",
			done, e.WasRealDone())
	}

	// The game is over, so the environment is truly reset
	if _, err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	if env.count("reset") != 2 {
		t.Errorf("reset: expected a true reset after game over, got events "+
			"%v", env.events)
	}
}

func TestEpisodicLifeZeroLivesDelay(t *testing.T) {
	// Lives drop 2 -> 1 on step 2, then to 0 on step 4, but the game
	// only reports done on step 7
	env := newScripted("NOOP", "FIRE", "RIGHT")
	env.lives = 2
	env.onStep = func(s *scripted, _ int) (float64, bool) {
		if s.steps == 2 || s.steps == 4 {
			s.lives--
		}
		return 0, s.steps == 7
	}

	e := NewEpisodicLife(env)
	if _, err := e.Reset(); err != nil {
		t.Fatal(err)
	}

	var doneAt []int
	for i := 1; i <= 7; i++ {
		_, done, err := e.Step(2)
		if err != nil {
			t.Fatal(err)
		}
		if done {
			doneAt = append(doneAt, i)
		}
	}

	if len(doneAt) != 2 || doneAt[0] != 2 || doneAt[1] != 7 {
		t.Errorf("step: expected episode ends on steps [2 7], got %v", doneAt)
	}
}

func TestEpisodicLifeBonusLife(t *testing.T) {
	env := newScripted("NOOP", "FIRE", "RIGHT")
	env.onStep = func(s *scripted, _ int) (float64, bool) {
		switch s.steps {
		case 2:
			s.lives++
		case 3:
			s.lives--
		}
		return 0, false
	}

	e := NewEpisodicLife(env)
	if _, err := e.Reset(); err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		_, done, err := e.Step(2)
		if err != nil {
			t.Fatal(err)
		}
		if done != (i == 3) {
			t.Errorf("step %v: expected done == %v, got %v", i, i == 3, done)
		}
	}
}
