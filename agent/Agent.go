// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/goatari/timestep"
)

// Agent determines which actions are taken in an environment
//
// Training agents is outside the scope of this module. Agents here
// only select actions so that preprocessed environments can be rolled
// out and inspected.
type Agent interface {
	// SelectAction returns the index of the action to take after
	// observing t
	SelectAction(t timestep.TimeStep) int
}
