// Package tensorutils provides utilities for working with tensors
package tensorutils

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Slice implements a struct that can be used for slicing tensors.
//
// Given a tensor T and a Slice S, T.Slice(..., S, ...) is equivalent to
// T[..., S.start:S.end:S.step, ...]
type Slice struct {
	start, end, step int
}

// Start returns the start index for the tensor slice
func (s Slice) Start() int {
	return s.start
}

// End returns the ending index for the tensor slice
func (s Slice) End() int {
	return s.end
}

// Step returns the step for the tensor slice
func (s Slice) Step() int {
	return s.step
}

// NewSlice returns a new Slice that can be used to slice tensors
func NewSlice(start, stop, step int) Slice {
	return Slice{start, stop, step}
}

// Frame returns a copy of the i-th sub-tensor of t along its first
// axis. For a stack of frames of shape (N, C, H, W), Frame returns
// frame i with shape (C, H, W).
func Frame(t *tensor.Dense, i int) (*tensor.Dense, error) {
	shape := t.Shape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("frame: expected tensor of rank at least 2, "+
			"got shape %v", shape)
	}
	if i < 0 || i >= shape[0] {
		return nil, fmt.Errorf("frame: index %v out of range [0, %v)", i,
			shape[0])
	}

	view, err := t.Slice(NewSlice(i, i+1, 1))
	if err != nil {
		return nil, fmt.Errorf("frame: could not slice tensor: %v", err)
	}

	frame := view.Materialize().(*tensor.Dense).Clone().(*tensor.Dense)
	if err := frame.Reshape(shape[1:].Clone()...); err != nil {
		return nil, fmt.Errorf("frame: could not reshape frame: %v", err)
	}
	return frame, nil
}
