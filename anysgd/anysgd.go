// Package anysgd provides tools for mini-batch Stochastic
// Gradient Descent over in-memory sample lists.
//
// It covers the pieces of a training loop that do not
// depend on the model: splitting and shuffling samples,
// enumerating mini-batch ranges, learning rate schedules,
// and gradient transformations.
package anysgd

import "github.com/unixpickle/anydiff"

// A SampleList represents a list of training samples.
type SampleList interface {
	// Len returns the number of samples.
	Len() int

	// Swap swaps two samples.
	Swap(i, j int)

	// Slice generates a shallow copy of a subset of the
	// list.
	Slice(i, j int) SampleList
}

// A Rater determines the learning rate given the epoch
// number.
//
// Epochs are numbered starting at 1.
type Rater interface {
	Rate(epoch int) float64
}

// A Transformer transforms gradients.
// For example, pre-conditioning could be implemented as a
// transformer.
//
// After its first call, a Transformer expects to see
// gradients of the same form (i.e. containing the same
// variables).
//
// A Transformer may modify its own input and return the
// same gradient as an output.
// However, a Transformer should not retain a reference to
// its input after Transform returns.
type Transformer interface {
	Transform(g anydiff.Grad) anydiff.Grad
}

// Step applies one descent step to the variables in g.
//
// Each Transformer is applied in order, then the result
// is scaled by -rate and added to the variables.
// The gradient g may be modified.
func Step(g anydiff.Grad, rate float64, ts ...Transformer) {
	for _, t := range ts {
		if t != nil {
			g = t.Transform(g)
		}
	}
	scaleGrad(g, -rate)
	g.AddToVars()
}
