package anymem

import "github.com/unixpickle/anydiff"

// A Cost measures the error of a batch of model outputs.
//
// It takes a packed batch of desired outputs and actual
// outputs, and produces one cost per example.
type Cost interface {
	Cost(desired, actual anydiff.Res, n int) anydiff.Res
}

// DotCost computes the cost by taking the dot product of
// the desired and actual outputs, and then negating it.
//
// Applied to log-probabilities and a one-hot answer, this
// is the cross-entropy loss.
// A multi-hot answer adds up the cross-entropy of every
// answer word.
type DotCost struct{}

// Cost takes the dot product of each actual output with
// each desired output, negates it, and uses that as the
// cost.
func (d DotCost) Cost(desired, actual anydiff.Res, n int) anydiff.Res {
	comb := anydiff.Mul(desired, actual)
	dots := anydiff.SumCols(&anydiff.Matrix{
		Data: comb,
		Rows: n,
		Cols: comb.Output().Len() / n,
	})
	return anydiff.Scale(dots, dots.Output().Creator().MakeNumeric(-1))
}
