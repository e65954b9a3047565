package anysgd

import (
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
)

// ClipNorm is a Transformer which rescales the gradient
// of every variable whose Euclidean norm exceeds Max.
//
// Each variable is clipped independently.
// A Max of 0 disables clipping.
type ClipNorm struct {
	Max float64
}

// Transform clips g in place and returns it.
func (c *ClipNorm) Transform(g anydiff.Grad) anydiff.Grad {
	if c.Max <= 0 {
		return g
	}
	for _, vec := range g {
		norm := numericFloat(anyvec.Norm(vec))
		if norm > c.Max {
			vec.Scale(vec.Creator().MakeNumeric(c.Max / norm))
		}
	}
	return g
}

func numericFloat(n anyvec.Numeric) float64 {
	switch n := n.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		panic("unsupported numeric type")
	}
}
