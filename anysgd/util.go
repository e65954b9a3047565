package anysgd

import (
	"math"
	"math/rand"

	"github.com/unixpickle/anydiff"
)

// Shuffle shuffles a list of samples.
//
// If r is nil, the global source from math/rand is used.
func Shuffle(s SampleList, r *rand.Rand) {
	for i := 0; i < s.Len(); i++ {
		j := i + intn(r, s.Len()-i)
		s.Swap(i, j)
	}
}

// A ConstRater is a Rater which always returns the same
// constant learning rate.
type ConstRater float64

// Rate returns float64(c).
func (c ConstRater) Rate(epoch int) float64 {
	return float64(c)
}

// AnnealRater halves a base learning rate on a staircase
// schedule.
//
// For epoch t, the rate is
//
//	Base / 2^floor(min(t-1, StopEpoch) / Interval)
//
// so it halves every Interval epochs until StopEpoch and
// is constant afterwards.
type AnnealRater struct {
	Base      float64
	Interval  float64
	StopEpoch float64
}

// Rate computes the learning rate for the epoch.
func (a *AnnealRater) Rate(epoch int) float64 {
	if a.Interval <= 0 {
		return a.Base
	}
	t := math.Min(float64(epoch-1), a.StopEpoch)
	if t < 0 {
		t = 0
	}
	return a.Base / math.Pow(2, math.Floor(t/a.Interval))
}

func intn(r *rand.Rand, n int) int {
	if r == nil {
		return rand.Intn(n)
	}
	return r.Intn(n)
}

func copyGrad(g anydiff.Grad) anydiff.Grad {
	res := anydiff.Grad{}
	for v, vec := range g {
		res[v] = vec.Copy()
	}
	return res
}

func scaleGrad(g anydiff.Grad, s float64) {
	for _, vec := range g {
		vec.Scale(vec.Creator().MakeNumeric(s))
	}
}

func valueOrDefault(val, def float64) float64 {
	if val == 0 {
		return def
	}
	return val
}
