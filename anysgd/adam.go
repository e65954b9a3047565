package anysgd

import (
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
)

const (
	adamDefaultDecayRate1 = 0.9
	adamDefaultDecayRate2 = 0.999
	adamDefaultDamping    = 1e-8
)

// Adam implements the adaptive moments SGD technique
// described in https://arxiv.org/pdf/1412.6980.pdf.
type Adam struct {
	// These are decay rates for the first and second
	// moments of the gradient.
	// If these are 0, defaults as suggested in the
	// original Adam paper are used.
	DecayRate1, DecayRate2 float64

	// Damping is used to prevent divisions by zero.
	// This should be very small.
	// If it is 0, a default is used.
	Damping float64

	firstMoment  anydiff.Grad
	secondMoment anydiff.Grad
	iteration    float64
}

// Transform replaces the gradient with the bias-corrected
// ratio of its running first and second moments.
//
// This is not thread-safe.
func (a *Adam) Transform(realGrad anydiff.Grad) anydiff.Grad {
	a.updateMoments(realGrad)

	a.iteration++
	decay1 := valueOrDefault(a.DecayRate1, adamDefaultDecayRate1)
	decay2 := valueOrDefault(a.DecayRate2, adamDefaultDecayRate2)
	scale := math.Sqrt(1-math.Pow(decay2, a.iteration)) /
		(1 - math.Pow(decay1, a.iteration))
	damping := valueOrDefault(a.Damping, adamDefaultDamping)

	for variable, vec := range realGrad {
		c := vec.Creator()
		vec.Set(a.firstMoment[variable])
		vec.Scale(c.MakeNumeric(scale))

		divisor := a.secondMoment[variable].Copy()
		divisor.AddScalar(c.MakeNumeric(damping))
		anyvec.Pow(divisor, c.MakeNumeric(-0.5))
		vec.Mul(divisor)
	}

	return realGrad
}

func (a *Adam) updateMoments(grad anydiff.Grad) {
	decay1 := valueOrDefault(a.DecayRate1, adamDefaultDecayRate1)
	decay2 := valueOrDefault(a.DecayRate2, adamDefaultDecayRate2)

	if a.firstMoment == nil {
		a.firstMoment = copyGrad(grad)
		scaleGrad(a.firstMoment, 1-decay1)
		a.secondMoment = copyGrad(grad)
		for _, v := range a.secondMoment {
			anyvec.Pow(v, v.Creator().MakeNumeric(2))
		}
		scaleGrad(a.secondMoment, 1-decay2)
		return
	}

	scaleGrad(a.firstMoment, decay1)
	scaleGrad(a.secondMoment, decay2)
	for variable, vec := range grad {
		c := vec.Creator()

		first := vec.Copy()
		first.Scale(c.MakeNumeric(1 - decay1))
		a.firstMoment[variable].Add(first)

		second := vec.Copy()
		anyvec.Pow(second, c.MakeNumeric(2))
		second.Scale(c.MakeNumeric(1 - decay2))
		a.secondMoment[variable].Add(second)
	}
}
