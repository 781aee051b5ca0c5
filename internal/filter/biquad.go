// Package filter implements biquadratic IIR filters, direct form I, based
// on the audio-EQ-cookbook formulation.
package filter

import "math"

// BiquadType names a filter response; ToCoefficients resolves it against a
// sample rate into concrete BiquadCoefficients.
type BiquadType struct {
	Kind   BiquadKind
	Cutoff float64 // Hz, used by Lowpass
	Q      float64 // resonance, used by Lowpass
}

// BiquadKind selects the filter response shape.
type BiquadKind int

const (
	// Allpass lets the signal pass unchanged.
	Allpass BiquadKind = iota
	// Lowpass attenuates frequencies above Cutoff, with Q controlling
	// resonance at the cutoff.
	Lowpass
)

// ToCoefficients resolves this filter type into concrete coefficients for
// the given sample rate.
func (t BiquadType) ToCoefficients(sampleRate float64) BiquadCoefficients {
	switch t.Kind {
	case Lowpass:
		return LowpassCoefficients(sampleRate, t.Cutoff, t.Q)
	default:
		return AllpassCoefficients()
	}
}

// BiquadCoefficients are the five coefficients of a biquadratic filter.
type BiquadCoefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// AllpassCoefficients returns the identity filter.
func AllpassCoefficients() BiquadCoefficients {
	return BiquadCoefficients{B0: 1.0}
}

// LowpassCoefficients computes lowpass coefficients for the given cutoff
// frequency and Q factor at the given sample rate.
func LowpassCoefficients(sampleRate, cutoff, q float64) BiquadCoefficients {
	omega0 := 2.0 * math.Pi * cutoff / sampleRate
	sinOmega, cosOmega := math.Sincos(omega0)
	alpha := sinOmega / (2.0 * q)
	a0 := 1.0 + alpha
	a0Inv := 1.0 / a0
	return BiquadCoefficients{
		B0: a0Inv * (1.0 - cosOmega) / 2.0,
		B1: a0Inv * (1.0 - cosOmega),
		B2: a0Inv * (1.0 - cosOmega) / 2.0,
		A1: a0Inv * (-2.0 * cosOmega),
		A2: a0Inv * (1.0 - alpha),
	}
}

// Biquad is a biquadratic filter with four delay taps, direct form I.
type Biquad struct {
	x1, x2 float64
	y1, y2 float64
}

// NewBiquad returns a filter with zeroed delay taps.
func NewBiquad() *Biquad {
	return &Biquad{}
}

// Step feeds input through the filter using coefficients c and returns the
// output.
func (b *Biquad) Step(c BiquadCoefficients, input float64) float64 {
	output := c.B0*input + c.B1*b.x1 + c.B2*b.x2 - c.A1*b.y1 - c.A2*b.y2
	b.x2 = b.x1
	b.x1 = input
	b.y2 = b.y1
	b.y1 = output
	return output
}
