// Package osc implements phase-accumulating waveform oscillators.
package osc

import "math"

// Phase is a wave position normalized to [0, 1).
type Phase float64

// ZeroPhase is the start of a cycle.
const ZeroPhase Phase = 0

// NewPhase normalizes an arbitrary offset into [0, 1).
func NewPhase(offset float64) Phase {
	for offset >= 1.0 {
		offset -= 1.0
	}
	for offset < 0.0 {
		offset += 1.0
	}
	return Phase(offset)
}

// Offset returns the raw [0, 1) value.
func (p Phase) Offset() float64 { return float64(p) }

// Step advances the phase by amount, wrapping around.
func (p Phase) Step(amount float64) Phase {
	return NewPhase(float64(p) + amount)
}

// StepFrequency advances the phase by one sample's worth of the given
// frequency at the given sample rate.
func (p Phase) StepFrequency(frequency, sampleRate float64) Phase {
	return p.Step(frequency / sampleRate)
}

// WaveShape selects which waveform an Oscillator produces.
type WaveShape int

const (
	Sine WaveShape = iota
	Rectangle
	Triangle
	Saw
	SuperSaw
	TwoSidedSaw
	AlternatingSaw
)

// Eval samples the waveform at the given phase, returning a value in
// [-1, 1].
func (shape WaveShape) Eval(phase Phase) float64 {
	offset := phase.Offset()
	switch shape {
	case Sine:
		return math.Sin(offset * 2.0 * math.Pi)
	case Rectangle:
		if offset < 0.5 {
			return 1.0
		}
		return -1.0
	case Triangle:
		switch {
		case offset < 0.25:
			return 4.0 * offset
		case offset < 0.75:
			return 2.0 - 4.0*offset
		default:
			return 4.0*offset - 4.0
		}
	case Saw:
		return 2.0*offset - 1.0
	case SuperSaw:
		const slope = 3.0
		if offset < 0.5 {
			return slope*offset - 1.0
		}
		return 1.0 + slope*(offset-1.0)
	case TwoSidedSaw:
		if offset < 0.5 {
			return 2.0 * offset
		}
		return -2.0 * (offset - 0.5)
	case AlternatingSaw:
		upsaw := 2.0*offset - 1.0
		downsaw := -upsaw
		const breaks = 5
		piece := int(offset * (breaks + 1))
		if piece%2 == 0 {
			return upsaw
		}
		return downsaw
	default:
		return 0
	}
}

// Oscillator samples a WaveShape at a fixed sample rate and frequency,
// accumulating phase one sample at a time.
type Oscillator struct {
	shape      WaveShape
	sampleRate float64
	frequency  float64
	phase      Phase
}

// NewOscillator builds an oscillator starting at phase zero.
func NewOscillator(shape WaveShape, sampleRate, frequency float64) *Oscillator {
	return &Oscillator{shape: shape, sampleRate: sampleRate, frequency: frequency, phase: ZeroPhase}
}

// SetFrequency changes the oscillator's frequency without resetting phase,
// so automation can glide a pitch without a click.
func (o *Oscillator) SetFrequency(frequency float64) {
	o.frequency = frequency
}

// NextSample advances the oscillator by one sample and returns it.
func (o *Oscillator) NextSample() float64 {
	result := o.shape.Eval(o.phase)
	o.phase = o.phase.StepFrequency(o.frequency, o.sampleRate)
	return result
}
