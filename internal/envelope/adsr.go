// Package envelope implements sample-accurate Attack-Decay-Sustain-Release
// envelopes.
package envelope

import "math"

// ADSR describes an envelope shape in seconds. When a key is pressed, the
// amplitude rises from zero to one over Attack seconds, then decays over
// Decay seconds to the Sustain level where it holds as long as the key is
// pressed. When released, it falls back to zero over Release seconds.
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64
}

// Instantiate builds a sample-accurate evaluator for this envelope at the
// given sample rate.
func (a ADSR) Instantiate(sampleRate float64) *EvalADSR {
	return &EvalADSR{
		attackSamples:  int(math.Round(a.Attack * sampleRate)),
		decaySamples:   int(math.Round(a.Decay * sampleRate)),
		releaseSamples: int(math.Round(a.Release * sampleRate)),
		sustainLevel:   a.Sustain,
		releaseLevel:   a.Sustain,
	}
}

// EvalADSR steps through an ADSR envelope one sample at a time.
type EvalADSR struct {
	attackSamples  int
	decaySamples   int
	releaseSamples int
	sustainLevel   float64
	currentSample  int
	releaseLevel   float64
	released       bool
}

// Step returns the envelope's gain at the current sample and advances by
// one sample.
func (e *EvalADSR) Step() float64 {
	gain := e.computeGain()
	advanceToSustain := !e.released && e.currentSample < e.attackSamples+e.decaySamples
	advanceToRelease := e.released && e.currentSample < e.attackSamples+e.decaySamples+e.releaseSamples
	if advanceToRelease || advanceToSustain {
		e.currentSample++
	}
	return gain
}

func (e *EvalADSR) computeGain() float64 {
	switch {
	case e.currentSample < e.attackSamples:
		return float64(e.currentSample) / float64(e.attackSamples)
	case e.currentSample < e.attackSamples+e.decaySamples:
		progress := float64(e.currentSample-e.attackSamples) / float64(e.decaySamples)
		return 1.0 - progress*(1.0-e.sustainLevel)
	case !e.released && e.currentSample == e.attackSamples+e.decaySamples:
		return e.sustainLevel
	case e.currentSample < e.attackSamples+e.decaySamples+e.releaseSamples:
		progress := float64(e.currentSample-e.attackSamples-e.decaySamples) / float64(e.releaseSamples)
		return (1.0 - progress) * e.releaseLevel
	default:
		return 0.0
	}
}

// Released reports whether Release has been called.
func (e *EvalADSR) Released() bool { return e.released }

// Release triggers the release phase, capturing the current gain as the
// level the release curve falls from.
func (e *EvalADSR) Release() {
	if !e.released {
		e.releaseLevel = e.computeGain()
		e.currentSample = e.attackSamples + e.decaySamples
		e.released = true
	}
}

// Faded reports whether all subsequent Step calls will return zero: either
// the release phase has fully decayed, or the sustain level is zero and the
// decay phase has completed.
func (e *EvalADSR) Faded() bool {
	endDecay := e.attackSamples + e.decaySamples
	return e.currentSample == endDecay+e.releaseSamples ||
		(e.sustainLevel == 0.0 && e.currentSample >= endDecay)
}
