package instrument

import (
	"math"

	"txtsynth/internal/automation"
	"txtsynth/internal/envelope"
	"txtsynth/internal/filter"
	"txtsynth/internal/music"
	"txtsynth/internal/osc"
	"txtsynth/internal/util"
	"txtsynth/internal/wave"
)

// Wavinator is the built-in test synthesizer: a unison oscillator bank with
// an ADSR envelope and a per-voice biquad filter.
type Wavinator = Poly[*wavinatorVoice, WavinatorParams]

// WavinatorParams are the sound-shaping parameters shared by every voice a
// Wavinator plays.
type WavinatorParams struct {
	// Gain is the output gain automation expression.
	Gain automation.Expr
	// Pan is the stereo pan automation expression applied to the summed
	// unison signal, in [-1, 1].
	Pan automation.Expr

	// Unison is the number of oscillator voices per note.
	Unison int
	// UnisonDetuneCents is the detune, in cents, per unit of distance from
	// the center of the unison voices, so the outermost voices are detuned
	// the most.
	UnisonDetuneCents float64
	// UnisonSpread controls how evenly the unison voices contribute to the
	// mix: larger spreads more evenly, smaller concentrates on the center.
	UnisonSpread float64

	WaveShape osc.WaveShape
	Envelope  envelope.ADSR
	Filter    filter.BiquadType
	Tuning    music.Tuning
}

// DefaultWavinatorParams mirrors the synthesizer's built-in test sound.
func DefaultWavinatorParams() WavinatorParams {
	return WavinatorParams{
		Gain:              automation.Const(1.0),
		Pan:               automation.Const(0.0),
		Unison:            1,
		UnisonDetuneCents: 3.0,
		UnisonSpread:      1.0,
		WaveShape:         osc.Sine,
		Envelope: envelope.ADSR{
			Attack: 0.01, Decay: 0.0, Sustain: 1.0, Release: 0.1,
		},
		Filter: filter.BiquadType{Kind: filter.Allpass},
		Tuning: music.DefaultTuning(),
	}
}

// NewWavinator builds a voice pool driven by WavinatorParams.
func NewWavinator(sampleRate float64, params WavinatorParams) *Wavinator {
	return NewPoly[*wavinatorVoice, WavinatorParams](sampleRate, params, newWavinatorVoice)
}

// stereoBiquad holds one filter per channel.
type stereoBiquad struct {
	Left, Right *filter.Biquad
}

type wavinatorVoice struct {
	voices       []osc.Phase
	env          *envelope.EvalADSR
	biquad       stereoBiquad
	midpoint     float64
	centerFreq   float64
	velocityGain float64
}

func newWavinatorVoice(note music.Note, velocity music.Velocity, sampleRate float64, params *WavinatorParams) *wavinatorVoice {
	unison := params.Unison
	if unison < 1 {
		unison = 1
	}
	voices := make([]osc.Phase, unison)
	return &wavinatorVoice{
		voices:   voices,
		env:      params.Envelope.Instantiate(sampleRate),
		biquad:   stereoBiquad{Left: filter.NewBiquad(), Right: filter.NewBiquad()},
		midpoint: (float64(unison) - 1.0) / 2.0,
		centerFreq: params.Tuning.Frequency(note),
		velocityGain: velocity.Amplitude(),
	}
}

func (v *wavinatorVoice) Sample(globalSample, noteSample int64, sampleRate float64, params *WavinatorParams) (wave.Stereo[float64], bool) {
	if v.env.Faded() {
		return wave.Stereo[float64]{}, false
	}

	builtins := automation.BuiltInValues{
		GlobalTimeSeconds: float64(globalSample) / sampleRate,
		NoteTimeSeconds:   float64(noteSample) / sampleRate,
	}

	var value float64
	var gainSum float64
	spread := params.UnisonSpread
	if spread < 0.001 {
		spread = 0.001
	}
	spreadSquared := spread * spread

	for index := range v.voices {
		delta := float64(index) - v.midpoint
		gain := math.Exp(-delta * delta / (2.0 * spreadSquared))

		value += params.WaveShape.Eval(v.voices[index]) * gain
		gainSum += gain

		detune := util.FromCents(params.UnisonDetuneCents * delta)
		frequency := detune * v.centerFreq
		v.voices[index] = v.voices[index].StepFrequency(frequency, sampleRate)
	}

	envelopeGain := v.env.Step()
	instrumentGain, err := automation.Eval(params.Gain, builtins, nil)
	if err != nil {
		instrumentGain = 0
	}
	correctionGain := 1.0 / gainSum

	finalGain := instrumentGain * envelopeGain * v.velocityGain * correctionGain

	pan, err := automation.Eval(params.Pan, builtins, nil)
	if err != nil {
		pan = 0
	}
	output := wave.PannedMono(value, pan).Scale(finalGain)

	filterCoeffs := params.Filter.ToCoefficients(sampleRate)
	return wave.Stereo[float64]{
		Left:  v.biquad.Left.Step(filterCoeffs, output.Left),
		Right: v.biquad.Right.Step(filterCoeffs, output.Right),
	}, true
}

func (v *wavinatorVoice) Release() {
	v.env.Release()
}
