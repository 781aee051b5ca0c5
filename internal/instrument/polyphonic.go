package instrument

import (
	"math"

	"github.com/charmbracelet/log"

	"txtsynth/internal/music"
	"txtsynth/internal/wave"
)

// NoteSampler generates the sound of a single playing note. Params carries
// whatever configuration the sampler needs (oscillator shape, envelope,
// filter, and so on).
type NoteSampler[Params any] interface {
	// Sample produces the next stereo sample for this voice. globalSample
	// counts samples since the pool was created; noteSample counts samples
	// since this voice actually started sounding (after its play delay).
	// Both let automation expressions read elapsed time. ok is false once
	// the voice has fully faded; Sample is never called again after that.
	Sample(globalSample, noteSample int64, sampleRate float64, params *Params) (sample wave.Stereo[float64], ok bool)
	// Release is called once, the first time the note is released.
	Release()
}

// noInfiniteDelay is the sentinel used for "not yet scheduled for release".
const noInfiniteDelay = math.MaxInt64

// Poly is a generic polyphonic voice pool: it keeps one Sampler instance
// per currently-playing note and mixes their output together.
type Poly[Sampler NoteSampler[Params], Params any] struct {
	sampleRate float64
	parameters Params
	newSampler func(note music.Note, velocity music.Velocity, sampleRate float64, params *Params) Sampler

	samplesProcessed int64
	nextPlayHandle   PlayHandle
	activeNotes      []noteState[Sampler, Params]
}

type noteState[Sampler NoteSampler[Params], Params any] struct {
	handle              PlayHandle
	playDelaySamples    int64
	releaseDelaySamples int64
	sampler             Sampler
	released            bool
	samplesSounded      int64
}

// sample advances this voice by one sample, applying the play/release
// delay bookkeeping: a voice that hasn't started yet emits silence, and a
// voice whose release delay just elapsed is released exactly once.
func (n *noteState[Sampler, Params]) sample(globalSample int64, sampleRate float64, params *Params) (wave.Stereo[float64], bool) {
	if n.playDelaySamples > 0 {
		n.playDelaySamples--
		n.releaseDelaySamples--
		return wave.Stereo[float64]{}, true
	}
	if n.releaseDelaySamples > 0 {
		n.releaseDelaySamples--
	} else if !n.released {
		n.released = true
		n.sampler.Release()
	}
	value, ok := n.sampler.Sample(globalSample, n.samplesSounded, sampleRate, params)
	n.samplesSounded++
	return value, ok
}

// NewPoly builds a voice pool with the given shared parameters and
// per-voice constructor.
func NewPoly[Sampler NoteSampler[Params], Params any](
	sampleRate float64,
	params Params,
	newSampler func(note music.Note, velocity music.Velocity, sampleRate float64, params *Params) Sampler,
) *Poly[Sampler, Params] {
	return &Poly[Sampler, Params]{
		sampleRate: sampleRate,
		parameters: params,
		newSampler: newSampler,
	}
}

// Params returns a pointer to the pool's shared parameters, so a caller can
// mutate automation-driven fields between blocks.
func (p *Poly[Sampler, Params]) Params() *Params { return &p.parameters }

func (p *Poly[Sampler, Params]) nextHandle() PlayHandle {
	h := p.nextPlayHandle
	p.nextPlayHandle++
	return h
}

// PlayNote starts a new voice.
func (p *Poly[Sampler, Params]) PlayNote(sampleDelay int, note music.Note, velocity music.Velocity) PlayHandle {
	handle := p.nextHandle()
	p.activeNotes = append(p.activeNotes, noteState[Sampler, Params]{
		handle:              handle,
		playDelaySamples:    int64(sampleDelay),
		releaseDelaySamples: noInfiniteDelay,
		sampler:             p.newSampler(note, velocity, p.sampleRate, &p.parameters),
	})
	return handle
}

// ReleaseNote schedules the release of a previously played voice. If it was
// already scheduled to release, the earlier of the two times wins, but
// never earlier than the note's own start.
func (p *Poly[Sampler, Params]) ReleaseNote(sampleDelay int, handle PlayHandle) {
	for i := range p.activeNotes {
		voice := &p.activeNotes[i]
		if voice.handle != handle {
			continue
		}
		delay := int64(sampleDelay)
		if delay < voice.releaseDelaySamples {
			voice.releaseDelaySamples = delay
		}
		if voice.releaseDelaySamples < voice.playDelaySamples {
			voice.releaseDelaySamples = voice.playDelaySamples
		}
		return
	}
}

// FillBuffer mixes every active voice's output onto output, removing voices
// that have fully faded.
func (p *Poly[Sampler, Params]) FillBuffer(output []wave.Stereo[float64]) {
	for i := range output {
		globalSample := p.samplesProcessed + int64(i)
		var mix wave.Stereo[float64]
		for voiceIndex := len(p.activeNotes) - 1; voiceIndex >= 0; voiceIndex-- {
			value, ok := p.activeNotes[voiceIndex].sample(globalSample, p.sampleRate, &p.parameters)
			if ok {
				mix = mix.Add(value)
				continue
			}
			log.Debug("removing faded voice", "handle", p.activeNotes[voiceIndex].handle)
			p.activeNotes = swapRemove(p.activeNotes, voiceIndex)
		}
		output[i] = output[i].Add(mix)
	}
	p.samplesProcessed += int64(len(output))
}

func swapRemove[T any](s []T, i int) []T {
	last := len(s) - 1
	s[i] = s[last]
	return s[:last]
}
