// Package instrument implements polyphonic note-sampling instruments: a
// generic voice pool (Poly) and the Wavinator test synthesizer built on it.
package instrument

import (
	"txtsynth/internal/music"
	"txtsynth/internal/wave"
)

// Instrument is the interface a graph node uses to drive a synthesizer.
type Instrument interface {
	// PlayNote starts a note sampleDelay samples into the next FillBuffer
	// call, returning a handle that ReleaseNote can later use to stop it.
	// A note with a non-zero sustain level keeps playing until released.
	PlayNote(sampleDelay int, note music.Note, velocity music.Velocity) PlayHandle
	// ReleaseNote releases a previously played note. A no-op if the note
	// was already released; tightens the release time if it was only
	// scheduled for release before.
	ReleaseNote(sampleDelay int, handle PlayHandle)
	// FillBuffer adds the waveforms of all currently playing notes onto
	// output.
	FillBuffer(output []wave.Stereo[float64])
}

// PlayHandle is an opaque reference to a voice started by PlayNote.
type PlayHandle int
