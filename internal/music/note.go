// Package music defines the basic musical primitives shared by the score
// parser, the instruments, and the scheduler: notes, velocities, tunings,
// and time signatures.
package music

import "math"

// Note is a MIDI note index; C4 is 60.
type Note uint8

// NoteName is one of the seven natural note names.
type NoteName int

const (
	NoteC NoteName = iota
	NoteD
	NoteE
	NoteF
	NoteG
	NoteA
	NoteB
)

// Accidental adjusts a named note by a half-tone.
type Accidental int

const (
	Flat Accidental = -1
	Base Accidental = 0
	Sharp Accidental = 1
)

// NoteFromMIDI wraps a raw MIDI note index.
func NoteFromMIDI(midi uint8) Note { return Note(midi) }

// MIDI returns the raw MIDI note index.
func (n Note) MIDI() uint8 { return uint8(n) }

// Index returns the note index as a signed integer, convenient for
// transposition arithmetic.
func (n Note) Index() int { return int(n) }

// Named builds a Note from standard notation, e.g. NoteA, Base, octave 4 is
// A4 (MIDI 69). It reports ok=false if the result falls outside the MIDI
// range 0-127.
func Named(name NoteName, accidental Accidental, octave int) (Note, bool) {
	nameIndex := map[NoteName]int{
		NoteC: 0, NoteD: 2, NoteE: 4, NoteF: 5, NoteG: 7, NoteA: 9, NoteB: 11,
	}[name]
	const normalizeIndex = 60 - 4*12
	index := octave*12 + nameIndex + int(accidental) + normalizeIndex
	if index < 0 || index > 127 {
		return 0, false
	}
	return Note(index), true
}

// Velocity is how hard a note was struck, stored as an integer to avoid
// floating point edge cases like NaN.
type Velocity uint16

// FullVelocity is the maximum possible velocity.
const FullVelocity = Velocity(math.MaxUint16)

// Amplitude converts the velocity to a linear gain in [0, 1].
func (v Velocity) Amplitude() float64 {
	return float64(v) / float64(math.MaxUint16)
}

// VelocityFromAmplitude converts a linear gain in [0, 1] to a Velocity. It
// panics if amplitude is outside that range, mirroring the instrument's
// other bounds checks on malformed input.
func VelocityFromAmplitude(amplitude float64) Velocity {
	if math.IsNaN(amplitude) || amplitude < 0 || amplitude > 1 {
		panic("music: velocity amplitude out of range")
	}
	return Velocity(math.Round(amplitude * float64(math.MaxUint16)))
}
