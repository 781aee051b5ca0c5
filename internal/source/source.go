// Package source implements the InstrumentSource graph node: a
// sample-accurate scheduler that turns a sorted list of played notes into
// play/release calls on an Instrument.
package source

import (
	"container/heap"
	"sort"

	"github.com/charmbracelet/log"

	"txtsynth/internal/graph"
	"txtsynth/internal/instrument"
	"txtsynth/internal/music"
	"txtsynth/internal/wave"
)

// InstrumentSource is a zero-input, one-output graph.Node that drives an
// Instrument from a fixed list of notes.
type InstrumentSource struct {
	instrument instrument.Instrument

	playQueue []queuedPlay
	nextNote  int

	releases releaseHeap

	samplesProcessed int64
}

type queuedPlay struct {
	beginSample int64
	endSample   int64
	note        music.Note
	velocity    music.Velocity
}

type queuedRelease struct {
	endSample int64
	handle    instrument.PlayHandle
}

// releaseHeap is a min-heap ordered by end sample, so the earliest pending
// release is always at the root.
type releaseHeap []queuedRelease

func (h releaseHeap) Len() int            { return len(h) }
func (h releaseHeap) Less(i, j int) bool  { return h[i].endSample < h[j].endSample }
func (h releaseHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *releaseHeap) Push(x interface{}) { *h = append(*h, x.(queuedRelease)) }
func (h *releaseHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// New builds an InstrumentSource from a track's notes, converting their
// measure-relative times to sample positions up front. notes need not be
// pre-sorted; New sorts them by start sample, the order fill requires.
func New(sampleRate int64, timeSig music.TimeSig, inst instrument.Instrument, notes []music.PlayedNote) *InstrumentSource {
	playQueue := make([]queuedPlay, len(notes))
	for i, n := range notes {
		playQueue[i] = queuedPlay{
			beginSample: timeSig.Samples(n.Start, sampleRate),
			endSample:   timeSig.Samples(n.Start.Add(n.Duration), sampleRate),
			note:        n.Note,
			velocity:    n.Velocity,
		}
	}
	sort.SliceStable(playQueue, func(i, j int) bool {
		return playQueue[i].beginSample < playQueue[j].beginSample
	})

	return &InstrumentSource{
		instrument: inst,
		playQueue:  playQueue,
	}
}

// NumInputs is always zero: an InstrumentSource originates audio.
func (s *InstrumentSource) NumInputs() int { return 0 }

// NumOutputs is always one.
func (s *InstrumentSource) NumOutputs() int { return 1 }

// Render fills the node's single output with the instrument's audio for
// this block, issuing any play/release events that fall due within it.
// Plays for a block are issued before releases, so a note lasting less than
// one block still produces sound.
func (s *InstrumentSource) Render(rio *graph.RenderIO) {
	output := rio.Output(0)
	output.FillZero()

	bufferStart := s.samplesProcessed
	bufferEnd := s.samplesProcessed + int64(output.Len())

	for s.nextNote < len(s.playQueue) && s.playQueue[s.nextNote].beginSample < bufferEnd {
		note := s.playQueue[s.nextNote]
		handle := s.instrument.PlayNote(int(note.beginSample-bufferStart), note.note, note.velocity)
		log.Debug("play", "sample", note.beginSample, "note", note.note, "handle", handle)
		heap.Push(&s.releases, queuedRelease{endSample: note.endSample, handle: handle})
		s.nextNote++
	}

	for s.releases.Len() > 0 && s.releases[0].endSample < bufferEnd {
		release := heap.Pop(&s.releases).(queuedRelease)
		log.Debug("release", "sample", release.endSample, "handle", release.handle)
		s.instrument.ReleaseNote(int(release.endSample-bufferStart), release.handle)
	}

	s.samplesProcessed = bufferEnd
	s.instrument.FillBuffer(fillTarget(output))
}

func fillTarget(b *wave.Buffer) []wave.Stereo[float64] {
	return b.SamplesMut()
}
