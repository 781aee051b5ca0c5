// Package playback implements an optional live-monitoring sink that writes
// rendered audio straight to the default sound device instead of a byte
// stream, using portaudio the same way the pack's other audio tools do.
package playback

import (
	"github.com/gordonklaus/portaudio"

	"txtsynth/internal/graph"
)

// Sink is a zero-output graph node that streams its single input to the
// default output device. Close must be called once rendering is done.
type Sink struct {
	stream  *portaudio.Stream
	scratch []float32
}

// Open initializes portaudio and opens a stereo output stream at the given
// sample rate and block size. The caller must call Close when done.
func Open(sampleRate float64, blockSize int) (*Sink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	s := &Sink{scratch: make([]float32, blockSize*2)}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, blockSize, &s.scratch)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	s.stream = stream
	return s, nil
}

// Close stops the stream and releases portaudio resources.
func (s *Sink) Close() error {
	err := s.stream.Stop()
	if closeErr := s.stream.Close(); err == nil {
		err = closeErr
	}
	portaudio.Terminate()
	return err
}

// NumInputs is always one.
func (s *Sink) NumInputs() int { return 1 }

// NumOutputs is always zero.
func (s *Sink) NumOutputs() int { return 0 }

// Render interleaves the input block into float32 frames and blocks until
// portaudio's ring buffer accepts them, exactly as a slow file write would.
func (s *Sink) Render(rio *graph.RenderIO) {
	input := rio.Input(0).Samples()
	for i, sample := range input {
		s.scratch[i*2] = float32(sample.Left)
		s.scratch[i*2+1] = float32(sample.Right)
	}
	if err := s.stream.Write(); err != nil {
		// Overruns and underruns are routine with live playback; the
		// render loop keeps going rather than aborting the whole song.
		return
	}
}
