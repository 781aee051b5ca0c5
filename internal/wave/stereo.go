// Package wave holds the sampled-audio data types shared across the graph:
// stereo sample pairs and the buffers nodes render into.
package wave

// Number is any type Stereo can hold. The graph works in float64 throughout;
// the portaudio preview sink converts its input to float32 frames itself
// rather than through Stereo.
type Number interface {
	~float32 | ~float64
}

// Stereo is a pair of left/right channel values, used both for a single
// sample and, via Buffer, for a whole block of them.
type Stereo[T Number] struct {
	Left, Right T
}

// Mono builds a Stereo value with both channels carrying the same value.
func Mono[T Number](v T) Stereo[T] {
	return Stereo[T]{Left: v, Right: v}
}

// PannedMono spreads a mono signal across stereo channels by linear panning:
// one channel stays at full level while the other is linearly attenuated.
// pan runs from -1 (full left) to +1 (full right).
func PannedMono(mono, pan float64) Stereo[float64] {
	left := mono * min64(1.0, 1.0-pan)
	right := mono * min64(1.0, 1.0+pan)
	return Stereo[float64]{Left: left, Right: right}
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Add returns s + other.
func (s Stereo[T]) Add(other Stereo[T]) Stereo[T] {
	return Stereo[T]{Left: s.Left + other.Left, Right: s.Right + other.Right}
}

// Sub returns s - other.
func (s Stereo[T]) Sub(other Stereo[T]) Stereo[T] {
	return Stereo[T]{Left: s.Left - other.Left, Right: s.Right - other.Right}
}

// Scale returns s scaled by a uniform factor.
func (s Stereo[T]) Scale(factor T) Stereo[T] {
	return Stereo[T]{Left: s.Left * factor, Right: s.Right * factor}
}

// SumStereo adds up a slice of stereo samples, the equivalent of a fold over
// the Add operator.
func SumStereo[T Number](samples []Stereo[T]) Stereo[T] {
	var out Stereo[T]
	for _, s := range samples {
		out = out.Add(s)
	}
	return out
}
