package wave

import (
	"testing"

	"pgregory.net/rapid"
)

func genStereo(t *rapid.T) Stereo[float64] {
	return Stereo[float64]{
		Left:  rapid.Float64Range(-1000, 1000).Draw(t, "left"),
		Right: rapid.Float64Range(-1000, 1000).Draw(t, "right"),
	}
}

func almostEqualStereo(a, b Stereo[float64]) bool {
	const eps = 1e-6
	diff := func(x, y float64) bool {
		d := x - y
		if d < 0 {
			d = -d
		}
		return d < eps
	}
	return diff(a.Left, b.Left) && diff(a.Right, b.Right)
}

func TestPropertyAddCommutes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := genStereo(t), genStereo(t)
		if !almostEqualStereo(a.Add(b), b.Add(a)) {
			t.Fatalf("%v + %v != %v + %v", a, b, b, a)
		}
	})
}

func TestPropertyAddSubRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := genStereo(t), genStereo(t)
		if !almostEqualStereo(a.Add(b).Sub(b), a) {
			t.Fatalf("(%v + %v) - %v != %v", a, b, b, a)
		}
	})
}

func TestPropertyScaleDistributesOverAdd(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := genStereo(t), genStereo(t)
		factor := rapid.Float64Range(-10, 10).Draw(t, "factor")
		lhs := a.Add(b).Scale(factor)
		rhs := a.Scale(factor).Add(b.Scale(factor))
		if !almostEqualStereo(lhs, rhs) {
			t.Fatalf("(%v + %v) * %v != %v*%v + %v*%v", a, b, factor, factor, a, factor, b)
		}
	})
}

func TestStereoAlgebra(t *testing.T) {
	s := Stereo[float64]{Left: 0.25, Right: 0.5}
	s2 := s.Add(Stereo[float64]{Left: 0.5, Right: -0.25})
	got := s2.Scale(2.0)
	want := Stereo[float64]{Left: 1.5, Right: 0.5}
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPannedMono(t *testing.T) {
	cases := []struct {
		pan  float64
		want Stereo[float64]
	}{
		{0.0, Stereo[float64]{Left: 1.0, Right: 1.0}},
		{-1.0, Stereo[float64]{Left: 1.0, Right: 0.0}},
		{1.0, Stereo[float64]{Left: 0.0, Right: 1.0}},
	}
	for _, c := range cases {
		if got := PannedMono(1.0, c.pan); got != c.want {
			t.Fatalf("PannedMono(1.0, %v) = %v, want %v", c.pan, got, c.want)
		}
	}
}

func TestBufferCopyBytesTo(t *testing.T) {
	b := NewBuffer(2)
	b.SamplesMut()[0] = Stereo[float64]{Left: 1, Right: -1}
	b.SamplesMut()[1] = Stereo[float64]{Left: 0.5, Right: 0.5}
	out := make([]byte, b.ByteLen())
	n := b.CopyBytesTo(out)
	if n != 2 {
		t.Fatalf("CopyBytesTo processed %d samples, want 2", n)
	}

	short := make([]byte, 16)
	n = b.CopyBytesTo(short)
	if n != 1 {
		t.Fatalf("CopyBytesTo with short buffer processed %d samples, want 1", n)
	}
}
