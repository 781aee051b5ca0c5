package rational

import (
	"testing"

	"pgregory.net/rapid"
)

func TestNewNormalizes(t *testing.T) {
	cases := []struct {
		num, denom   int64
		wantN, wantD int64
	}{
		{10, 5, 2, 1},
		{-10, -5, 2, 1},
		{-6, 8, -3, 4},
	}
	for _, c := range cases {
		got := New(c.num, c.denom)
		if got.num != c.wantN || got.denom != c.wantD {
			t.Fatalf("New(%d, %d) = %d/%d, want %d/%d", c.num, c.denom, got.num, got.denom, c.wantN, c.wantD)
		}
	}
}

func TestAdd(t *testing.T) {
	cases := []struct{ a, b, want Rational }{
		{New(1, 2), New(3, 4), New(5, 4)},
		{New(3, 4), New(3, 4), New(3, 2)},
		{New(3, 4), New(-5, 8), New(1, 8)},
	}
	for _, c := range cases {
		if got := c.a.Add(c.b); !got.Equal(c.want) {
			t.Fatalf("%v + %v = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestMod(t *testing.T) {
	cases := []struct{ a, b, want Rational }{
		{New(5, 1), New(3, 1), New(2, 1)},
		{New(-5, 1), New(3, 1), New(-2, 1)},
		{New(7, 3), New(1, 4), New(1, 12)},
		{New(-7, 3), New(1, 4), New(-1, 12)},
	}
	for _, c := range cases {
		if got := c.a.Mod(c.b); !got.Equal(c.want) {
			t.Fatalf("%v %% %v = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestPowi(t *testing.T) {
	base := Int(2)
	cases := []struct {
		power int64
		want  Rational
	}{
		{0, Int(1)},
		{1, Int(2)},
		{2, Int(4)},
		{3, Int(8)},
		{5, Int(32)},
		{10, Int(1024)},
		{11, Int(2048)},
		{-1, New(1, 2)},
		{-2, New(1, 4)},
		{-3, New(1, 8)},
		{-9, New(1, 512)},
	}
	for _, c := range cases {
		if got := base.Powi(c.power); !got.Equal(c.want) {
			t.Fatalf("2.Powi(%d) = %v, want %v", c.power, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		r    Rational
		want int64
	}{
		{New(10, 5), 2},
		{New(-10, 6), -1},
		{New(13, 7), 1},
	}
	for _, c := range cases {
		if got := c.r.Truncate(); got != c.want {
			t.Fatalf("%v.Truncate() = %d, want %d", c.r, got, c.want)
		}
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		r    Rational
		want int64
	}{
		{New(10, 5), 2},
		{New(-10, 5), -2},
		{New(10, 4), 3},
		{New(-10, 4), -3},
		{New(3, 7), 0},
		{New(4, 7), 1},
		{New(-3, 7), 0},
		{New(-4, 7), -1},
	}
	for _, c := range cases {
		if got := c.r.Round(); got != c.want {
			t.Fatalf("%v.Round() = %d, want %d", c.r, got, c.want)
		}
	}
}

func TestOrdering(t *testing.T) {
	if !New(3, 4).Less(New(3, 2)) {
		t.Fatal("3/4 should be less than 3/2")
	}
}

func TestString(t *testing.T) {
	if got := Int(5).String(); got != "5" {
		t.Fatalf("Int(5).String() = %q, want %q", got, "5")
	}
	if got := New(3, 4).String(); got != "3/4" {
		t.Fatalf("New(3,4).String() = %q, want %q", got, "3/4")
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		want    Rational
		wantErr ParseErrorKind
		isErr   bool
	}{
		{in: "5", want: Int(5)},
		{in: "3/4", want: New(3, 4)},
		{in: "-6/8", want: New(-3, 4)},
		{in: "x", isErr: true, wantErr: ErrInvalidInt},
		{in: "1/0", isErr: true, wantErr: ErrZeroDenominator},
		{in: "1/2/3", isErr: true, wantErr: ErrMalformed},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if c.isErr {
			var pe *ParseError
			if err == nil {
				t.Fatalf("Parse(%q): expected error", c.in)
			}
			if pe2, ok := err.(*ParseError); ok {
				pe = pe2
			}
			if pe == nil || pe.Kind != c.wantErr {
				t.Fatalf("Parse(%q) error kind = %v, want %v", c.in, pe, c.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", c.in, err)
		}
		if !got.Equal(c.want) {
			t.Fatalf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestGCD(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{20, 15, 5},
		{20, 19, 1},
		{10, 0, 10},
		{0, 10, 10},
		{0, 0, 0},
		{10, -10, 10},
	}
	for _, c := range cases {
		if got := gcd(c.a, c.b); got != c.want {
			t.Fatalf("gcd(%d, %d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

// genRational builds arbitrary non-degenerate rationals for property tests.
func genRational(t *rapid.T) Rational {
	num := rapid.Int64Range(-1000, 1000).Draw(t, "num")
	denom := rapid.Int64Range(1, 1000).Draw(t, "denom")
	return New(num, denom)
}

func TestPropertyAddCommutes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := genRational(t), genRational(t)
		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatalf("%v + %v != %v + %v", a, b, b, a)
		}
	})
}

func TestPropertyNormalizedDenomPositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := genRational(t)
		if r.Denominator() <= 0 {
			t.Fatalf("denominator of %v is not positive", r)
		}
	})
}

func TestPropertyAddSubRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b := genRational(t), genRational(t)
		if !a.Add(b).Sub(b).Equal(a) {
			t.Fatalf("(%v + %v) - %v != %v", a, b, b, a)
		}
	})
}
