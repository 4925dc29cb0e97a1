package vectortext

import (
	"math"
	"testing"
)

func TestPointOps(t *testing.T) {
	p := Pt(3, 4)
	q := Pt(1, -2)

	if got := p.Add(q); got != Pt(4, 2) {
		t.Errorf("Add = %v, want (4, 2)", got)
	}
	if got := p.Sub(q); got != Pt(2, 6) {
		t.Errorf("Sub = %v, want (2, 6)", got)
	}
	if got := p.Scale(2); got != Pt(6, 8) {
		t.Errorf("Scale = %v, want (6, 8)", got)
	}
	if got := p.Mid(q); got != Pt(2, 1) {
		t.Errorf("Mid = %v, want (2, 1)", got)
	}
}

func TestPointRotateCW(t *testing.T) {
	if got := Pt(1, 0).RotateCW(); got != Pt(0, -1) {
		t.Errorf("RotateCW(1, 0) = %v, want (0, -1)", got)
	}
	if got := Pt(0, 1).RotateCW(); got != Pt(1, 0) {
		t.Errorf("RotateCW(0, 1) = %v, want (1, 0)", got)
	}
	// Four rotations are the identity.
	p := Pt(3, 7)
	if got := p.RotateCW().RotateCW().RotateCW().RotateCW(); got != p {
		t.Errorf("four rotations = %v, want %v", got, p)
	}
}

func TestPointIsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		p    Point2
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(-1e30, 1e30), true},
		{Pt(nan, 0), false},
		{Pt(0, nan), false},
		{Pt(inf, 0), false},
		{Pt(0, -inf), false},
	}
	for _, tt := range tests {
		if got := tt.p.IsFinite(); got != tt.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestLineCurve(t *testing.T) {
	c := LineCurve(Pt(0, 0), Pt(10, 20))
	if c.P1 != Pt(5, 10) {
		t.Errorf("line control = %v, want midpoint (5, 10)", c.P1)
	}
	// The degenerate quadratic traces the segment linearly.
	if got := c.Eval(0.25); got != Pt(2.5, 5) {
		t.Errorf("Eval(0.25) = %v, want (2.5, 5)", got)
	}
}

func TestCurveEvalEndpoints(t *testing.T) {
	c := Curve{P0: Pt(0, 0), P1: Pt(50, 100), P2: Pt(100, 0)}
	if got := c.Eval(0); got != c.P0 {
		t.Errorf("Eval(0) = %v, want %v", got, c.P0)
	}
	if got := c.Eval(1); got != c.P2 {
		t.Errorf("Eval(1) = %v, want %v", got, c.P2)
	}
	// Apex of the symmetric parabola.
	if got := c.Eval(0.5); got != Pt(50, 50) {
		t.Errorf("Eval(0.5) = %v, want (50, 50)", got)
	}
}

func TestCurveTranslate(t *testing.T) {
	c := Curve{P0: Pt(10, 10), P1: Pt(20, 30), P2: Pt(30, 10)}
	got := c.Translate(Pt(10, 10))
	want := Curve{P0: Pt(0, 0), P1: Pt(10, 20), P2: Pt(20, 0)}
	if got != want {
		t.Errorf("Translate = %+v, want %+v", got, want)
	}
}

func TestCurveZeroLength(t *testing.T) {
	if !(Curve{P0: Pt(5, 5), P1: Pt(5, 5), P2: Pt(5, 5)}).isZeroLength() {
		t.Error("coincident curve not reported zero length")
	}
	if LineCurve(Pt(0, 0), Pt(1, 0)).isZeroLength() {
		t.Error("real segment reported zero length")
	}
}
