package vectortext

import "testing"

func TestPointTagString(t *testing.T) {
	tests := []struct {
		tag  PointTag
		want string
	}{
		{TagOnCurve, "OnCurve"},
		{TagQuadOff, "QuadOff"},
		{TagCubicOff, "CubicOff"},
		{PointTag(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("PointTag(%d).String() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestOutlineBuilder(t *testing.T) {
	var b outlineBuilder
	b.MoveTo(Pt(0, 0))
	b.LineTo(Pt(100, 0))
	b.QuadTo(Pt(100, 100), Pt(0, 100))
	b.MoveTo(Pt(200, 0))
	b.CubeTo(Pt(210, 10), Pt(220, 10), Pt(230, 0))

	o := b.Outline()
	if len(o.Contours) != 2 {
		t.Fatalf("got %d contours, want 2", len(o.Contours))
	}

	first := o.Contours[0].Points
	wantTags := []PointTag{TagOnCurve, TagOnCurve, TagQuadOff, TagOnCurve}
	if len(first) != len(wantTags) {
		t.Fatalf("first contour has %d points, want %d", len(first), len(wantTags))
	}
	for i, tag := range wantTags {
		if first[i].Tag != tag {
			t.Errorf("first contour point %d tag = %v, want %v", i, first[i].Tag, tag)
		}
	}

	second := o.Contours[1].Points
	wantTags = []PointTag{TagOnCurve, TagCubicOff, TagCubicOff, TagOnCurve}
	if len(second) != len(wantTags) {
		t.Fatalf("second contour has %d points, want %d", len(second), len(wantTags))
	}
	for i, tag := range wantTags {
		if second[i].Tag != tag {
			t.Errorf("second contour point %d tag = %v, want %v", i, second[i].Tag, tag)
		}
	}
}

func TestOutlineBuilderEmpty(t *testing.T) {
	var b outlineBuilder
	o := b.Outline()
	if !o.IsEmpty() {
		t.Errorf("empty builder produced %d contours", len(o.Contours))
	}
}

func TestOutlineIsEmpty(t *testing.T) {
	o := Outline{Contours: []Contour{squareContour(0, 0, 10)}}
	if o.IsEmpty() {
		t.Error("outline with a contour reported empty")
	}
}
