package geometry

import (
	"math"
	"testing"

	"coating-calc/internal/calc/models"
)

func TestSegmentLength(t *testing.T) {
	if got := SegmentLength(0, 0, 3, 4); got != 5 {
		t.Errorf("got %g, want 5", got)
	}
	if got := SegmentLength(7, 7, 7, 7); got != 0 {
		t.Errorf("degenerate segment: got %g, want 0", got)
	}
}

func TestPanelDimensions(t *testing.T) {
	cases := []struct {
		name         string
		shape        models.PanelShape
		pxPerMM      float64
		wantW, wantH float64
	}{
		{
			name:    "unit scale",
			shape:   models.PanelShape{WidthPx: 400, HeightPx: 200, ScaleX: 1, ScaleY: 1},
			pxPerMM: 0.3,
			wantW:   400 / 0.3,
			wantH:   200 / 0.3,
		},
		{
			name:    "canvas transform applied",
			shape:   models.PanelShape{WidthPx: 100, HeightPx: 100, ScaleX: 2, ScaleY: 0.5},
			pxPerMM: 1,
			wantW:   200,
			wantH:   50,
		},
		{
			name:    "negative drag direction",
			shape:   models.PanelShape{WidthPx: -400, HeightPx: -200, ScaleX: 1, ScaleY: 1},
			pxPerMM: 0.3,
			wantW:   400 / 0.3,
			wantH:   200 / 0.3,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h := PanelDimensions(c.shape, c.pxPerMM)
			if math.Abs(w-c.wantW) > 1e-9 || math.Abs(h-c.wantH) > 1e-9 {
				t.Errorf("got (%g, %g), want (%g, %g)", w, h, c.wantW, c.wantH)
			}
		})
	}
}

func TestPostLength(t *testing.T) {
	mm, m := PostLength(models.PostShape{X1: 0, Y1: 0, X2: 180, Y2: 0}, 0.3)
	if math.Abs(mm-600) > 1e-9 {
		t.Errorf("length_mm: got %g, want 600", mm)
	}
	if math.Abs(m-0.6) > 1e-9 {
		t.Errorf("length_m: got %g, want 0.6", m)
	}
}
