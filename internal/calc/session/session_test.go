package session

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"coating-calc/internal/calc/models"
)

var testSettings = models.Settings{
	CoatBothSides:         false,
	DefaultPostDiameterMM: 60.0,
}

func calibrated(t *testing.T) *Session {
	t.Helper()
	s := NewManager(testSettings).Create()
	if _, ok := s.Calibrate(0, []models.CalibrationLine{{X2: 300}}, 1000); !ok {
		t.Fatal("calibration failed")
	}
	return s
}

func TestManagerResolve(t *testing.T) {
	m := NewManager(testSettings)
	s := m.Create()

	got, ok := m.Resolve(s.ID)
	if !ok || got != s {
		t.Error("created session must resolve by id")
	}
	if _, ok := m.Resolve("unknown"); ok {
		t.Error("unknown id must not resolve")
	}
}

func TestSessionFlow(t *testing.T) {
	s := calibrated(t)

	rs := s.SetShapes(0, models.PageShapes{
		Panels: []models.PanelShape{{WidthPx: 400, HeightPx: 200, ScaleX: 1, ScaleY: 1}},
		Posts:  []models.PostShape{{X2: 180}},
	})

	if len(rs.Objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(rs.Objects))
	}
	if rs.Objects[0].AreaM2 != 0.8889 || rs.Objects[1].AreaM2 != 0.1131 {
		t.Errorf("areas: got %g and %g, want 0.8889 and 0.1131",
			rs.Objects[0].AreaM2, rs.Objects[1].AreaM2)
	}
}

func TestSessionWithoutScaleYieldsEmptyResults(t *testing.T) {
	s := NewManager(testSettings).Create()

	rs := s.SetShapes(0, models.PageShapes{
		Panels: []models.PanelShape{{WidthPx: 400, HeightPx: 200, ScaleX: 1, ScaleY: 1}},
	})
	if len(rs.Objects) != 0 {
		t.Errorf("got %d objects, want none without a scale", len(rs.Objects))
	}
}

func TestOverrideRecomputeIsIdempotent(t *testing.T) {
	s := calibrated(t)
	s.SetShapes(0, models.PageShapes{Posts: []models.PostShape{{X2: 180}}})

	first := s.SetOverride("p1-post-1", 48)
	second := s.SetOverride("p1-post-1", 48)

	if first.Objects[0].AreaM2 != 0.0905 {
		t.Errorf("area: got %g, want 0.0905", first.Objects[0].AreaM2)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("setting the same override twice changed results (-first +second):\n%s", diff)
	}

	_, overrides, _, _ := s.Snapshot()
	if overrides["p1-post-1"] != 48.0 {
		t.Errorf("stored override: got %g, want 48", overrides["p1-post-1"])
	}
}

func TestSettingsChangeRecomputes(t *testing.T) {
	s := calibrated(t)
	s.SetShapes(0, models.PageShapes{
		Panels: []models.PanelShape{{WidthPx: 400, HeightPx: 200, ScaleX: 1, ScaleY: 1}},
	})

	rs := s.SetSettings(models.Settings{CoatBothSides: true, DefaultPostDiameterMM: 60})
	if rs.Objects[0].AreaM2 != 1.7778 {
		t.Errorf("double-sided area: got %g, want 1.7778", rs.Objects[0].AreaM2)
	}
}

func TestRestoreReplacesStateAndDropsShapes(t *testing.T) {
	s := calibrated(t)
	s.SetShapes(0, models.PageShapes{Posts: []models.PostShape{{X2: 180}}})

	imported := models.ResultSet{
		Objects: []models.MeasuredObject{{
			Page: "p3", Kind: models.KindPost, ID: "p3-post-1", AreaM2: 0.5,
			Post: &models.PostMeasure{DiameterMM: 100, LengthM: 1.5},
		}},
		PostAreaTotal:   0.5,
		TotalArea:       0.5,
		PostLengthTotal: 1.5,
	}
	s.Restore(
		map[int]float64{2: 0.25},
		map[string]float64{"p3-post-1": 100},
		imported,
		models.Settings{CoatBothSides: true, DefaultPostDiameterMM: 80},
	)

	if diff := cmp.Diff(imported, s.Results()); diff != "" {
		t.Errorf("results after restore (-want +got):\n%s", diff)
	}

	scales, overrides, _, settings := s.Snapshot()
	if scales[2] != 0.25 || len(scales) != 1 {
		t.Errorf("scales after restore: got %v", scales)
	}
	if overrides["p3-post-1"] != 100 {
		t.Errorf("overrides after restore: got %v", overrides)
	}
	if !settings.CoatBothSides || settings.DefaultPostDiameterMM != 80 {
		t.Errorf("settings after restore: got %+v", settings)
	}

	// фигуры документом не переносятся: без перерисовки страница пуста
	rs := s.SetShapes(0, models.PageShapes{})
	if len(rs.Objects) != 0 {
		t.Errorf("got %d objects after restore, want none", len(rs.Objects))
	}
}

func TestPageLabel(t *testing.T) {
	if got := PageLabel(0); got != "p1" {
		t.Errorf("got %q, want p1", got)
	}
	if got := PageLabel(4); got != "p5" {
		t.Errorf("got %q, want p5", got)
	}
}
