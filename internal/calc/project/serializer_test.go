package project

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"coating-calc/internal/calc/models"
	"coating-calc/internal/calc/session"
)

var testSettings = models.Settings{
	CoatBothSides:         true,
	DefaultPostDiameterMM: 60.0,
}

func populatedSession(t *testing.T) *session.Session {
	t.Helper()

	s := session.NewManager(testSettings).Create()
	if _, ok := s.Calibrate(0, []models.CalibrationLine{{X2: 300}}, 1000); !ok {
		t.Fatal("calibration failed")
	}
	s.SetShapes(0, models.PageShapes{
		Panels: []models.PanelShape{{WidthPx: 400, HeightPx: 200, ScaleX: 1, ScaleY: 1}},
		Posts:  []models.PostShape{{X2: 180}},
	})
	s.SetOverride("p1-post-1", 48)
	return s
}

func TestRoundTrip(t *testing.T) {
	src := populatedSession(t)
	doc := Export(src)

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	dst := session.NewManager(models.Settings{DefaultPostDiameterMM: 1}).Create()
	Import(dst, parsed)
	restored := Export(dst)

	if diff := cmp.Diff(doc.PageScales, restored.PageScales); diff != "" {
		t.Errorf("page_scales (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(doc.DiameterOverrides, restored.DiameterOverrides); diff != "" {
		t.Errorf("diameter_overrides (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(doc.Results, restored.Results); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(doc.Settings, restored.Settings); diff != "" {
		t.Errorf("settings (-want +got):\n%s", diff)
	}
}

func TestExportDocument(t *testing.T) {
	doc := Export(populatedSession(t))

	if doc.PageScales["0"] != 0.3 {
		t.Errorf("page scale: got %g, want 0.3", doc.PageScales["0"])
	}
	if doc.DiameterOverrides["p1-post-1"] != 48.0 {
		t.Errorf("override: got %g, want 48", doc.DiameterOverrides["p1-post-1"])
	}
	if len(doc.Results) != 2 {
		t.Fatalf("got %d records, want 2", len(doc.Results))
	}

	panel := doc.Results[0]
	if panel.Type != models.KindPanel || panel.DiameterMM != nil || panel.LengthM != nil {
		t.Errorf("panel record has post fields set: %+v", panel)
	}
	post := doc.Results[1]
	if post.Type != models.KindPost || post.WidthMM != nil || post.HeightMM != nil || post.DoubleSided != nil {
		t.Errorf("post record has panel fields set: %+v", post)
	}
	if *post.DiameterMM != 48.0 {
		t.Errorf("post diameter: got %g, want 48", *post.DiameterMM)
	}
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	valid := func() models.ProjectDocument {
		return models.ProjectDocument{
			PageScales:        map[string]float64{"0": 0.3},
			DiameterOverrides: map[string]float64{"p1-post-1": 48},
			Results: []models.Record{
				{Page: "p1", Type: models.KindPost, ID: "p1-post-1", AreaM2: 0.0905},
			},
			Settings: testSettings,
		}
	}

	cases := []struct {
		name   string
		mutate func(*models.ProjectDocument)
	}{
		{"negative scale", func(d *models.ProjectDocument) { d.PageScales["0"] = -0.3 }},
		{"zero scale", func(d *models.ProjectDocument) { d.PageScales["0"] = 0 }},
		{"bad page key", func(d *models.ProjectDocument) { d.PageScales["one"] = 0.3 }},
		{"tiny override", func(d *models.ProjectDocument) { d.DiameterOverrides["p1-post-1"] = 0.5 }},
		{"unknown record type", func(d *models.ProjectDocument) { d.Results[0].Type = "Beam" }},
		{"empty record id", func(d *models.ProjectDocument) { d.Results[0].ID = "" }},
		{"tiny default diameter", func(d *models.ProjectDocument) { d.Settings.DefaultPostDiameterMM = 0 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := valid()
			c.mutate(&doc)
			data, err := json.Marshal(doc)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := Parse(data); !errors.Is(err, models.ErrMalformedDocument) {
				t.Errorf("got %v, want ErrMalformedDocument", err)
			}
		})
	}

	if _, err := Parse([]byte("{not json")); !errors.Is(err, models.ErrMalformedDocument) {
		t.Errorf("got %v, want ErrMalformedDocument for broken json", err)
	}
}

func TestWriteCSV(t *testing.T) {
	records := Records(populatedSession(t).Results())

	var sb strings.Builder
	if err := WriteCSV(&sb, records); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows", len(lines))
	}
	if lines[0] != "Page,Type,Id,Width_mm,Height_mm,DoubleSided,Diameter_mm,Length_m,Area_m2" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != "p1,Panel,p1-panel-1,1333.3,666.7,true,,,1.7778" {
		t.Errorf("panel row: got %q", lines[1])
	}
	if lines[2] != "p1,Post,p1-post-1,,,,48,0.6,0.0905" {
		t.Errorf("post row: got %q", lines[2])
	}
}
