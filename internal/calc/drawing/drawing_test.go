package drawing

import (
	"bytes"
	"errors"
	"testing"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"

	"coating-calc/internal/calc/models"
)

func TestInspectRasterImage(t *testing.T) {
	for _, name := range []string{"plan.png", "plan.JPG", "plan.jpeg", "plan.bmp", "plan.tiff"} {
		info, err := Inspect(name, []byte("not actually decoded"))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if info.Kind != "image" || info.PageCount != 1 {
			t.Errorf("%s: got kind=%q pages=%d, want image/1", name, info.Kind, info.PageCount)
		}
	}
}

func TestInspectUnsupportedSuffix(t *testing.T) {
	for _, name := range []string{"plan.docx", "plan.svg", "plan"} {
		_, err := Inspect(name, nil)
		if !errors.Is(err, models.ErrUnsupportedFileType) {
			t.Errorf("%s: got %v, want ErrUnsupportedFileType", name, err)
		}
	}
}

func TestInspectPDF(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := document.WriteMultiPage(buf, &pdf.Rectangle{URx: 595, URy: 842}, pdf.V1_7, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		page := w.AddPage()
		if err := page.Close(); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	info, err := Inspect("drawing.pdf", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if info.Kind != "pdf" || info.PageCount != 3 {
		t.Errorf("got kind=%q pages=%d, want pdf/3", info.Kind, info.PageCount)
	}
}

func TestInspectBrokenPDF(t *testing.T) {
	_, err := Inspect("drawing.pdf", []byte("%PDF-1.7 truncated garbage"))
	if !errors.Is(err, models.ErrRenderingUnavailable) {
		t.Errorf("got %v, want ErrRenderingUnavailable", err)
	}
}
