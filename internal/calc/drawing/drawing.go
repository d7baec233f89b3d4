package drawing

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"coating-calc/internal/calc/models"
)

// ============================================================
// Drawing Inspection
// ============================================================

// Растровые страницы рендерит внешний клиент, сервису от чертежа нужны
// только тип файла и число страниц.

var rasterSuffixes = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tiff": true,
}

// Inspect проверяет тип загруженного чертежа и считает страницы.
// Неизвестное расширение - models.ErrUnsupportedFileType, нечитаемый
// PDF - models.ErrRenderingUnavailable. Растровое изображение всегда
// одна страница.
func Inspect(filename string, data []byte) (*models.DrawingInfo, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if rasterSuffixes[ext] {
		return &models.DrawingInfo{
			Filename:  filename,
			Kind:      "image",
			PageCount: 1,
		}, nil
	}

	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: %q", models.ErrUnsupportedFileType, ext)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRenderingUnavailable, err)
	}

	n, err := pagetree.NumPages(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrRenderingUnavailable, err)
	}

	return &models.DrawingInfo{
		Filename:  filename,
		Kind:      "pdf",
		PageCount: n,
	}, nil
}
