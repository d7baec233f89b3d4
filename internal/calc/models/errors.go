package models

import "errors"

// ============================================================
// Error kinds
// ============================================================

var (
	// ErrUnsupportedFileType - расширение загруженного файла вне списка
	// поддерживаемых форматов.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrRenderingUnavailable - PDF не удалось открыть/прочитать.
	ErrRenderingUnavailable = errors.New("pdf rendering unavailable")

	// ErrMalformedDocument - документ проекта не прошел разбор или проверку.
	ErrMalformedDocument = errors.New("malformed project document")
)
