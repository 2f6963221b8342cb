package dto

import (
	"mime/multipart"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the file types the OCR boundary can read.
var SupportedExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff"}

// IsSupportedFile reports whether filename has a readable extension.
func IsSupportedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// AnalyzeFileRequest represents a single uploaded salary slip
type AnalyzeFileRequest struct {
	File     *multipart.FileHeader
	Password string
}

// Validate performs basic validation on the request
func (r *AnalyzeFileRequest) Validate() error {
	if r.File == nil {
		return ErrNoFiles
	}
	if !IsSupportedFile(r.File.Filename) {
		return ErrUnsupportedFormat
	}
	return nil
}

// AnalyzeTextRequest carries OCR text that was produced elsewhere.
type AnalyzeTextRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// Validate performs basic validation on the request
func (r *AnalyzeTextRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// UploadedDocument is one file of a batch after it has been read into memory.
type UploadedDocument struct {
	Filename string
	Data     []byte
	Password string
}
