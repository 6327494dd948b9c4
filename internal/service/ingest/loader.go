package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/pitchcoach/internal/core"
	"github.com/sandevgo/pitchcoach/pkg/conv"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported material format")
	ErrUnreadable        = errors.New("material could not be read")
)

// Extensions lists the file types LoadFile understands.
var Extensions = []string{".txt", ".text", ".md", ".markdown", ".html", ".htm", ".pdf"}

func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadFile reads a material file and extracts its plain text.
func LoadFile(path string) (core.DocumentInput, error) {
	if !IsSupported(path) {
		return core.DocumentInput{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return core.DocumentInput{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	text, err := Extract(filepath.Ext(path), data)
	if err != nil {
		return core.DocumentInput{}, fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return core.DocumentInput{Name: filepath.Base(path), Text: text}, nil
}

// Extract converts raw bytes of the given extension into plain text.
func Extract(ext string, data []byte) (string, error) {
	switch strings.ToLower(ext) {
	case ".txt", ".text":
		return string(data), nil
	case ".md", ".markdown":
		return conv.MarkdownToText(data)
	case ".html", ".htm":
		return conv.HTMLToText(string(data))
	case ".pdf":
		return conv.PDFToText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
