// Package loader turns document files into the ordered page sequences the
// index is built over. PDFs keep their native pagination; every other
// format is flattened to text and split into synthetic pages by character
// count.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/treedex/doctree"
)

// Loader converts raw document bytes into an ordered page sequence.
type Loader interface {
	Load(r io.Reader, filename string) ([]doctree.Page, error)
}

// DefaultCharsPerPage is the synthetic page size for non-paginated formats.
const DefaultCharsPerPage = 3000

// SupportedExtensions lists file extensions this package can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".csv":
		return &CSVLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// LoadFile opens path and loads it with the loader for its extension.
func LoadFile(path string) ([]doctree.Page, error) {
	l, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return l.Load(f, filepath.Base(path))
}

// pagesFromText splits flattened text into synthetic pages of roughly
// charsPerPage characters, sized with the token estimate. Splitting is
// rune-aware so multi-byte characters are never cut in half.
func pagesFromText(text string, charsPerPage int) []doctree.Page {
	if charsPerPage <= 0 {
		charsPerPage = DefaultCharsPerPage
	}

	runes := []rune(text)
	var pages []doctree.Page
	for i := 0; i < len(runes); i += charsPerPage {
		end := i + charsPerPage
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[i:end])
		pages = append(pages, doctree.Page{
			PageNum: len(pages),
			Text:    chunk,
			Size:    EstimateTokens(chunk),
		})
	}
	return pages
}
