package loader

import (
	"io"

	"github.com/dgallion1/treedex/doctree"
)

// TextLoader handles plain text files.
type TextLoader struct {
	CharsPerPage int
}

func (l *TextLoader) Load(r io.Reader, filename string) ([]doctree.Page, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return pagesFromText(string(src), l.CharsPerPage), nil
}
