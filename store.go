package treedex

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dgallion1/treedex/doctree"
)

// SchemaVersion identifies the persisted index format.
const SchemaVersion = "1.0"

// persistedIndex is the on-disk shape. Only the tree skeleton and the
// pages are stored; ranges and node text are derived, so a reload stays
// correct even when the page sequence was edited independently, as long
// as anchors remain valid indices into it.
type persistedIndex struct {
	Version string              `json:"version"`
	Tree    []*doctree.TreeNode `json:"tree"`
	Pages   []doctree.Page      `json:"pages"`
}

// Encode writes the index to w as indented JSON. Start, end and text are
// never serialized (the node type excludes them from JSON), so the output
// is always a skeleton plus pages.
func (ix *Index) Encode(w io.Writer) error {
	data := persistedIndex{
		Version: SchemaVersion,
		Tree:    ix.Tree,
		Pages:   ix.Pages,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return nil
}

// Save writes the index to a JSON file.
func (ix *Index) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := ix.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Decode reads a persisted index from r and re-derives page ranges and
// node text from the page sequence. gen may be nil for indexes that will
// not be queried.
func Decode(r io.Reader, gen Generator) (*Index, error) {
	var data persistedIndex
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	if data.Version != SchemaVersion {
		return nil, fmt.Errorf("unsupported index version %q", data.Version)
	}

	doctree.AssignPageRanges(data.Tree, len(data.Pages))
	doctree.EmbedText(data.Tree, data.Pages)

	return New(data.Tree, data.Pages, gen), nil
}

// Load reads an index from a JSON file.
func Load(path string, gen Generator) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f, gen)
}
