// Package treedex builds a navigable hierarchical index over a linear
// sequence of document pages, without embeddings or a vector store. An
// external generator proposes a flat table of contents from windows of
// page text; the package assembles it into a tree with page ranges and
// stable node ids, and projects page text onto nodes for retrieval.
package treedex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/treedex/doctree"
	"github.com/dgallion1/treedex/extract"
	"github.com/dgallion1/treedex/loader"
	"github.com/dgallion1/treedex/window"
)

// Generator is the external text-generation capability. Implementations
// live in the llm package; any backend that accepts a prompt and returns
// text will do.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Config controls index construction.
type Config struct {
	MaxWindowTokens int          // Token budget per structure-extraction window.
	OverlapPages    int          // Pages shared between consecutive windows.
	Logger          *slog.Logger // Optional progress logging; nil discards.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxWindowTokens: 20000,
		OverlapPages:    1,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Index is a queryable tree index over a page sequence. Tree and Pages
// may be read directly; mutate them only through a rebuild.
type Index struct {
	Tree  []*doctree.TreeNode
	Pages []doctree.Page

	gen     Generator
	nodeMap map[string]*doctree.TreeNode
}

// New creates an Index from an already-derived forest and its pages. The
// forest must have ranges, ids and text assigned; use BuildFromPages or
// Load for the full derivation.
func New(tree []*doctree.TreeNode, pages []doctree.Page, gen Generator) *Index {
	return &Index{
		Tree:    tree,
		Pages:   pages,
		gen:     gen,
		nodeMap: doctree.NodeMap(tree),
	}
}

// BuildFromPages builds an index over an ordered page sequence.
//
// Generator calls run strictly sequentially: each window's prompt embeds
// the sections accumulated from all prior windows, so the generator can
// continue numbering and avoid re-reporting structure it already emitted.
// A generation or extraction failure aborts the build and propagates.
func BuildFromPages(ctx context.Context, pages []doctree.Page, gen Generator, cfg Config) (*Index, error) {
	log := cfg.logger()

	groups := window.Group(pages, window.Config{
		MaxTokens: cfg.MaxWindowTokens,
		Overlap:   cfg.OverlapPages,
	})
	log.Info("extracting structure", "pages", len(pages), "windows", len(groups))

	var sections []doctree.Section
	for i, group := range groups {
		var prompt string
		if i == 0 {
			prompt = BuildStructurePrompt(group)
		} else {
			prev, err := json.MarshalIndent(sections, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("marshal accumulated sections: %w", err)
			}
			prompt = BuildContinuePrompt(string(prev), group)
		}

		raw, err := gen.Generate(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("window %d/%d: generate: %w", i+1, len(groups), err)
		}

		batch, err := parseSections(raw)
		if err != nil {
			return nil, fmt.Errorf("window %d/%d: %w", i+1, len(groups), err)
		}
		sections = append(sections, batch...)

		log.Info("window extracted", "window", i+1, "windows", len(groups), "sections", len(batch))
	}

	tree := doctree.BuildForest(sections)
	doctree.AssignPageRanges(tree, len(pages))
	if _, err := doctree.AssignNodeIDs(tree); err != nil {
		return nil, err
	}
	doctree.EmbedText(tree, pages)

	log.Info("index built", "nodes", doctree.CountNodes(tree), "roots", len(tree))
	return New(tree, pages, gen), nil
}

// BuildFromFile loads a document with the loader for its extension and
// builds an index over its pages.
func BuildFromFile(ctx context.Context, path string, gen Generator, cfg Config) (*Index, error) {
	pages, err := loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return BuildFromPages(ctx, pages, gen, cfg)
}

// parseSections recovers a section batch from generator output, accepting
// either a bare JSON array or an object wrapping it under "sections".
func parseSections(raw string) ([]doctree.Section, error) {
	if batch, err := extract.JSON[[]doctree.Section](raw); err == nil {
		return batch, nil
	}
	wrapped, err := extract.JSON[struct {
		Sections []doctree.Section `json:"sections"`
	}](raw)
	if err != nil {
		return nil, err
	}
	return wrapped.Sections, nil
}

// Node resolves a node id, or nil if the id is unknown.
func (ix *Index) Node(id string) *doctree.TreeNode {
	return ix.nodeMap[id]
}

// Stats summarizes the index.
type Stats struct {
	TotalPages   int `json:"total_pages"`
	TotalTokens  int `json:"total_tokens"`
	TotalNodes   int `json:"total_nodes"`
	LeafNodes    int `json:"leaf_nodes"`
	RootSections int `json:"root_sections"`
}

// Stats returns index statistics.
func (ix *Index) Stats() Stats {
	totalTokens := 0
	for _, p := range ix.Pages {
		totalTokens += p.Size
	}
	return Stats{
		TotalPages:   len(ix.Pages),
		TotalTokens:  totalTokens,
		TotalNodes:   doctree.CountNodes(ix.Tree),
		LeafNodes:    len(doctree.LeafNodes(ix.Tree)),
		RootSections: len(ix.Tree),
	}
}

// LargeSections returns nodes spanning more than maxPages pages, or whose
// pages sum to more than maxTokens. Candidates for a finer re-index.
func (ix *Index) LargeSections(maxPages, maxTokens int) []*doctree.TreeNode {
	var large []*doctree.TreeNode
	doctree.Walk(ix.Tree, func(node *doctree.TreeNode) {
		if node.End-node.Start+1 > maxPages {
			large = append(large, node)
			return
		}
		tokens := 0
		for _, p := range ix.Pages {
			if p.PageNum >= node.Start && p.PageNum <= node.End {
				tokens += p.Size
			}
		}
		if tokens > maxTokens {
			large = append(large, node)
		}
	})
	return large
}

// WriteTree writes an indented listing of the tree to w, one node per
// line with id, path, title and page range.
func (ix *Index) WriteTree(w io.Writer) error {
	return writeNodes(w, ix.Tree, 0)
}

func writeNodes(w io.Writer, nodes []*doctree.TreeNode, indent int) error {
	for _, node := range nodes {
		id := node.NodeID
		if id == "" {
			id = "????"
		}
		prefix := ""
		for range indent {
			prefix += "  "
		}
		if _, err := fmt.Fprintf(w, "%s[%s] %s: %s (pages %d-%d)\n",
			prefix, id, node.Path, node.Title, node.Start, node.End); err != nil {
			return err
		}
		if err := writeNodes(w, node.Children, indent+1); err != nil {
			return err
		}
	}
	return nil
}
