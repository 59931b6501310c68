package treedex

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgallion1/treedex/doctree"
	"github.com/dgallion1/treedex/extract"
)

// QueryResult holds the sections selected for a query and their
// concatenated text.
type QueryResult struct {
	Context    string   // Concatenated text of the selected nodes.
	NodeIDs    []string // Ids the generator selected, in its order.
	PageRanges [][2]int // Inclusive page ranges of the resolved nodes.
	Reasoning  string   // Generator's selection rationale.
}

// PagesString renders the page ranges human-readably, one-based, like
// "pages 5-8, 12".
func (r *QueryResult) PagesString() string {
	if len(r.PageRanges) == 0 {
		return "no pages"
	}
	parts := make([]string, 0, len(r.PageRanges))
	for _, pr := range r.PageRanges {
		if pr[0] == pr[1] {
			parts = append(parts, fmt.Sprintf("%d", pr[0]+1))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", pr[0]+1, pr[1]+1))
		}
	}
	return "pages " + strings.Join(parts, ", ")
}

type retrievalResponse struct {
	NodeIDs   []string `json:"node_ids"`
	Reasoning string   `json:"reasoning"`
}

// Query asks the generator to select relevant nodes for a question and
// returns their text and page ranges. Ids the generator invents that
// match no node are skipped rather than treated as errors.
func (ix *Index) Query(ctx context.Context, question string) (*QueryResult, error) {
	if ix.gen == nil {
		return nil, fmt.Errorf("no generator configured for this index")
	}

	stripped := doctree.StripText(ix.Tree)
	treeJSON, err := json.MarshalIndent(stripped, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal tree structure: %w", err)
	}

	raw, err := ix.gen.Generate(ctx, BuildRetrievalPrompt(string(treeJSON), question))
	if err != nil {
		return nil, fmt.Errorf("retrieval: generate: %w", err)
	}

	resp, err := extract.JSON[retrievalResponse](raw)
	if err != nil {
		return nil, fmt.Errorf("retrieval: %w", err)
	}

	result := &QueryResult{
		NodeIDs:   resp.NodeIDs,
		Reasoning: resp.Reasoning,
	}

	var parts []string
	for _, id := range resp.NodeIDs {
		node := ix.nodeMap[id]
		if node == nil {
			continue
		}
		header := node.Title
		if node.Path != "" {
			header = node.Path + ": " + node.Title
		}
		parts = append(parts, "["+header+"]\n"+node.Text)
		result.PageRanges = append(result.PageRanges, [2]int{node.Start, node.End})
	}
	result.Context = strings.Join(parts, "\n\n")

	return result, nil
}

// Answer runs Query and then asks the generator to answer the question
// from the retrieved context alone.
func (ix *Index) Answer(ctx context.Context, question string) (string, *QueryResult, error) {
	result, err := ix.Query(ctx, question)
	if err != nil {
		return "", nil, err
	}

	answer, err := ix.gen.Generate(ctx, BuildAnswerPrompt(result.Context, question))
	if err != nil {
		return "", result, fmt.Errorf("answer: generate: %w", err)
	}
	return strings.TrimSpace(answer), result, nil
}
