package doctree

import "strings"

// EmbedText sets Text on every node by joining, with newlines, the text of
// all pages whose page number falls inside the node's inclusive range.
// Children draw from the same page pool; their ranges are subsets of the
// parent's, so they receive a narrower slice of the same pages. Mutates in
// place and returns the forest.
func EmbedText(forest []*TreeNode, pages []Page) []*TreeNode {
	Walk(forest, func(node *TreeNode) {
		var parts []string
		for _, p := range pages {
			if p.PageNum >= node.Start && p.PageNum <= node.End {
				parts = append(parts, p.Text)
			}
		}
		node.Text = strings.Join(parts, "\n")
	})
	return forest
}

// StripText returns a deep, independent copy of the forest with Text
// cleared on every node. The input forest keeps its embedded text; callers
// use the stripped copy as a structure-only view.
func StripText(forest []*TreeNode) []*TreeNode {
	stripped := make([]*TreeNode, len(forest))
	for i, node := range forest {
		stripped[i] = node.Clone()
	}
	Walk(stripped, func(node *TreeNode) {
		node.Text = ""
	})
	return stripped
}
