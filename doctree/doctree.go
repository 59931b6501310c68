// Package doctree holds the document index data model and the tree
// algorithms that operate on it: forest assembly from flat section lists,
// page-range propagation, node id assignment, and text projection.
package doctree

import (
	"encoding/json"
)

// Page is a single page of an ordered document. PageNum is zero-based and
// strictly increasing within a sequence; Size is a precomputed cost metric
// (typically an estimated token count).
type Page struct {
	PageNum int    `json:"page_num"`
	Text    string `json:"text"`
	Size    int    `json:"size"`
}

// Section is a flat, generator-produced section descriptor. Path is a
// dot-separated hierarchy position like "1.2.3"; Anchor is the page index
// where the section begins.
type Section struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Anchor int    `json:"anchor"`
}

// TreeNode is a section node in the assembled forest. Start, End and Text
// are derived by AssignPageRanges and EmbedText and are never serialized;
// persisted output carries only the skeleton (path, title, anchor, id,
// children).
type TreeNode struct {
	Path     string      `json:"path,omitempty"`
	Title    string      `json:"title"`
	Anchor   int         `json:"anchor"`
	NodeID   string      `json:"id,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`

	Start int    `json:"-"`
	End   int    `json:"-"`
	Text  string `json:"-"`
}

// String returns an indented JSON rendering of the node skeleton.
func (n *TreeNode) String() string {
	b, _ := json.MarshalIndent(n, "", "  ")
	return string(b)
}

// Clone creates a deep copy of the node, including derived fields.
func (n *TreeNode) Clone() *TreeNode {
	if n == nil {
		return nil
	}
	clone := &TreeNode{
		Path:   n.Path,
		Title:  n.Title,
		Anchor: n.Anchor,
		NodeID: n.NodeID,
		Start:  n.Start,
		End:    n.End,
		Text:   n.Text,
	}
	if n.Children != nil {
		clone.Children = make([]*TreeNode, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// Walk traverses the forest in depth-first pre-order (parent before
// children, siblings left to right), calling fn for each node.
func Walk(forest []*TreeNode, fn func(*TreeNode)) {
	for _, node := range forest {
		fn(node)
		Walk(node.Children, fn)
	}
}
