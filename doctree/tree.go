package doctree

import "strings"

// BuildForest converts a flat list of section descriptors into a forest,
// using each descriptor's dot-separated path to find its parent. Nodes are
// appended in input order; siblings are never re-sorted by segment value.
//
// A descriptor whose parent path was never registered is promoted to a
// root rather than rejected. When two descriptors share the exact same
// path string the lookup keeps only the most recently inserted node, so a
// later, deeper descriptor attaches to whichever duplicate came last; the
// input is ambiguous and this keeps last-write-wins rather than guessing.
func BuildForest(sections []Section) []*TreeNode {
	if len(sections) == 0 {
		return nil
	}

	nodesByPath := make(map[string]*TreeNode)
	var roots []*TreeNode

	for _, sec := range sections {
		node := &TreeNode{
			Path:   sec.Path,
			Title:  sec.Title,
			Anchor: sec.Anchor,
		}
		nodesByPath[sec.Path] = node

		parent := parentPath(sec.Path)
		if parent == "" {
			roots = append(roots, node)
		} else if p, ok := nodesByPath[parent]; ok {
			p.Children = append(p.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	return roots
}

// parentPath returns the path with the last segment removed.
// "1.2.3" yields "1.2"; a single-segment path yields "".
func parentPath(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// AssignPageRanges sets Start and End on every node in the forest,
// mutating in place and returning the same forest.
//
// A node starts at its anchor. It ends one page before the next sibling's
// anchor, or at the enclosing scope's end for the last sibling (the
// parent's end, or totalPages-1 at the root level). When a next sibling is
// anchored on the same page the end is clamped to the start: sections may
// legitimately begin and end on one shared page.
func AssignPageRanges(forest []*TreeNode, totalPages int) []*TreeNode {
	assignRanges(forest, totalPages-1)
	return forest
}

func assignRanges(siblings []*TreeNode, scopeEnd int) {
	for i, node := range siblings {
		node.Start = node.Anchor

		if i+1 < len(siblings) {
			node.End = siblings[i+1].Anchor - 1
		} else {
			node.End = scopeEnd
		}
		if node.End < node.Start {
			node.End = node.Start
		}

		if len(node.Children) > 0 {
			assignRanges(node.Children, node.End)
		}
	}
}
