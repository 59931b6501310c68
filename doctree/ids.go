package doctree

import (
	"errors"
	"fmt"
)

// maxNodeID is the largest count representable by the fixed 4-digit id width.
const maxNodeID = 9999

// ErrTooManyNodes is returned by AssignNodeIDs when the forest holds more
// nodes than the fixed-width id space can name.
var ErrTooManyNodes = errors.New("doctree: node count exceeds 4-digit id space")

// AssignNodeIDs assigns sequential zero-padded ids ("0001", "0002", ...)
// in depth-first pre-order and returns the total node count. Ids are
// stable across repeated calls on the same forest shape. If the forest
// holds more than 9999 nodes no ids are assigned and ErrTooManyNodes is
// returned instead of letting ids collide.
func AssignNodeIDs(forest []*TreeNode) (int, error) {
	total := CountNodes(forest)
	if total > maxNodeID {
		return total, ErrTooManyNodes
	}

	counter := 0
	Walk(forest, func(node *TreeNode) {
		counter++
		node.NodeID = fmt.Sprintf("%04d", counter)
	})
	return counter, nil
}

// NodeMap flattens the forest into an id-to-node lookup. Ids are unique by
// construction; if a duplicate somehow appears the most recent insertion
// wins.
func NodeMap(forest []*TreeNode) map[string]*TreeNode {
	m := make(map[string]*TreeNode)
	Walk(forest, func(node *TreeNode) {
		if node.NodeID != "" {
			m[node.NodeID] = node
		}
	})
	return m
}

// CountNodes returns the total number of nodes in the forest.
func CountNodes(forest []*TreeNode) int {
	total := 0
	Walk(forest, func(*TreeNode) { total++ })
	return total
}

// LeafNodes returns all nodes without children, in pre-order.
func LeafNodes(forest []*TreeNode) []*TreeNode {
	var leaves []*TreeNode
	Walk(forest, func(node *TreeNode) {
		if len(node.Children) == 0 {
			leaves = append(leaves, node)
		}
	})
	return leaves
}

// Flatten returns every node in pre-order as a copy with its child list
// removed, leaving the forest untouched.
func Flatten(forest []*TreeNode) []*TreeNode {
	var result []*TreeNode
	Walk(forest, func(node *TreeNode) {
		flat := *node
		flat.Children = nil
		result = append(result, &flat)
	})
	return result
}
