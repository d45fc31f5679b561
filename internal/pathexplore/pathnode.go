// Package pathexplore implements the CFG path node and bounded breadth-
// oriented enumerator of spec.md §4.2, built on an arena of PathNodes with
// parent-by-index back-references (spec.md §9: "a back-reference without an
// ownership cycle... an arena, vector of nodes, parent-by-index").
package pathexplore

import (
	"fmt"

	"github.com/pathprove/pathprove/internal/cfg"
)

// PathNode is one node of the exploration tree: a CFG node reference, a
// parent back-reference by arena index, and the branch order that led to
// it (0 = then/loop-body edge, 1 = else/loop-exit edge, per spec.md §3).
type PathNode struct {
	Depth     int
	CfgNode   *cfg.Node
	ParentIdx int // -1 for the root
	Order     int
}

// Path is an ordered root-to-leaf sequence of PathNodes.
type Path struct {
	Nodes []*PathNode
}

// Enumeration owns one exploration run's arena and its shared visit-count
// map (spec.md §3: "shared across all descendants of a single enumeration,
// ensuring that cycles in the CFG cannot cause unbounded growth").
type Enumeration struct {
	Arena      []*PathNode
	visits     map[string]int
	maxIter    int
	maxDepth   int
	DepthCaps  int // number of expansions skipped for exceeding maxDepth
}

// NewEnumeration seeds an arena with the CFG's entry node as the root.
func NewEnumeration(root *cfg.Node, maxIter, maxDepth int) *Enumeration {
	e := &Enumeration{
		visits:   make(map[string]int),
		maxIter:  maxIter,
		maxDepth: maxDepth,
	}
	e.Arena = append(e.Arena, &PathNode{Depth: 0, CfgNode: root, ParentIdx: -1, Order: 0})
	return e
}

// visitKey builds the "[<depth+1>]<child-cfg-node-id>" key spec.md §4.2
// names for the shared visit-count map.
func visitKey(childDepth int, childID int) string {
	return fmt.Sprintf("[%d]%d", childDepth, childID)
}

// Explore yields one child PathNode per outgoing CFG edge of n.CfgNode,
// skipping edges whose destination has already been visited more than
// maxIter times along this exploration (spec.md §4.2's expansion rule).
func (e *Enumeration) Explore(idx int) []int {
	n := e.Arena[idx]
	var children []int
	for order, child := range n.CfgNode.Children {
		key := visitKey(n.Depth+1, child.ID)
		if e.visits[key] > e.maxIter {
			continue
		}
		e.visits[key]++
		pn := &PathNode{Depth: n.Depth + 1, CfgNode: child, ParentIdx: idx, Order: order}
		e.Arena = append(e.Arena, pn)
		children = append(children, len(e.Arena)-1)
	}
	return children
}

// PathTo walks parent links from idx back to the root and returns the
// root-to-leaf Path, produced on demand per spec.md §3.
func (e *Enumeration) PathTo(idx int) *Path {
	var rev []*PathNode
	for idx != -1 {
		n := e.Arena[idx]
		rev = append(rev, n)
		idx = n.ParentIdx
	}
	nodes := make([]*PathNode, len(rev))
	for i, n := range rev {
		nodes[len(rev)-1-i] = n
	}
	return &Path{Nodes: nodes}
}
