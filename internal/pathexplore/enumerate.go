package pathexplore

import "github.com/pathprove/pathprove/internal/cfg"

// Enumerate runs spec.md §4.2's bounded, re-seeding enumeration algorithm
// over root and returns every completed (terminal) path plus every path
// still open at the max_iter/max_depth bound when exploration stops.
// Coverage is approximate, not complete, by design (spec.md §4.2).
func Enumerate(root *cfg.Node, maxIter, maxDepth int) []*Path {
	e := NewEnumeration(root, maxIter, maxDepth)

	frontier := []int{0}
	var completed []int

	for iter := 0; iter < maxIter; iter++ {
		next := []int{0} // re-seed: each outer round explores a fresh branch-choice set
		for _, pIdx := range frontier {
			p := e.Arena[pIdx]
			if len(p.CfgNode.Children) > 0 {
				for _, cIdx := range e.Explore(pIdx) {
					if p.Depth > maxDepth {
						e.DepthCaps++
						break
					}
					next = append(next, cIdx)
				}
			} else {
				completed = append(completed, pIdx)
			}
		}
		frontier = next
	}

	all := make([]int, 0, len(completed)+len(frontier))
	all = append(all, completed...)
	all = append(all, frontier...)

	paths := make([]*Path, len(all))
	for i, idx := range all {
		paths[i] = e.PathTo(idx)
	}
	return paths
}
