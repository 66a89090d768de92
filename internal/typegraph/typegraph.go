// Package typegraph builds a composition graph of aggregate types:
// which struct and enum types an aggregate embeds or points at through
// its members.
package typegraph

import (
	"github.com/zboralski/lattice"

	"structhole/internal/layout"
)

// maxChain bounds pointer/qualifier chasing per member.
const maxChain = 64

// Build walks the members of root, and of any aggregate member types
// reachable from it, and returns a graph with one node per aggregate
// and one edge per member whose type resolves to another aggregate or
// enumeration. Plain scalar members contribute nothing.
func Build(t layout.Tree, root layout.Node) *lattice.Graph {
	g := &lattice.Graph{}
	seen := make(map[layout.Node]bool)

	var walk func(n layout.Node)
	walk = func(n layout.Node) {
		if seen[n] {
			return
		}
		seen[n] = true
		name := layout.ResolveType(t, n).String()
		g.Nodes = append(g.Nodes, name)

		child, ok, err := t.FirstChild(n)
		if err != nil {
			return
		}
		for ok {
			if t.Kind(child) == layout.KindMember {
				if tn, err := t.MemberType(child); err == nil {
					if target, found := chase(t, tn); found {
						g.Edges = append(g.Edges, lattice.Edge{
							Caller: name,
							Callee: layout.ResolveType(t, target).String(),
						})
						if t.Kind(target) == layout.KindAggregate {
							walk(target)
						}
					}
				}
			}
			child, ok, err = t.NextSibling(child)
			if err != nil {
				return
			}
		}
	}
	walk(root)

	g.Dedup()
	return g
}

// chase follows pointer and qualifier edges until it reaches an
// aggregate or enumeration node.
func chase(t layout.Tree, n layout.Node) (layout.Node, bool) {
	cur := n
	for i := 0; i < maxChain; i++ {
		switch t.Kind(cur) {
		case layout.KindAggregate, layout.KindEnum:
			return cur, true
		}
		next, ok := t.Referenced(cur)
		if !ok {
			return 0, false
		}
		cur = next
	}
	return 0, false
}
