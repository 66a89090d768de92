package dwarfx

import (
	"debug/dwarf"

	"structhole/internal/layout"
)

// maxTypeDepth bounds typedef/qualifier chasing so that a cyclic tree
// cannot hang the size query.
const maxTypeDepth = 64

// Size implements the direct size query of layout.Tree: a node's own
// byte size when present, otherwise resolved through typedefs and type
// qualifiers, with array sizes computed as element size times subrange
// count. Pointer-width inference is left to the caller.
func (st *Store) Size(n layout.Node) (uint64, bool) {
	return st.sizeOf(int32(n), 0)
}

func (st *Store) sizeOf(i int32, depth int) (uint64, bool) {
	if depth > maxTypeDepth {
		return 0, false
	}
	nd := &st.nodes[i]
	if nd.hasSize {
		if nd.size < 0 {
			return 0, false
		}
		return uint64(nd.size), true
	}

	switch nd.tag {
	case dwarf.TagTypedef, dwarf.TagConstType, dwarf.TagVolatileType, dwarf.TagRestrictType:
		if !nd.hasType {
			return 0, false
		}
		j, ok := st.byOff[nd.typeOff]
		if !ok {
			return 0, false
		}
		return st.sizeOf(j, depth+1)
	case dwarf.TagArrayType:
		return st.arraySize(i, depth)
	}
	return 0, false
}

func (st *Store) arraySize(i int32, depth int) (uint64, bool) {
	nd := &st.nodes[i]
	if !nd.hasType {
		return 0, false
	}
	j, ok := st.byOff[nd.typeOff]
	if !ok {
		return 0, false
	}
	elem, ok := st.sizeOf(j, depth+1)
	if !ok {
		return 0, false
	}

	count := int64(-1)
	for c := nd.child; c != none; c = st.nodes[c].sibling {
		if st.nodes[c].tag != dwarf.TagSubrangeType {
			continue
		}
		if st.nodes[c].count < 0 {
			return 0, false // flexible array member
		}
		if count < 0 {
			count = 1
		}
		count *= st.nodes[c].count
	}
	if count < 0 {
		return 0, false
	}
	return elem * uint64(count), true
}
