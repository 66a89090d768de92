// Package dwarfx loads DWARF compilation units into an immutable,
// randomly-addressable node store and adapts them to the layout
// engine's accessor interface.
package dwarfx

import (
	"debug/dwarf"
	"errors"
	"fmt"

	"structhole/internal/layout"
)

// ErrNotFound reports that no matching aggregate exists in any
// compilation unit.
var ErrNotFound = errors.New("dwarfx: aggregate not found")

const none = int32(-1)

// node is one decoded DIE. Nodes are immutable once loaded; traversal
// hands out handles, never mutates.
type node struct {
	tag      dwarf.Tag
	name     string
	hasName  bool
	typeOff  dwarf.Offset
	hasType  bool
	size     int64
	hasSize  bool
	loc      locAttr
	count    int64 // subrange element count, -1 when unknown
	child    int32
	sibling  int32
	bitfield bool
}

// locAttr captures DW_AT_data_member_location in whatever form the
// producer used: an expression block, or a plain constant.
type locAttr struct {
	present bool
	isBlock bool
	block   []byte
}

// Store is an arena of decoded DIEs for one compilation unit,
// addressable by dense index and by section offset.
type Store struct {
	nodes  []node
	byOff  map[dwarf.Offset]int32
	cuName string
}

var _ layout.Tree = (*Store)(nil)

// CUName returns the compilation unit's source name, if recorded.
func (st *Store) CUName() string { return st.cuName }

// Len returns the number of decoded DIEs.
func (st *Store) Len() int { return len(st.nodes) }

// LoadCU decodes the DIE tree of the compilation unit whose header
// entry is cu into a new Store.
func LoadCU(d *dwarf.Data, cu *dwarf.Entry) (*Store, error) {
	r := d.Reader()
	r.Seek(cu.Offset)
	ent, err := r.Next()
	if err != nil {
		return nil, fmt.Errorf("dwarfx: read CU header: %w", err)
	}
	if ent == nil || ent.Tag != dwarf.TagCompileUnit {
		return nil, fmt.Errorf("dwarfx: offset %#x is not a compile unit", cu.Offset)
	}

	st := &Store{byOff: make(map[dwarf.Offset]int32)}
	if nm, ok := ent.Val(dwarf.AttrName).(string); ok {
		st.cuName = nm
	}
	root := st.add(ent)
	if !ent.Children {
		return st, nil
	}

	// Entries arrive in prefix order; a zero tag terminates each
	// sibling list. stack tracks open parents, last the most recent
	// child at each depth.
	stack := []int32{root}
	last := []int32{none}
	for {
		ent, err = r.Next()
		if err != nil {
			return nil, fmt.Errorf("dwarfx: read DIE: %w", err)
		}
		if ent == nil {
			return nil, fmt.Errorf("dwarfx: truncated DIE tree in %q", st.cuName)
		}
		if ent.Tag == 0 {
			stack = stack[:len(stack)-1]
			last = last[:len(last)-1]
			if len(stack) == 0 {
				break
			}
			continue
		}

		i := st.add(ent)
		if prev := last[len(last)-1]; prev == none {
			st.nodes[stack[len(stack)-1]].child = i
		} else {
			st.nodes[prev].sibling = i
		}
		last[len(last)-1] = i

		if ent.Children {
			stack = append(stack, i)
			last = append(last, none)
		}
	}
	return st, nil
}

func (st *Store) add(ent *dwarf.Entry) int32 {
	n := node{tag: ent.Tag, child: none, sibling: none, count: -1}
	if v, ok := ent.Val(dwarf.AttrName).(string); ok {
		n.name, n.hasName = v, true
	}
	if v, ok := ent.Val(dwarf.AttrType).(dwarf.Offset); ok {
		n.typeOff, n.hasType = v, true
	}
	if v, ok := ent.Val(dwarf.AttrByteSize).(int64); ok {
		n.size, n.hasSize = v, true
	}
	switch v := ent.Val(dwarf.AttrDataMemberLoc).(type) {
	case []byte:
		n.loc = locAttr{present: true, isBlock: true, block: v}
	case int64:
		n.loc = locAttr{present: true}
	}
	if _, ok := ent.Val(dwarf.AttrBitSize).(int64); ok {
		n.bitfield = true
	}
	if _, ok := ent.Val(dwarf.AttrBitOffset).(int64); ok {
		n.bitfield = true
	}
	if _, ok := ent.Val(dwarf.AttrDataBitOffset).(int64); ok {
		n.bitfield = true
	}
	if ent.Tag == dwarf.TagSubrangeType {
		if v, ok := ent.Val(dwarf.AttrCount).(int64); ok {
			n.count = v
		} else if v, ok := ent.Val(dwarf.AttrUpperBound).(int64); ok {
			n.count = v + 1
		}
	}

	i := int32(len(st.nodes))
	st.nodes = append(st.nodes, n)
	st.byOff[ent.Offset] = i
	return i
}

// Kind implements layout.Tree.
func (st *Store) Kind(n layout.Node) layout.Kind {
	switch st.nodes[n].tag {
	case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagInterfaceType:
		return layout.KindAggregate
	case dwarf.TagEnumerationType:
		return layout.KindEnum
	case dwarf.TagPointerType:
		return layout.KindPointer
	case dwarf.TagBaseType:
		return layout.KindBase
	case dwarf.TagMember:
		return layout.KindMember
	}
	return layout.KindOther
}

// Name implements layout.Tree.
func (st *Store) Name(n layout.Node) (string, bool) {
	nd := &st.nodes[n]
	return nd.name, nd.hasName
}

// Referenced implements layout.Tree. References into other compilation
// units are not resolvable from a single-unit store and report ok=false.
func (st *Store) Referenced(n layout.Node) (layout.Node, bool) {
	nd := &st.nodes[n]
	if !nd.hasType {
		return 0, false
	}
	i, ok := st.byOff[nd.typeOff]
	if !ok {
		return 0, false
	}
	return layout.Node(i), true
}

// FirstChild implements layout.Tree.
func (st *Store) FirstChild(n layout.Node) (layout.Node, bool, error) {
	c := st.nodes[n].child
	if c == none {
		return 0, false, nil
	}
	return layout.Node(c), true, nil
}

// NextSibling implements layout.Tree.
func (st *Store) NextSibling(n layout.Node) (layout.Node, bool, error) {
	s := st.nodes[n].sibling
	if s == none {
		return 0, false, nil
	}
	return layout.Node(s), true, nil
}

// MemberType implements layout.Tree.
func (st *Store) MemberType(n layout.Node) (layout.Node, error) {
	nd := &st.nodes[n]
	if !nd.hasType {
		return 0, fmt.Errorf("dwarfx: member %s has no type attribute", st.debugName(n))
	}
	i, ok := st.byOff[nd.typeOff]
	if !ok {
		return 0, fmt.Errorf("dwarfx: member %s: type reference %#x outside unit %q",
			st.debugName(n), nd.typeOff, st.cuName)
	}
	return layout.Node(i), nil
}

// MemberLocation implements layout.Tree.
func (st *Store) MemberLocation(n layout.Node) (layout.Block, error) {
	nd := &st.nodes[n]
	if !nd.loc.present {
		return layout.Block{}, fmt.Errorf("dwarfx: member %s has no data member location", st.debugName(n))
	}
	if !nd.loc.isBlock {
		return layout.Block{Form: layout.FormConst}, nil
	}
	return layout.Block{Form: layout.FormBlock, Expr: nd.loc.block}, nil
}

// IsBitfield implements layout.Tree.
func (st *Store) IsBitfield(n layout.Node) bool {
	return st.nodes[n].bitfield
}

func (st *Store) debugName(n layout.Node) string {
	if nd := &st.nodes[n]; nd.hasName {
		return nd.name
	}
	return layout.AnonymousName
}
