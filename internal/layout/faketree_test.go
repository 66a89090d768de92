package layout

import "fmt"

// fakeTree is an in-memory Tree implementation for engine tests.
type fakeNode struct {
	kind     Kind
	name     string
	hasName  bool
	ref      int // referenced type index, -1 none
	size     int64
	loc      Block
	hasLoc   bool
	bitfield bool
	child    int
	sibling  int
}

type fakeTree struct {
	nodes []fakeNode
}

func (f *fakeTree) add(n fakeNode) Node {
	f.nodes = append(f.nodes, n)
	return Node(len(f.nodes) - 1)
}

func (f *fakeTree) base(name string, size int64) Node {
	return f.add(fakeNode{kind: KindBase, name: name, hasName: true, ref: -1, size: size, child: -1, sibling: -1})
}

func (f *fakeTree) structType(name string, size int64) Node {
	return f.add(fakeNode{kind: KindAggregate, name: name, hasName: name != "", ref: -1, size: size, child: -1, sibling: -1})
}

func (f *fakeTree) enumType(name string, size int64) Node {
	return f.add(fakeNode{kind: KindEnum, name: name, hasName: name != "", ref: -1, size: size, child: -1, sibling: -1})
}

// pointer adds a pointer node with no direct size. to < 0 models a
// pointee-less pointer (void *).
func (f *fakeTree) pointer(to int) Node {
	return f.add(fakeNode{kind: KindPointer, ref: to, size: -1, child: -1, sibling: -1})
}

// qualifier adds an unnamed, size-less node that only forwards its
// type reference (const/volatile style).
func (f *fakeTree) qualifier(to int) Node {
	return f.add(fakeNode{kind: KindOther, ref: to, size: -1, child: -1, sibling: -1})
}

func plusUconst(off uint64) Block {
	return Block{Form: FormBlock, Expr: AppendULEB128([]byte{opPlusUconst}, off)}
}

func (f *fakeTree) member(name string, typ Node, off uint64) Node {
	return f.memberLoc(name, typ, plusUconst(off))
}

func (f *fakeTree) memberLoc(name string, typ Node, loc Block) Node {
	return f.add(fakeNode{
		kind: KindMember, name: name, hasName: true,
		ref: int(typ), size: -1, loc: loc, hasLoc: true,
		child: -1, sibling: -1,
	})
}

// attach wires children under agg in order.
func (f *fakeTree) attach(agg Node, children ...Node) {
	if len(children) == 0 {
		return
	}
	f.nodes[agg].child = int(children[0])
	for i := 0; i < len(children)-1; i++ {
		f.nodes[children[i]].sibling = int(children[i+1])
	}
}

func (f *fakeTree) Kind(n Node) Kind { return f.nodes[n].kind }

func (f *fakeTree) Name(n Node) (string, bool) {
	nd := f.nodes[n]
	return nd.name, nd.hasName
}

func (f *fakeTree) Referenced(n Node) (Node, bool) {
	if r := f.nodes[n].ref; r >= 0 {
		return Node(r), true
	}
	return 0, false
}

func (f *fakeTree) Size(n Node) (uint64, bool) {
	if s := f.nodes[n].size; s >= 0 {
		return uint64(s), true
	}
	return 0, false
}

func (f *fakeTree) FirstChild(n Node) (Node, bool, error) {
	if c := f.nodes[n].child; c >= 0 {
		return Node(c), true, nil
	}
	return 0, false, nil
}

func (f *fakeTree) NextSibling(n Node) (Node, bool, error) {
	if s := f.nodes[n].sibling; s >= 0 {
		return Node(s), true, nil
	}
	return 0, false, nil
}

func (f *fakeTree) MemberType(n Node) (Node, error) {
	if r := f.nodes[n].ref; r >= 0 {
		return Node(r), nil
	}
	return 0, fmt.Errorf("fake: member %d has no type", n)
}

func (f *fakeTree) MemberLocation(n Node) (Block, error) {
	nd := f.nodes[n]
	if !nd.hasLoc {
		return Block{}, fmt.Errorf("fake: member %d has no location", n)
	}
	return nd.loc, nil
}

func (f *fakeTree) IsBitfield(n Node) bool { return f.nodes[n].bitfield }
