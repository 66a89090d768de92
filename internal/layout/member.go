package layout

import "fmt"

// Member is one analyzed field of an aggregate.
type Member struct {
	Name   string  `json:"name"`
	Type   TypeRef `json:"type"`
	Offset uint64  `json:"offset"`
	Size   uint64  `json:"size"`
	Index  int     `json:"index"` // declaration order
}

// extractMember builds a Member from a member node: name, resolved
// type, decoded offset, and size.
func extractMember(t Tree, n Node, cfg Config, idx int) (Member, error) {
	name := nameOf(t, n)

	if t.IsBitfield(n) {
		return Member{}, fmt.Errorf("%w: member %q", ErrBitfieldMember, name)
	}

	tn, err := t.MemberType(n)
	if err != nil {
		return Member{}, fmt.Errorf("%w: member %q type: %v", ErrAttrMissing, name, err)
	}

	off, err := memberOffset(t, n, name)
	if err != nil {
		return Member{}, err
	}

	size, err := memberSize(t, tn, cfg, name)
	if err != nil {
		return Member{}, err
	}

	return Member{
		Name:   name,
		Type:   ResolveType(t, tn),
		Offset: off,
		Size:   size,
		Index:  idx,
	}, nil
}

// memberOffset decodes the member's byte offset from its location
// expression. Only DW_OP_plus_uconst and DW_OP_constu are accepted;
// both carry a single ULEB128 operand.
func memberOffset(t Tree, n Node, name string) (uint64, error) {
	blk, err := t.MemberLocation(n)
	if err != nil {
		return 0, fmt.Errorf("%w: member %q location: %v", ErrAttrMissing, name, err)
	}
	if blk.Form != FormBlock {
		return 0, fmt.Errorf("%w: member %q: location not encoded as an expression block", ErrUnsupportedExpr, name)
	}
	if len(blk.Expr) == 0 {
		return 0, fmt.Errorf("%w: member %q: empty location block", ErrMalformedTree, name)
	}
	if op := blk.Expr[0]; op != opPlusUconst && op != opConstu {
		return 0, fmt.Errorf("%w: member %q: opcode %#x", ErrUnsupportedExpr, name, op)
	}
	v, consumed := DecodeULEB128(blk.Expr[1:])
	if consumed == 0 {
		return 0, fmt.Errorf("%w: member %q: truncated offset operand", ErrMalformedTree, name)
	}
	return v, nil
}

// memberSize determines the member's storage size: the type's direct
// size when one is computable, the native pointer width for pointer
// types, otherwise a fatal error.
func memberSize(t Tree, typeNode Node, cfg Config, name string) (uint64, error) {
	if sz, ok := t.Size(typeNode); ok {
		return sz, nil
	}
	if t.Kind(typeNode) == KindPointer {
		return uint64(cfg.PointerSize), nil
	}
	return 0, fmt.Errorf("%w: member %q", ErrSizeUnresolved, name)
}
