package layout

import "errors"

var (
	// ErrAttrMissing reports a required attribute absent from a node.
	ErrAttrMissing = errors.New("layout: required attribute missing")

	// ErrUnsupportedExpr reports a member location that is not one of
	// the supported offset expressions.
	ErrUnsupportedExpr = errors.New("layout: unsupported location expression")

	// ErrSizeUnresolved reports that no size-determination path
	// succeeded for a member's type.
	ErrSizeUnresolved = errors.New("layout: member size unresolved")

	// ErrMalformedTree reports a structural problem in the debug-info
	// tree: traversal failure, truncated operands, offsets that go
	// backwards in declaration order.
	ErrMalformedTree = errors.New("layout: malformed debug-info tree")

	// ErrDeclaredSize reports an aggregate with no computable total
	// size.
	ErrDeclaredSize = errors.New("layout: aggregate size unavailable")

	// ErrBitfieldMember reports a bit-field member, which the analyzer
	// does not handle.
	ErrBitfieldMember = errors.New("layout: bit-field members not supported")
)
