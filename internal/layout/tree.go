// Package layout analyzes the in-memory layout of aggregate types
// recorded in debug information: member offsets, padding holes, and
// cache-line boundary crossings.
package layout

// Node is an opaque handle into a debug-info tree.
type Node uint32

// Kind classifies a tree node structurally.
type Kind int

const (
	KindOther Kind = iota
	KindAggregate
	KindEnum
	KindPointer
	KindBase
	KindMember
)

// Form tags how a member's location attribute was encoded by the
// producer.
type Form int

const (
	FormBlock Form = iota // variable-length expression block
	FormConst             // plain constant attribute
	FormOther
)

// Block is a member's raw location expression as stored in the tree.
// Expr is only meaningful when Form is FormBlock.
type Block struct {
	Form Form
	Expr []byte
}

// Tree is the read-only accessor surface the engine needs from a
// debug-info provider. All methods are synchronous queries against an
// immutably-loaded tree and must not mutate shared state; a provider
// that satisfies this is safe to analyze from multiple goroutines.
type Tree interface {
	// Kind reports the structural kind of a node.
	Kind(Node) Kind

	// Name returns the node's display name. ok is false when the node
	// carries no name attribute (anonymous types).
	Name(Node) (name string, ok bool)

	// Referenced follows the node's type-reference edge. ok is false
	// when the node has no referenced type (e.g. the pointee of void *).
	Referenced(Node) (ref Node, ok bool)

	// Size answers the direct size query for a type node, in bytes.
	// ok is false when no size can be computed without pointer-width
	// inference.
	Size(Node) (size uint64, ok bool)

	// FirstChild returns the node's first child. ok is false for
	// childless nodes.
	FirstChild(Node) (child Node, ok bool, err error)

	// NextSibling returns the node's following sibling. ok is false at
	// the end of the sibling list.
	NextSibling(Node) (sib Node, ok bool, err error)

	// MemberType returns the declared type node of a member.
	MemberType(Node) (Node, error)

	// MemberLocation returns a member's raw location expression,
	// tagged with its encoding form.
	MemberLocation(Node) (Block, error)

	// IsBitfield reports whether a member's offset or size is expressed
	// in sub-byte bit attributes.
	IsBitfield(Node) bool
}

func nameOf(t Tree, n Node) string {
	if s, ok := t.Name(n); ok {
		return s
	}
	return AnonymousName
}
